package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"
	"educonnect_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	catalogCacheTTL        = 5 * time.Minute
	catalogCacheVersionKey = "educonnect:courses:catalog:ver"
)

type CourseService struct {
	Repo           *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Redis          *redis.Client
}

func NewCourseService(repo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository, rdb *redis.Client) *CourseService {
	return &CourseService{Repo: repo, EnrollmentRepo: enrollmentRepo, Redis: rdb}
}

type CourseRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Level       string   `json:"level"`
	Tags        []string `json:"tags"`
	Thumbnail   string   `json:"thumbnail"`
	Price       float64  `json:"price"`
}

func (s *CourseService) CreateCourse(tutorID uint, req CourseRequest) (*model.Course, error) {
	tags, _ := json.Marshal(req.Tags)

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       model.CourseLevel(req.Level),
		Tags:        tags,
		Thumbnail:   req.Thumbnail,
		TutorID:     tutorID,
		Price:       req.Price,
	}
	if course.Level == "" {
		course.Level = model.Beginner
	}

	if err := s.Repo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(courseID, tutorID uint, isAdmin bool, req CourseRequest) (*model.Course, error) {
	course, err := s.Repo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && course.TutorID != tutorID {
		return nil, util.ErrPermissionDenied
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Category = req.Category
	if req.Level != "" {
		course.Level = model.CourseLevel(req.Level)
	}
	if req.Tags != nil {
		tags, _ := json.Marshal(req.Tags)
		course.Tags = tags
	}
	if req.Thumbnail != "" {
		course.Thumbnail = req.Thumbnail
	}
	course.Price = req.Price

	if err := s.Repo.Update(course); err != nil {
		return nil, err
	}
	s.bumpCatalogVersion()
	return course, nil
}

func (s *CourseService) PublishCourse(courseID, tutorID uint, isAdmin bool, publish bool) (*model.Course, error) {
	course, err := s.Repo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && course.TutorID != tutorID {
		return nil, util.ErrPermissionDenied
	}

	course.IsPublished = publish
	if publish {
		now := time.Now()
		course.PublishedAt = &now
	} else {
		course.PublishedAt = nil
	}

	if err := s.Repo.Update(course); err != nil {
		return nil, err
	}
	s.bumpCatalogVersion()
	return course, nil
}

func (s *CourseService) DeleteCourse(courseID uint) error {
	if err := s.Repo.Delete(courseID); err != nil {
		return err
	}
	s.bumpCatalogVersion()
	return nil
}

type CourseDetail struct {
	*model.Course
	StudentCount int64 `json:"studentCount"`
}

func (s *CourseService) GetCourseDetail(courseID uint) (*CourseDetail, error) {
	course, err := s.Repo.FindByIDWithLessons(courseID)
	if err != nil {
		return nil, err
	}
	students, err := s.EnrollmentRepo.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}
	return &CourseDetail{Course: course, StudentCount: students}, nil
}

type CatalogPage struct {
	Items []model.Course `json:"items"`
	Total int64          `json:"total"`
}

// GetCatalog serves the public published-course list through a Redis cache.
// Cache keys embed a version counter that mutations bump, so stale pages
// simply fall out of rotation instead of needing an explicit purge.
//
// A tutor viewing the catalog also sees their own unpublished courses; that
// per-viewer page is never served from the shared cache.
func (s *CourseService) GetCatalog(ctx context.Context, page, limit int, category string, viewer *util.Claims) (*CatalogPage, error) {
	if viewer != nil && viewer.Role == model.Tutor {
		courses, total, err := s.Repo.ListPublishedOrOwned(page, limit, category, viewer.UserID)
		if err != nil {
			return nil, err
		}
		return &CatalogPage{Items: courses, Total: total}, nil
	}

	key := s.catalogCacheKey(ctx, page, limit, category)
	if key != "" {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var result CatalogPage
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return &result, nil
			}
		}
	}

	courses, total, err := s.Repo.ListPublished(page, limit, category)
	if err != nil {
		return nil, err
	}

	result := &CatalogPage{Items: courses, Total: total}
	if key != "" {
		if data, err := json.Marshal(result); err == nil {
			if err := s.Redis.Set(ctx, key, data, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache course catalog", zap.Error(err))
			}
		}
	}
	return result, nil
}

func (s *CourseService) catalogCacheKey(ctx context.Context, page, limit int, category string) string {
	if s.Redis == nil {
		return ""
	}
	ver, err := s.Redis.Get(ctx, catalogCacheVersionKey).Result()
	if err != nil {
		ver = "0"
	}
	return fmt.Sprintf("educonnect:courses:catalog:v%s:p%d:l%d:c%s", ver, page, limit, category)
}

func (s *CourseService) bumpCatalogVersion() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Incr(context.Background(), catalogCacheVersionKey).Err(); err != nil {
		logger.Log.Warn("Failed to bump catalog cache version", zap.Error(err))
	}
}

func (s *CourseService) ListByTutor(tutorID uint, page, limit int) ([]model.Course, int64, error) {
	return s.Repo.ListByTutor(tutorID, page, limit)
}

func (s *CourseService) ListAll(page, limit int) ([]model.Course, int64, error) {
	return s.Repo.ListAll(page, limit)
}

// Enrollment

func (s *CourseService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.Repo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotPublished
	}

	if exists, err := s.EnrollmentRepo.Exists(userID, courseID); err != nil {
		return nil, err
	} else if exists {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *CourseService) MyCourses(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}

// Lessons

type LessonRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl"`
	Duration int    `json:"duration"`
	Order    int    `json:"order"`
}

func (s *CourseService) CreateLesson(courseID, tutorID uint, isAdmin bool, req LessonRequest) (*model.Lesson, error) {
	course, err := s.Repo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && course.TutorID != tutorID {
		return nil, util.ErrPermissionDenied
	}

	lesson := &model.Lesson{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		Duration: req.Duration,
		Order:    req.Order,
	}
	if err := s.Repo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) UpdateLesson(lessonID, tutorID uint, isAdmin bool, req LessonRequest) (*model.Lesson, error) {
	lesson, err := s.Repo.FindLessonByID(lessonID)
	if err != nil {
		return nil, err
	}

	course, err := s.Repo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && course.TutorID != tutorID {
		return nil, util.ErrPermissionDenied
	}

	lesson.Title = req.Title
	lesson.Content = req.Content
	lesson.VideoURL = req.VideoURL
	lesson.Duration = req.Duration
	lesson.Order = req.Order

	if err := s.Repo.UpdateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) DeleteLesson(lessonID, tutorID uint, isAdmin bool) error {
	lesson, err := s.Repo.FindLessonByID(lessonID)
	if err != nil {
		return err
	}

	course, err := s.Repo.FindByID(lesson.CourseID)
	if err != nil {
		return err
	}
	if !isAdmin && course.TutorID != tutorID {
		return util.ErrPermissionDenied
	}

	return s.Repo.DeleteLesson(lessonID)
}

func (s *CourseService) ListLessons(userID, courseID uint) ([]model.Lesson, error) {
	if enrolled, err := s.EnrollmentRepo.Exists(userID, courseID); err != nil {
		return nil, err
	} else if !enrolled {
		return nil, util.ErrNotEnrolled
	}
	return s.Repo.ListLessons(courseID)
}

// CompleteLesson records a lesson as done and recomputes the enrollment's
// progress percentage; the course is marked completed when it hits 100.
func (s *CourseService) CompleteLesson(userID, lessonID uint) (*model.Enrollment, error) {
	lesson, err := s.Repo.FindLessonByID(lessonID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, lesson.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	if _, err := s.EnrollmentRepo.FindLessonProgress(userID, lessonID); err == nil {
		// Already completed; idempotent.
		return enrollment, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress := &model.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		CourseID:    lesson.CourseID,
		CompletedAt: time.Now(),
	}
	if err := s.EnrollmentRepo.CreateLessonProgress(progress); err != nil {
		return nil, err
	}

	totalLessons, err := s.Repo.CountLessons(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.EnrollmentRepo.CountCompletedLessons(userID, lesson.CourseID)
	if err != nil {
		return nil, err
	}

	if totalLessons > 0 {
		enrollment.Progress = int(completed * 100 / totalLessons)
	}
	if enrollment.Progress >= 100 && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
	}

	if err := s.EnrollmentRepo.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}
