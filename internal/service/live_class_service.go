package service

import (
	"errors"
	"time"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"

	"gorm.io/gorm"
)

type LiveClassService struct {
	Repo           *repository.LiveClassRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewLiveClassService(repo *repository.LiveClassRepository, courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *LiveClassService {
	return &LiveClassService{Repo: repo, CourseRepo: courseRepo, EnrollmentRepo: enrollmentRepo}
}

type LiveClassRequest struct {
	CourseID    uint       `json:"courseId" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ScheduledAt time.Time  `json:"scheduledAt" binding:"required"`
	EndsAt      *time.Time `json:"endsAt"`
	MeetingURL  string     `json:"meetingUrl"`
}

func (s *LiveClassService) Schedule(hostID uint, isAdmin bool, req LiveClassRequest) (*model.LiveClass, error) {
	course, err := s.CourseRepo.FindByID(req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !isAdmin && course.TutorID != hostID {
		return nil, util.ErrPermissionDenied
	}
	if req.ScheduledAt.Before(time.Now()) {
		return nil, errors.New("scheduled time must be in the future")
	}

	lc := &model.LiveClass{
		CourseID:    req.CourseID,
		HostID:      hostID,
		Title:       req.Title,
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
		EndsAt:      req.EndsAt,
		MeetingURL:  req.MeetingURL,
		Status:      model.LiveClassScheduled,
	}
	if err := s.Repo.Create(lc); err != nil {
		return nil, err
	}
	return lc, nil
}

func (s *LiveClassService) Update(id, hostID uint, isAdmin bool, req LiveClassRequest) (*model.LiveClass, error) {
	lc, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLiveClassNotFound
		}
		return nil, err
	}
	if !isAdmin && lc.HostID != hostID {
		return nil, util.ErrPermissionDenied
	}
	if lc.Status == model.LiveClassEnded || lc.Status == model.LiveClassCancelled {
		return nil, errors.New("cannot update an ended or cancelled class")
	}

	lc.Title = req.Title
	lc.Description = req.Description
	lc.ScheduledAt = req.ScheduledAt
	lc.EndsAt = req.EndsAt
	lc.MeetingURL = req.MeetingURL

	if err := s.Repo.Update(lc); err != nil {
		return nil, err
	}
	return lc, nil
}

// SetStatus moves a class along scheduled -> live -> ended. Cancelling is
// allowed from scheduled only.
func (s *LiveClassService) SetStatus(id, hostID uint, isAdmin bool, status model.LiveClassStatus) (*model.LiveClass, error) {
	lc, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLiveClassNotFound
		}
		return nil, err
	}
	if !isAdmin && lc.HostID != hostID {
		return nil, util.ErrPermissionDenied
	}

	if !validLiveClassTransition(lc.Status, status) {
		return nil, errors.New("invalid status transition")
	}

	lc.Status = status
	if status == model.LiveClassEnded && lc.EndsAt == nil {
		now := time.Now()
		lc.EndsAt = &now
	}
	if err := s.Repo.Update(lc); err != nil {
		return nil, err
	}
	return lc, nil
}

func validLiveClassTransition(from, to model.LiveClassStatus) bool {
	switch from {
	case model.LiveClassScheduled:
		return to == model.LiveClassLive || to == model.LiveClassCancelled
	case model.LiveClassLive:
		return to == model.LiveClassEnded
	default:
		return false
	}
}

func (s *LiveClassService) Delete(id, hostID uint, isAdmin bool) error {
	lc, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLiveClassNotFound
		}
		return err
	}
	if !isAdmin && lc.HostID != hostID {
		return util.ErrPermissionDenied
	}
	if lc.Status == model.LiveClassLive {
		return errors.New("cannot delete a running class")
	}
	return s.Repo.Delete(id)
}

// Join hands the enrolled student the meeting URL and counts the attendance.
func (s *LiveClassService) Join(userID, classID uint) (*model.LiveClass, error) {
	lc, err := s.Repo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLiveClassNotFound
		}
		return nil, err
	}
	if lc.Status != model.LiveClassLive {
		return nil, util.ErrLiveClassNotJoinable
	}

	enrolled, err := s.EnrollmentRepo.Exists(userID, lc.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled && lc.HostID != userID {
		return nil, util.ErrNotEnrolled
	}

	if err := s.Repo.IncrementAttendees(classID); err != nil {
		return nil, err
	}
	lc.AttendeeCount++
	return lc, nil
}

// Upcoming lists scheduled and running classes for the courses the student
// is enrolled in.
func (s *LiveClassService) Upcoming(userID uint) ([]model.LiveClass, error) {
	enrollments, err := s.EnrollmentRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}
	return s.Repo.ListUpcomingForCourses(courseIDs)
}

func (s *LiveClassService) ListByHost(hostID uint, page, limit int) ([]model.LiveClass, int64, error) {
	return s.Repo.ListByHost(hostID, page, limit)
}

func (s *LiveClassService) Get(id uint) (*model.LiveClass, error) {
	lc, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLiveClassNotFound
		}
		return nil, err
	}
	return lc, nil
}
