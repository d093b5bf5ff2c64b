package repository

import (
	"educonnect_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Preload("Course").First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) FindByIDWithQuestions(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Preload("Course").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("assessment_questions.order asc, assessment_questions.created_at asc")
		}).
		First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

func (r *AssessmentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Assessment{}, id).Error
}

func (r *AssessmentRepository) ListPublished(courseID uint, page, limit int) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64

	query := r.DB.Model(&model.Assessment{}).Where("status = ?", model.AssessmentPublished)
	if courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

func (r *AssessmentRepository) ListByCreator(creatorID uint, page, limit int) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64

	query := r.DB.Model(&model.Assessment{}).Where("creator_id = ?", creatorID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

// Question methods

func (r *AssessmentRepository) CreateQuestion(q *model.AssessmentQuestion) error {
	return r.DB.Create(q).Error
}

func (r *AssessmentRepository) FindQuestionByID(id uint) (*model.AssessmentQuestion, error) {
	var q model.AssessmentQuestion
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *AssessmentRepository) ListQuestions(assessmentID uint) ([]model.AssessmentQuestion, error) {
	var qs []model.AssessmentQuestion
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("`order` asc, created_at asc").
		Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) UpdateQuestion(q *model.AssessmentQuestion) error {
	return r.DB.Save(q).Error
}

func (r *AssessmentRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.AssessmentQuestion{}, id).Error
}

// Submission methods

func (r *AssessmentRepository) CreateSubmission(s *model.AssessmentSubmission) error {
	return r.DB.Create(s).Error
}

func (r *AssessmentRepository) UpdateSubmission(s *model.AssessmentSubmission) error {
	return r.DB.Save(s).Error
}

func (r *AssessmentRepository) FindSubmissionByID(id uint) (*model.AssessmentSubmission, error) {
	var s model.AssessmentSubmission
	err := r.DB.Preload("User").First(&s, id).Error
	return &s, err
}

// FindLatestSubmission returns the caller's most recent attempt.
func (r *AssessmentRepository) FindLatestSubmission(userID, assessmentID uint) (*model.AssessmentSubmission, error) {
	var s model.AssessmentSubmission
	err := r.DB.Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Order("created_at desc").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AssessmentRepository) FindLatestPassingSubmission(userID, assessmentID uint) (*model.AssessmentSubmission, error) {
	var s model.AssessmentSubmission
	err := r.DB.Where("user_id = ? AND assessment_id = ? AND passed = ?", userID, assessmentID, true).
		Order("score desc, created_at desc").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AssessmentRepository) ListSubmissions(assessmentID uint, page, limit int) ([]model.AssessmentSubmission, int64, error) {
	var ss []model.AssessmentSubmission
	var total int64

	query := r.DB.Model(&model.AssessmentSubmission{}).Where("assessment_id = ?", assessmentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&ss).Error
	return ss, total, err
}

func (r *AssessmentRepository) CountSubmissionsByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AssessmentSubmission{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *AssessmentRepository) CountPassedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AssessmentSubmission{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Count(&count).Error
	return count, err
}
