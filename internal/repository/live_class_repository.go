package repository

import (
	"time"

	"educonnect_backend/internal/model"

	"gorm.io/gorm"
)

type LiveClassRepository struct {
	DB *gorm.DB
}

func NewLiveClassRepository(db *gorm.DB) *LiveClassRepository {
	return &LiveClassRepository{DB: db}
}

func (r *LiveClassRepository) Create(lc *model.LiveClass) error {
	return r.DB.Create(lc).Error
}

func (r *LiveClassRepository) FindByID(id uint) (*model.LiveClass, error) {
	var lc model.LiveClass
	err := r.DB.Preload("Course").First(&lc, id).Error
	return &lc, err
}

func (r *LiveClassRepository) Update(lc *model.LiveClass) error {
	return r.DB.Save(lc).Error
}

func (r *LiveClassRepository) Delete(id uint) error {
	return r.DB.Delete(&model.LiveClass{}, id).Error
}

// ListUpcomingForCourses returns scheduled or running classes for the given
// courses, soonest first.
func (r *LiveClassRepository) ListUpcomingForCourses(courseIDs []uint) ([]model.LiveClass, error) {
	if len(courseIDs) == 0 {
		return []model.LiveClass{}, nil
	}
	var classes []model.LiveClass
	err := r.DB.Preload("Course").
		Where("course_id IN ?", courseIDs).
		Where("status IN ?", []model.LiveClassStatus{model.LiveClassScheduled, model.LiveClassLive}).
		Where("scheduled_at > ? OR status = ?", time.Now().Add(-24*time.Hour), model.LiveClassLive).
		Order("scheduled_at asc").
		Find(&classes).Error
	return classes, err
}

func (r *LiveClassRepository) ListByHost(hostID uint, page, limit int) ([]model.LiveClass, int64, error) {
	var classes []model.LiveClass
	var total int64

	query := r.DB.Model(&model.LiveClass{}).Where("host_id = ?", hostID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Course").Order("scheduled_at desc").Offset(offset).Limit(limit).Find(&classes).Error
	return classes, total, err
}

func (r *LiveClassRepository) IncrementAttendees(id uint) error {
	return r.DB.Model(&model.LiveClass{}).Where("id = ?", id).
		UpdateColumn("attendee_count", gorm.Expr("attendee_count + 1")).Error
}
