package repository

import (
	"educonnect_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) FindByID(id uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.First(&cert, id).Error
	return &cert, err
}

func (r *CertificateRepository) FindByCredentialID(credentialID string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Where("credential_id = ?", credentialID).First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) FindByUserCourseAssessment(userID, courseID, assessmentID uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Where("user_id = ? AND course_id = ? AND assessment_id = ?", userID, courseID, assessmentID).
		First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// FindOrCreate makes certificate issuance idempotent: the insert runs with
// ON CONFLICT DO NOTHING against the (user, course, assessment) unique index,
// and the stored row is read back inside the same transaction. Two racing
// submissions converge on a single certificate.
func (r *CertificateRepository) FindOrCreate(cert *model.Certificate) (*model.Certificate, bool, error) {
	created := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(cert)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0

		var existing model.Certificate
		if err := tx.Where("user_id = ? AND course_id = ? AND assessment_id = ?",
			cert.UserID, cert.CourseID, cert.AssessmentID).First(&existing).Error; err != nil {
			return err
		}
		*cert = existing
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return cert, created, nil
}

func (r *CertificateRepository) Update(cert *model.Certificate) error {
	return r.DB.Save(cert).Error
}

func (r *CertificateRepository) ListByUser(userID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Where("user_id = ?", userID).Order("issue_date desc").Find(&certs).Error
	return certs, err
}

func (r *CertificateRepository) List(page, limit int, status string) ([]model.Certificate, int64, error) {
	var certs []model.Certificate
	var total int64

	query := r.DB.Model(&model.Certificate{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("issue_date desc").Offset(offset).Limit(limit).Find(&certs).Error
	return certs, total, err
}

func (r *CertificateRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Certificate{}).Count(&count).Error
	return count, err
}

