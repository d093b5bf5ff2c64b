package model

import (
	"encoding/json"
	"time"
)

type CertificateStatus string

const (
	CertificateIssued  CertificateStatus = "issued"
	CertificateRevoked CertificateStatus = "revoked"
)

// Certificate is issued proof of passing an assessment. The composite unique
// index keeps concurrent submissions from minting duplicates for the same
// (user, course, assessment) triple.
// swagger:model Certificate
type Certificate struct {
	BaseModel
	Title        string            `gorm:"size:255;not null" json:"title"`
	UserID       uint              `gorm:"uniqueIndex:idx_certificate_user_course_assessment;type:bigint unsigned" json:"userId"`
	CourseID     uint              `gorm:"uniqueIndex:idx_certificate_user_course_assessment;type:bigint unsigned" json:"courseId"`
	AssessmentID uint              `gorm:"uniqueIndex:idx_certificate_user_course_assessment;type:bigint unsigned" json:"assessmentId"`
	IssueDate    time.Time         `json:"issueDate"`
	ExpiryDate   time.Time         `json:"expiryDate"` // IssueDate + 3 years
	Issuer       string            `gorm:"size:100;default:'EduConnect'" json:"issuer"`
	Grade        string            `gorm:"size:2" json:"grade"` // A-F
	Score        int               `gorm:"default:0" json:"score"`
	Skills       json.RawMessage   `gorm:"type:json" json:"skills"` // JSON: []string, from course tags
	CredentialID string            `gorm:"size:100;uniqueIndex" json:"credentialId"`
	Status       CertificateStatus `gorm:"type:enum('issued','revoked');default:'issued'" json:"status"`
}

func (Certificate) TableName() string {
	return "certificates"
}
