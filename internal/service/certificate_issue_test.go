package service

import (
	"encoding/json"
	"errors"
	"testing"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"

	"gorm.io/gorm"
)

func newIssueFixture(t *testing.T) (*gorm.DB, *CertificateService, *repository.AssessmentRepository) {
	t.Helper()

	db := newServiceTestDB(t)
	certRepo := repository.NewCertificateRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	assessRepo := repository.NewAssessmentRepository(db)
	return db, NewCertificateService(certRepo, courseRepo, assessRepo, nil), assessRepo
}

func seedCourse(t *testing.T, db *gorm.DB) *model.Course {
	t.Helper()

	course := &model.Course{
		Title:       "Go Fundamentals",
		Level:       model.Beginner,
		Tags:        json.RawMessage(`["go","concurrency"]`),
		TutorID:     1,
		IsPublished: true,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func TestIssueForSubmissionReusesCertificate(t *testing.T) {
	db, svc, assessRepo := newIssueFixture(t)
	course := seedCourse(t, db)

	a := &model.Assessment{
		BaseModel:    model.BaseModel{ID: 42},
		Title:        "Final Quiz",
		CourseID:     course.ID,
		PassingScore: 70,
	}
	sub := &model.AssessmentSubmission{UserID: 7, AssessmentID: a.ID, Score: 85, Passed: true}
	if err := assessRepo.CreateSubmission(sub); err != nil {
		t.Fatalf("seed submission: %v", err)
	}

	first, err := svc.IssueForSubmission(a, sub)
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	if first.Grade != "B" {
		t.Errorf("grade = %q, want B for score 85", first.Grade)
	}
	if sub.CertificateID == nil || *sub.CertificateID != first.ID {
		t.Error("submission should be linked to the issued certificate")
	}

	stored, err := assessRepo.FindSubmissionByID(sub.ID)
	if err != nil {
		t.Fatalf("reload submission: %v", err)
	}
	if stored.CertificateID == nil || *stored.CertificateID != first.ID {
		t.Error("certificate back-link was not persisted")
	}

	// A second passing attempt must converge on the same certificate.
	second, err := svc.IssueForSubmission(a, sub)
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second issue returned certificate %d, want %d", second.ID, first.ID)
	}
	if second.CredentialID != first.CredentialID {
		t.Errorf("credential id changed across issues: %q vs %q", second.CredentialID, first.CredentialID)
	}

	var count int64
	if err := db.Model(&model.Certificate{}).Count(&count).Error; err != nil {
		t.Fatalf("count certificates: %v", err)
	}
	if count != 1 {
		t.Fatalf("certificate rows = %d, want 1", count)
	}
}

func TestGenerateFromAssessment(t *testing.T) {
	db, svc, assessRepo := newIssueFixture(t)
	course := seedCourse(t, db)

	a := &model.Assessment{
		Title:        "Final Quiz",
		CourseID:     course.ID,
		Status:       model.AssessmentPublished,
		PassingScore: 70,
	}
	if err := assessRepo.Create(a); err != nil {
		t.Fatalf("seed assessment: %v", err)
	}
	sub := &model.AssessmentSubmission{UserID: 7, AssessmentID: a.ID, Score: 90, Passed: true}
	if err := assessRepo.CreateSubmission(sub); err != nil {
		t.Fatalf("seed submission: %v", err)
	}

	cert, err := svc.GenerateFromAssessment(7, a.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	again, err := svc.GenerateFromAssessment(7, a.ID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if again.ID != cert.ID {
		t.Errorf("regenerate returned certificate %d, want %d", again.ID, cert.ID)
	}

	if _, err := svc.GenerateFromAssessment(8, a.ID); !errors.Is(err, util.ErrNoPassingSubmission) {
		t.Errorf("user without passing attempt: err = %v, want ErrNoPassingSubmission", err)
	}
	if _, err := svc.GenerateFromAssessment(7, 999); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Errorf("missing assessment: err = %v, want ErrAssessmentNotFound", err)
	}
}
