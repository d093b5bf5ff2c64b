package repository

import (
	"testing"
	"time"

	"educonnect_backend/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// The production schema uses MySQL column types, so the table is created by
// hand instead of via AutoMigrate.
const certificatesDDL = `
CREATE TABLE certificates (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME,
  title TEXT,
  user_id INTEGER,
  course_id INTEGER,
  assessment_id INTEGER,
  issue_date DATETIME,
  expiry_date DATETIME,
  issuer TEXT,
  grade TEXT,
  score INTEGER,
  skills TEXT,
  credential_id TEXT UNIQUE,
  status TEXT,
  UNIQUE (user_id, course_id, assessment_id)
)`

func newCertificateTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// One connection so every statement sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec(certificatesDDL).Error; err != nil {
		t.Fatalf("create certificates table: %v", err)
	}
	return db
}

func testCertificate(credentialID string, assessmentID uint) *model.Certificate {
	now := time.Now()
	return &model.Certificate{
		Title:        "Go Fundamentals - Certificate of Completion",
		UserID:       7,
		CourseID:     3,
		AssessmentID: assessmentID,
		IssueDate:    now,
		ExpiryDate:   now.AddDate(3, 0, 0),
		Issuer:       "EduConnect",
		Grade:        "B",
		Score:        85,
		CredentialID: credentialID,
		Status:       model.CertificateIssued,
	}
}

func TestFindOrCreateIdempotent(t *testing.T) {
	repo := NewCertificateRepository(newCertificateTestDB(t))

	first, created, err := repo.FindOrCreate(testCertificate("EC-GOFUND-2026-AAAAAAAA", 11))
	if err != nil {
		t.Fatalf("first FindOrCreate: %v", err)
	}
	if !created {
		t.Fatal("first call should report created=true")
	}
	if first.ID == 0 {
		t.Fatal("first call should assign an id")
	}

	// Same (user, course, assessment) triple, freshly generated credential id.
	retry := testCertificate("EC-GOFUND-2026-BBBBBBBB", 11)
	second, created, err := repo.FindOrCreate(retry)
	if err != nil {
		t.Fatalf("second FindOrCreate: %v", err)
	}
	if created {
		t.Error("second call should report created=false")
	}
	if second.ID != first.ID {
		t.Errorf("second call returned id %d, want %d", second.ID, first.ID)
	}
	if second.CredentialID != first.CredentialID {
		t.Errorf("stored credential id must win: got %q, want %q", second.CredentialID, first.CredentialID)
	}
	if retry.ID != first.ID || retry.CredentialID != first.CredentialID {
		t.Error("caller's struct should be overwritten with the stored row")
	}

	var count int64
	if err := repo.DB.Model(&model.Certificate{}).Count(&count).Error; err != nil {
		t.Fatalf("count certificates: %v", err)
	}
	if count != 1 {
		t.Fatalf("certificate rows = %d, want 1", count)
	}
}

func TestFindOrCreateDistinctAssessments(t *testing.T) {
	repo := NewCertificateRepository(newCertificateTestDB(t))

	first, _, err := repo.FindOrCreate(testCertificate("EC-GOFUND-2026-AAAAAAAA", 11))
	if err != nil {
		t.Fatalf("first FindOrCreate: %v", err)
	}

	other, created, err := repo.FindOrCreate(testCertificate("EC-GOFUND-2026-CCCCCCCC", 12))
	if err != nil {
		t.Fatalf("second FindOrCreate: %v", err)
	}
	if !created {
		t.Error("a different assessment should mint a new certificate")
	}
	if other.ID == first.ID {
		t.Errorf("distinct triples must not share a row, both got id %d", first.ID)
	}
}
