package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"educonnect_backend/internal/grading"
	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"
	"educonnect_backend/pkg/logger"
	"educonnect_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	certificateIssuer   = "EduConnect"
	certificateValidity = 3 // years
	verifyCacheTTL      = 10 * time.Minute
)

type CertificateService struct {
	Repo           *repository.CertificateRepository
	CourseRepo     *repository.CourseRepository
	AssessmentRepo *repository.AssessmentRepository
	Redis          *redis.Client
}

func NewCertificateService(repo *repository.CertificateRepository, courseRepo *repository.CourseRepository, assessmentRepo *repository.AssessmentRepository, rdb *redis.Client) *CertificateService {
	return &CertificateService{
		Repo:           repo,
		CourseRepo:     courseRepo,
		AssessmentRepo: assessmentRepo,
		Redis:          rdb,
	}
}

// IssueForSubmission creates (or returns the existing) certificate for a
// passing submission. The unique index on (user, course, assessment) plus the
// find-or-create write makes this idempotent under both retries and
// concurrent submissions.
func (s *CertificateService) IssueForSubmission(a *model.Assessment, sub *model.AssessmentSubmission) (*model.Certificate, error) {
	if a.CourseID == 0 {
		return nil, fmt.Errorf("assessment %d is not linked to a course", a.ID)
	}

	course, err := s.CourseRepo.FindByID(a.CourseID)
	if err != nil {
		return nil, fmt.Errorf("load course %d: %w", a.CourseID, err)
	}

	now := time.Now()
	skills, _ := json.Marshal(course.SkillTags())

	cert := &model.Certificate{
		Title:        fmt.Sprintf("%s - Certificate of Completion", course.Title),
		UserID:       sub.UserID,
		CourseID:     course.ID,
		AssessmentID: a.ID,
		IssueDate:    now,
		ExpiryDate:   CertificateExpiry(now),
		Issuer:       certificateIssuer,
		Grade:        grading.LetterGrade(sub.Score),
		Score:        sub.Score,
		Skills:       skills,
		CredentialID: NewCredentialID(course.Title, now),
		Status:       model.CertificateIssued,
	}

	cert, created, err := s.Repo.FindOrCreate(cert)
	if err != nil {
		return nil, err
	}
	if created {
		monitoring.CertificateCounter.Inc()
		logger.Log.Info("Certificate issued",
			zap.Uint("userId", sub.UserID),
			zap.Uint("assessmentId", a.ID),
			zap.String("credentialId", cert.CredentialID))
	}

	if sub.CertificateID == nil || *sub.CertificateID != cert.ID {
		sub.CertificateID = &cert.ID
		if err := s.AssessmentRepo.UpdateSubmission(sub); err != nil {
			logger.Log.Warn("Failed to link certificate to submission", zap.Error(err))
		}
	}

	return cert, nil
}

// GenerateFromAssessment re-triggers issuance for a user's best passing
// attempt, for when the original best-effort issuance failed.
func (s *CertificateService) GenerateFromAssessment(userID, assessmentID uint) (*model.Certificate, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	// Already issued; return it without rescanning submissions.
	if cert, err := s.Repo.FindByUserCourseAssessment(userID, a.CourseID, assessmentID); err == nil {
		return cert, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub, err := s.AssessmentRepo.FindLatestPassingSubmission(userID, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNoPassingSubmission
		}
		return nil, err
	}

	return s.IssueForSubmission(a, sub)
}

type VerificationResult struct {
	Valid       bool               `json:"valid"`
	Certificate *model.Certificate `json:"certificate,omitempty"`
	Message     string             `json:"message"`
}

// Verify checks a credential id for existence, revocation and expiry. The
// endpoint is public, so results sit behind a short Redis cache.
func (s *CertificateService) Verify(ctx context.Context, credentialID string) (*VerificationResult, error) {
	cacheKey := "educonnect:certificates:verify:" + credentialID
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var result VerificationResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return &result, nil
			}
		}
	}

	result := s.verify(credentialID)

	if s.Redis != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, verifyCacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache verification result", zap.Error(err))
			}
		}
	}
	return result, nil
}

func (s *CertificateService) verify(credentialID string) *VerificationResult {
	cert, err := s.Repo.FindByCredentialID(credentialID)
	if err != nil {
		return &VerificationResult{Valid: false, Message: "certificate not found"}
	}

	if cert.Status == model.CertificateRevoked {
		return &VerificationResult{Valid: false, Message: "certificate has been revoked"}
	}
	if time.Now().After(cert.ExpiryDate) {
		return &VerificationResult{Valid: false, Certificate: cert, Message: "certificate has expired"}
	}

	return &VerificationResult{Valid: true, Certificate: cert, Message: "certificate is valid"}
}

func (s *CertificateService) ListByUser(userID uint) ([]model.Certificate, error) {
	return s.Repo.ListByUser(userID)
}

func (s *CertificateService) List(page, limit int, status string) ([]model.Certificate, int64, error) {
	return s.Repo.List(page, limit, status)
}

func (s *CertificateService) Revoke(certificateID uint) (*model.Certificate, error) {
	cert, err := s.Repo.FindByID(certificateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCertificateNotFound
		}
		return nil, err
	}

	cert.Status = model.CertificateRevoked
	if err := s.Repo.Update(cert); err != nil {
		return nil, err
	}

	// Drop the stale verification entry so revocation takes effect promptly.
	if s.Redis != nil {
		s.Redis.Del(context.Background(), "educonnect:certificates:verify:"+cert.CredentialID)
	}
	return cert, nil
}

// CertificateExpiry returns the expiry for a certificate issued at the given
// time: three years out.
func CertificateExpiry(issued time.Time) time.Time {
	return issued.AddDate(certificateValidity, 0, 0)
}

// NewCredentialID builds a human-readable credential id: an uppercased
// prefix derived from the course title, the issue year, and a random suffix.
// Uniqueness is ultimately guaranteed by the column's unique index, not the
// generator.
func NewCredentialID(courseTitle string, issued time.Time) string {
	prefix := credentialPrefix(courseTitle)
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("EC-%s-%d-%s", prefix, issued.Year(), suffix)
}

func credentialPrefix(title string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(title) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
		if b.Len() >= 6 {
			break
		}
	}
	if b.Len() == 0 {
		return "COURSE"
	}
	return b.String()
}
