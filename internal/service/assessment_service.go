package service

import (
	"encoding/json"
	"errors"
	"time"

	"educonnect_backend/internal/grading"
	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"
	"educonnect_backend/pkg/logger"
	"educonnect_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssessmentService struct {
	Repo    *repository.AssessmentRepository
	CertSvc *CertificateService
}

func NewAssessmentService(repo *repository.AssessmentRepository, certSvc *CertificateService) *AssessmentService {
	return &AssessmentService{Repo: repo, CertSvc: certSvc}
}

type AssessmentRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	Type         string     `json:"type"`
	CourseID     uint       `json:"courseId"`
	TimeLimit    int        `json:"timeLimit"`
	DueDate      *time.Time `json:"dueDate"`
	PassingScore *int       `json:"passingScore"`
	Category     string     `json:"category"`
}

func (s *AssessmentService) CreateAssessment(creatorID uint, req AssessmentRequest) (*model.Assessment, error) {
	a := &model.Assessment{
		Title:       req.Title,
		Description: req.Description,
		Type:        model.AssessmentType(req.Type),
		CourseID:    req.CourseID,
		TimeLimit:   req.TimeLimit,
		DueDate:     req.DueDate,
		Status:      model.AssessmentDraft,
		Category:    req.Category,
		CreatorID:   creatorID,
	}
	if a.Type == "" {
		a.Type = model.Quiz
	}
	if req.PassingScore != nil {
		if *req.PassingScore < 0 || *req.PassingScore > 100 {
			return nil, errors.New("passing score must be between 0 and 100")
		}
		a.PassingScore = *req.PassingScore
	} else {
		a.PassingScore = 70
	}

	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) UpdateAssessment(id, creatorID uint, isAdmin bool, req AssessmentRequest) (*model.Assessment, error) {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && a.CreatorID != creatorID {
		return nil, util.ErrPermissionDenied
	}

	a.Title = req.Title
	a.Description = req.Description
	if req.Type != "" {
		a.Type = model.AssessmentType(req.Type)
	}
	if req.CourseID > 0 {
		a.CourseID = req.CourseID
	}
	a.TimeLimit = req.TimeLimit
	a.DueDate = req.DueDate
	a.Category = req.Category
	if req.PassingScore != nil {
		if *req.PassingScore < 0 || *req.PassingScore > 100 {
			return nil, errors.New("passing score must be between 0 and 100")
		}
		a.PassingScore = *req.PassingScore
	}

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) SetStatus(id, creatorID uint, isAdmin bool, status model.AssessmentStatus) (*model.Assessment, error) {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && a.CreatorID != creatorID {
		return nil, util.ErrPermissionDenied
	}

	a.Status = status
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) DeleteAssessment(id uint) error {
	return s.Repo.Delete(id)
}

func (s *AssessmentService) GetAssessment(id uint) (*model.Assessment, error) {
	return s.Repo.FindByIDWithQuestions(id)
}

func (s *AssessmentService) ListPublished(courseID uint, page, limit int) ([]model.Assessment, int64, error) {
	return s.Repo.ListPublished(courseID, page, limit)
}

func (s *AssessmentService) ListByCreator(creatorID uint, page, limit int) ([]model.Assessment, int64, error) {
	return s.Repo.ListByCreator(creatorID, page, limit)
}

// Questions

type QuestionRequest struct {
	QuestionType   string   `json:"questionType" binding:"required"`
	Text           string   `json:"text" binding:"required"`
	Options        []string `json:"options"`
	CorrectAnswer  string   `json:"correctAnswer"`
	CorrectAnswers []string `json:"correctAnswers"`
	Points         int      `json:"points"`
	Order          int      `json:"order"`
}

func (s *AssessmentService) CreateQuestion(assessmentID uint, req QuestionRequest) (*model.AssessmentQuestion, error) {
	if _, err := s.Repo.FindByID(assessmentID); err != nil {
		return nil, err
	}

	qType := model.QuestionType(req.QuestionType)
	if qType == model.MultipleSelect && len(req.CorrectAnswers) == 0 {
		return nil, errors.New("multiple-select questions require correctAnswers")
	}
	if (qType == model.MultipleChoice || qType == model.TrueFalse) && req.CorrectAnswer == "" {
		return nil, errors.New("single-select questions require correctAnswer")
	}

	options, _ := json.Marshal(req.Options)
	correctSet, _ := json.Marshal(req.CorrectAnswers)

	q := &model.AssessmentQuestion{
		AssessmentID:   assessmentID,
		QuestionType:   qType,
		Text:           req.Text,
		Options:        options,
		CorrectAnswer:  req.CorrectAnswer,
		CorrectAnswers: correctSet,
		Points:         req.Points,
		Order:          req.Order,
	}
	if q.Points == 0 {
		q.Points = 1
	}

	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) UpdateQuestion(id uint, req QuestionRequest) (*model.AssessmentQuestion, error) {
	q, err := s.Repo.FindQuestionByID(id)
	if err != nil {
		return nil, err
	}

	q.QuestionType = model.QuestionType(req.QuestionType)
	q.Text = req.Text
	if req.Options != nil {
		options, _ := json.Marshal(req.Options)
		q.Options = options
	}
	q.CorrectAnswer = req.CorrectAnswer
	if req.CorrectAnswers != nil {
		correctSet, _ := json.Marshal(req.CorrectAnswers)
		q.CorrectAnswers = correctSet
	}
	if req.Points > 0 {
		q.Points = req.Points
	}
	q.Order = req.Order

	if err := s.Repo.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) DeleteQuestion(id uint) error {
	return s.Repo.DeleteQuestion(id)
}

// TutorQuestion exposes the answer key, for the authoring side only.
type TutorQuestion struct {
	model.AssessmentQuestion
	CorrectAnswer  string          `json:"correctAnswer"`
	CorrectAnswers json.RawMessage `json:"correctAnswers"`
}

func (s *AssessmentService) ListQuestionsWithKeys(assessmentID uint) ([]TutorQuestion, error) {
	qs, err := s.Repo.ListQuestions(assessmentID)
	if err != nil {
		return nil, err
	}

	out := make([]TutorQuestion, len(qs))
	for i, q := range qs {
		out[i] = TutorQuestion{
			AssessmentQuestion: q,
			CorrectAnswer:      q.CorrectAnswer,
			CorrectAnswers:     q.CorrectAnswers,
		}
	}
	return out, nil
}

// Submission flow

type SubmitRequest struct {
	Answers   json.RawMessage `json:"answers"`
	TimeSpent int             `json:"timeSpent"`
}

type SubmitResult struct {
	Message          string             `json:"message"`
	Score            int                `json:"score"`
	TotalQuestions   int                `json:"totalQuestions"`
	CorrectAnswers   int                `json:"correctAnswers"`
	IncorrectAnswers int                `json:"incorrectAnswers"`
	Passed           bool               `json:"passed"`
	Certificate      *model.Certificate `json:"certificate"`
}

// Submit runs the grading pipeline: normalize the raw answers, grade them
// against the assessment's questions, persist the attempt, then try to issue
// a certificate. Issuance is best-effort: its failure is logged and reported
// as a nil certificate, never as a failed submission.
func (s *AssessmentService) Submit(userID, assessmentID uint, req SubmitRequest) (*SubmitResult, error) {
	a, err := s.Repo.FindByIDWithQuestions(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	if a.Status != model.AssessmentPublished {
		return nil, util.ErrAssessmentNotPublished
	}
	if a.DueDate != nil && time.Now().After(*a.DueDate) {
		return nil, util.ErrAssessmentPastDue
	}

	normalized := grading.Normalize(req.Answers)
	result := grading.Grade(a.Questions, normalized)
	passed := result.Passed(a.PassingScore)

	answersJSON, err := json.Marshal(result.Answers)
	if err != nil {
		return nil, err
	}

	timeSpent := req.TimeSpent
	if timeSpent < 0 {
		timeSpent = 0
	}
	now := time.Now()

	sub := &model.AssessmentSubmission{
		UserID:       userID,
		AssessmentID: a.ID,
		Answers:      answersJSON,
		Score:        result.Score,
		Passed:       passed,
		TimeSpent:    timeSpent,
		StartTime:    now.Add(-time.Duration(timeSpent) * time.Second),
		EndTime:      now,
	}
	if err := s.Repo.CreateSubmission(sub); err != nil {
		return nil, err
	}

	if passed {
		monitoring.SubmissionCounter.WithLabelValues("passed").Inc()
	} else {
		monitoring.SubmissionCounter.WithLabelValues("failed").Inc()
	}

	var cert *model.Certificate
	if passed {
		cert, err = s.CertSvc.IssueForSubmission(a, sub)
		if err != nil {
			// The submission is already durable; certificate issuance
			// failing must not undo the grade.
			logger.Log.Error("Certificate issuance failed",
				zap.Uint("userId", userID),
				zap.Uint("assessmentId", a.ID),
				zap.Error(err))
			cert = nil
		}
	}

	return &SubmitResult{
		Message:          "Assessment submitted successfully",
		Score:            result.Score,
		TotalQuestions:   result.Total,
		CorrectAnswers:   result.CorrectCount,
		IncorrectAnswers: result.Total - result.CorrectCount,
		Passed:           passed,
		Certificate:      cert,
	}, nil
}

type SubmissionResult struct {
	Submission   *model.AssessmentSubmission `json:"submission"`
	Assessment   string                      `json:"assessment"`
	PassingScore int                         `json:"passingScore"`
}

// MyResult returns the caller's most recent attempt. No attempt means a
// not-found error, never a synthesized result.
func (s *AssessmentService) MyResult(userID, assessmentID uint) (*SubmissionResult, error) {
	a, err := s.Repo.FindByID(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	sub, err := s.Repo.FindLatestSubmission(userID, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	return &SubmissionResult{
		Submission:   sub,
		Assessment:   a.Title,
		PassingScore: a.PassingScore,
	}, nil
}

func (s *AssessmentService) ListSubmissions(assessmentID, requesterID uint, isAdmin bool, page, limit int) ([]model.AssessmentSubmission, int64, error) {
	a, err := s.Repo.FindByID(assessmentID)
	if err != nil {
		return nil, 0, err
	}
	if !isAdmin && a.CreatorID != requesterID {
		return nil, 0, util.ErrPermissionDenied
	}
	return s.Repo.ListSubmissions(assessmentID, page, limit)
}

func (s *AssessmentService) GetSubmissionDetail(submissionID, requesterID uint, isAdmin bool) (*model.AssessmentSubmission, error) {
	sub, err := s.Repo.FindSubmissionByID(submissionID)
	if err != nil {
		return nil, err
	}

	a, err := s.Repo.FindByID(sub.AssessmentID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && a.CreatorID != requesterID && sub.UserID != requesterID {
		return nil, util.ErrPermissionDenied
	}
	return sub, nil
}
