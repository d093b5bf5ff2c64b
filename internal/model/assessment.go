package model

import (
	"encoding/json"
	"time"
)

type AssessmentType string

const (
	Quiz       AssessmentType = "quiz"
	Exam       AssessmentType = "exam"
	Assignment AssessmentType = "assignment"
)

type AssessmentStatus string

const (
	AssessmentDraft     AssessmentStatus = "draft"
	AssessmentPublished AssessmentStatus = "published"
	AssessmentArchived  AssessmentStatus = "archived"
)

// swagger:model Assessment
type Assessment struct {
	BaseModel
	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	Type         AssessmentType   `gorm:"type:enum('quiz','exam','assignment');default:'quiz'" json:"type"`
	CourseID     uint             `gorm:"index;type:bigint unsigned" json:"courseId"`
	Course       *Course          `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	TimeLimit    int              `gorm:"default:0" json:"timeLimit"` // Minutes, 0 = unlimited
	DueDate      *time.Time       `json:"dueDate,omitempty"`
	Status       AssessmentStatus `gorm:"type:enum('draft','published','archived');default:'draft'" json:"status"`
	PassingScore int              `gorm:"default:70" json:"passingScore"` // Percentage, 0-100
	Category     string           `gorm:"size:100" json:"category"`
	CreatorID    uint             `gorm:"index;type:bigint unsigned" json:"creatorId"`

	Questions []AssessmentQuestion `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	MultipleSelect QuestionType = "multiple-select"
	TrueFalse      QuestionType = "true-false"
)

// AssessmentQuestion is a single item of an assessment. CorrectAnswer holds
// the key for single-select types, CorrectAnswers the key set for
// multiple-select.
type AssessmentQuestion struct {
	BaseModel
	AssessmentID   uint            `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	QuestionType   QuestionType    `gorm:"size:50;not null" json:"questionType"`
	Text           string          `gorm:"type:text;not null" json:"text"`
	Options        json.RawMessage `gorm:"type:json" json:"options"` // JSON: []string
	CorrectAnswer  string          `gorm:"type:text" json:"-"`
	CorrectAnswers json.RawMessage `gorm:"type:json" json:"-"` // JSON: []string
	Points         int             `gorm:"default:1" json:"points"`
	Order          int             `gorm:"default:0" json:"order"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// CorrectAnswerSet decodes CorrectAnswers; malformed JSON yields nil.
func (q *AssessmentQuestion) CorrectAnswerSet() []string {
	if len(q.CorrectAnswers) == 0 {
		return nil
	}
	var answers []string
	if err := json.Unmarshal(q.CorrectAnswers, &answers); err != nil {
		return nil
	}
	return answers
}

// swagger:model AssessmentSubmission
type AssessmentSubmission struct {
	BaseModel
	UserID        uint            `gorm:"index:idx_submission_user_assessment;type:bigint unsigned" json:"userId"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AssessmentID  uint            `gorm:"index:idx_submission_user_assessment;type:bigint unsigned" json:"assessmentId"`
	Answers       json.RawMessage `gorm:"type:json" json:"answers"` // JSON: []grading.GradedAnswer
	Score         int             `gorm:"default:0" json:"score"`   // 0-100
	Passed        bool            `gorm:"default:false" json:"passed"`
	TimeSpent     int             `gorm:"default:0" json:"timeSpent"` // Seconds
	StartTime     time.Time       `json:"startTime"`
	EndTime       time.Time       `json:"endTime"`
	CertificateID *uint           `gorm:"type:bigint unsigned" json:"certificateId,omitempty"`
}

func (AssessmentSubmission) TableName() string {
	return "assessment_submissions"
}
