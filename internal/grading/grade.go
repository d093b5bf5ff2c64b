package grading

import (
	"math"

	"educonnect_backend/internal/model"
)

// GradedAnswer is the stored record for one question of a submission.
// Single-select types keep the value in SelectedAnswer with an empty
// SelectedAnswers list; multiple-select types the other way around.
type GradedAnswer struct {
	QuestionID      uint     `json:"questionId"`
	SelectedAnswer  string   `json:"selectedAnswer"`
	SelectedAnswers []string `json:"selectedAnswers"`
	IsCorrect       bool     `json:"isCorrect"`
}

type Result struct {
	Answers      []GradedAnswer
	CorrectCount int
	Total        int
	Score        int // 0-100, rounded half-up
}

func (r Result) Passed(passingScore int) bool {
	return r.Score >= passingScore
}

// Grade evaluates submitted answers against the assessment's questions.
// Question order and correctness data come from the question list; the
// output covers every question, with missing or empty submissions graded
// as skipped and incorrect.
func Grade(questions []model.AssessmentQuestion, submitted []SubmittedAnswer) Result {
	byID := make(map[uint]SubmittedAnswer, len(submitted))
	for _, ans := range submitted {
		byID[ans.QuestionID] = ans
	}

	result := Result{
		Answers: make([]GradedAnswer, 0, len(questions)),
		Total:   len(questions),
	}

	for _, q := range questions {
		graded := gradeQuestion(q, byID[q.ID])
		if graded.IsCorrect {
			result.CorrectCount++
		}
		result.Answers = append(result.Answers, graded)
	}

	if result.Total > 0 {
		result.Score = int(math.Round(float64(result.CorrectCount) * 100 / float64(result.Total)))
	}
	return result
}

func gradeQuestion(q model.AssessmentQuestion, ans SubmittedAnswer) GradedAnswer {
	graded := GradedAnswer{
		QuestionID:      q.ID,
		SelectedAnswers: []string{},
	}

	if ans.Selected == "" && len(ans.Selections) == 0 {
		// Skipped: absent from the payload or submitted empty.
		return graded
	}

	switch q.QuestionType {
	case model.MultipleSelect:
		selections := ans.Selections
		if len(selections) == 0 {
			selections = []string{ans.Selected}
		}
		graded.SelectedAnswers = selections
		graded.IsCorrect = equalSets(selections, q.CorrectAnswerSet())
	case model.MultipleChoice, model.TrueFalse:
		graded.SelectedAnswer = ans.Selected
		graded.IsCorrect = ans.Selected != "" && ans.Selected == q.CorrectAnswer
	default:
		// Unknown question types fail closed.
	}

	return graded
}

// equalSets compares two selections as sets: order-independent, duplicates
// collapsed, every element of each present in the other.
func equalSets(selected, correct []string) bool {
	if len(correct) == 0 {
		return false
	}

	want := make(map[string]bool, len(correct))
	for _, v := range correct {
		want[v] = true
	}
	got := make(map[string]bool, len(selected))
	for _, v := range selected {
		got[v] = true
	}

	if len(got) != len(want) {
		return false
	}
	for v := range want {
		if !got[v] {
			return false
		}
	}
	return true
}

// LetterGrade maps a percentage score onto the certificate grade scale.
func LetterGrade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
