package grading

import (
	"encoding/json"
	"testing"

	"educonnect_backend/internal/model"
)

func question(id uint, qType model.QuestionType, correct string, correctSet []string) model.AssessmentQuestion {
	q := model.AssessmentQuestion{
		QuestionType:  qType,
		CorrectAnswer: correct,
	}
	q.ID = id
	if correctSet != nil {
		raw, _ := json.Marshal(correctSet)
		q.CorrectAnswers = raw
	}
	return q
}

func TestGradeSingleSelect(t *testing.T) {
	tests := []struct {
		name      string
		correct   string
		submitted SubmittedAnswer
		want      bool
	}{
		{name: "exact match", correct: "Paris", submitted: SubmittedAnswer{QuestionID: 1, Selected: "Paris"}, want: true},
		{name: "wrong value", correct: "Paris", submitted: SubmittedAnswer{QuestionID: 1, Selected: "London"}, want: false},
		{name: "array form uses first element", correct: "Paris", submitted: SubmittedAnswer{QuestionID: 1, Selected: "Paris", Selections: []string{"Paris"}}, want: true},
		{name: "empty treated as skipped", correct: "Paris", submitted: SubmittedAnswer{QuestionID: 1, Selected: ""}, want: false},
		{name: "case sensitive", correct: "Paris", submitted: SubmittedAnswer{QuestionID: 1, Selected: "paris"}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qs := []model.AssessmentQuestion{question(1, model.MultipleChoice, tc.correct, nil)}
			res := Grade(qs, []SubmittedAnswer{tc.submitted})
			if res.Answers[0].IsCorrect != tc.want {
				t.Fatalf("isCorrect = %v, want %v", res.Answers[0].IsCorrect, tc.want)
			}
		})
	}
}

func TestGradeTrueFalse(t *testing.T) {
	qs := []model.AssessmentQuestion{question(1, model.TrueFalse, "true", nil)}

	res := Grade(qs, []SubmittedAnswer{{QuestionID: 1, Selected: "true"}})
	if !res.Answers[0].IsCorrect {
		t.Fatal("expected true/false answer to be correct")
	}
	if res.Answers[0].SelectedAnswer != "true" || len(res.Answers[0].SelectedAnswers) != 0 {
		t.Fatalf("single-select shape not normalized: %+v", res.Answers[0])
	}
}

func TestGradeMultipleSelect(t *testing.T) {
	tests := []struct {
		name       string
		selections []string
		want       bool
	}{
		{name: "order independent", selections: []string{"b", "a"}, want: true},
		{name: "missing element", selections: []string{"a"}, want: false},
		{name: "extra element", selections: []string{"a", "b", "c"}, want: false},
		{name: "duplicates collapse", selections: []string{"a", "a", "b"}, want: true},
		{name: "empty skipped", selections: nil, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qs := []model.AssessmentQuestion{question(1, model.MultipleSelect, "", []string{"a", "b"})}
			res := Grade(qs, []SubmittedAnswer{{QuestionID: 1, Selections: tc.selections}})
			if res.Answers[0].IsCorrect != tc.want {
				t.Fatalf("isCorrect = %v, want %v", res.Answers[0].IsCorrect, tc.want)
			}
		})
	}
}

func TestGradeUnknownTypeFailsClosed(t *testing.T) {
	qs := []model.AssessmentQuestion{question(1, "essay", "anything", nil)}
	res := Grade(qs, []SubmittedAnswer{{QuestionID: 1, Selected: "anything"}})
	if res.Answers[0].IsCorrect {
		t.Fatal("unknown question type must grade as incorrect")
	}
}

func TestGradeSkippedQuestionCoverage(t *testing.T) {
	qs := []model.AssessmentQuestion{
		question(1, model.MultipleChoice, "a", nil),
		question(2, model.MultipleChoice, "b", nil),
	}
	res := Grade(qs, []SubmittedAnswer{{QuestionID: 1, Selected: "a"}})

	if len(res.Answers) != 2 {
		t.Fatalf("expected one graded answer per question, got %d", len(res.Answers))
	}
	if res.Answers[1].IsCorrect {
		t.Fatal("skipped question graded correct")
	}
	if res.CorrectCount != 1 {
		t.Fatalf("correctCount = %d, want 1", res.CorrectCount)
	}
}

func TestGradeDeterminism(t *testing.T) {
	qs := []model.AssessmentQuestion{
		question(1, model.MultipleChoice, "a", nil),
		question(2, model.MultipleSelect, "", []string{"x", "y"}),
		question(3, model.TrueFalse, "false", nil),
	}
	submitted := []SubmittedAnswer{
		{QuestionID: 1, Selected: "a"},
		{QuestionID: 2, Selections: []string{"y", "x"}},
		{QuestionID: 3, Selected: "true"},
	}

	first := Grade(qs, submitted)
	for i := 0; i < 10; i++ {
		got := Grade(qs, submitted)
		if got.Score != first.Score || got.CorrectCount != first.CorrectCount {
			t.Fatalf("run %d diverged: %+v vs %+v", i, got, first)
		}
		for j := range got.Answers {
			if got.Answers[j].IsCorrect != first.Answers[j].IsCorrect {
				t.Fatalf("run %d answer %d diverged", i, j)
			}
		}
	}
}

func TestScoreRoundingAndBounds(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		correct int
		want    int
	}{
		{name: "all correct", total: 4, correct: 4, want: 100},
		{name: "none correct", total: 4, correct: 0, want: 0},
		{name: "three of four", total: 4, correct: 3, want: 75},
		{name: "one of three rounds half up", total: 3, correct: 1, want: 33},
		{name: "two of three", total: 3, correct: 2, want: 67},
		{name: "half rounds up", total: 8, correct: 1, want: 13},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qs := make([]model.AssessmentQuestion, tc.total)
			submitted := make([]SubmittedAnswer, 0, tc.correct)
			for i := 0; i < tc.total; i++ {
				qs[i] = question(uint(i+1), model.MultipleChoice, "yes", nil)
				if i < tc.correct {
					submitted = append(submitted, SubmittedAnswer{QuestionID: uint(i + 1), Selected: "yes"})
				}
			}
			res := Grade(qs, submitted)
			if res.Score != tc.want {
				t.Fatalf("score = %d, want %d", res.Score, tc.want)
			}
			if res.Score < 0 || res.Score > 100 {
				t.Fatalf("score %d out of bounds", res.Score)
			}
		})
	}
}

func TestPassedThreshold(t *testing.T) {
	qs := []model.AssessmentQuestion{
		question(1, model.MultipleChoice, "a", nil),
		question(2, model.MultipleChoice, "b", nil),
	}
	res := Grade(qs, []SubmittedAnswer{{QuestionID: 1, Selected: "a"}})

	if !res.Passed(50) {
		t.Fatal("score 50 must pass threshold 50")
	}
	if res.Passed(51) {
		t.Fatal("score 50 must not pass threshold 51")
	}
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "A"}, {90, "A"},
		{85, "B"}, {80, "B"},
		{75, "C"}, {70, "C"},
		{65, "D"}, {60, "D"},
		{55, "F"}, {0, "F"},
	}

	for _, tc := range tests {
		if got := LetterGrade(tc.score); got != tc.want {
			t.Errorf("LetterGrade(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

// Four multiple-choice questions, passing score 70: three correct and one
// skipped yields 75, a pass, and a C on the certificate scale.
func TestGradeEndToEndScenario(t *testing.T) {
	qs := []model.AssessmentQuestion{
		question(1, model.MultipleChoice, "a", nil),
		question(2, model.MultipleChoice, "b", nil),
		question(3, model.MultipleChoice, "c", nil),
		question(4, model.MultipleChoice, "d", nil),
	}
	submitted := []SubmittedAnswer{
		{QuestionID: 1, Selected: "a"},
		{QuestionID: 2, Selected: "b"},
		{QuestionID: 3, Selected: "c"},
	}

	res := Grade(qs, submitted)
	if res.Score != 75 {
		t.Fatalf("score = %d, want 75", res.Score)
	}
	if !res.Passed(70) {
		t.Fatal("expected a pass at threshold 70")
	}
	if grade := LetterGrade(res.Score); grade != "C" {
		t.Fatalf("grade = %s, want C", grade)
	}
}
