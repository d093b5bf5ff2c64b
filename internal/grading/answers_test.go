package grading

import (
	"encoding/json"
	"testing"
)

func TestNormalizeArrayShape(t *testing.T) {
	raw := json.RawMessage(`[
		{"questionId": 1, "selectedAnswer": "Paris"},
		{"questionId": "2", "selectedAnswers": ["a", "b"]},
		{"questionId": 3, "selectedAnswer": ["x", "y"]}
	]`)

	got := Normalize(raw)
	if len(got) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(got))
	}
	if got[0].QuestionID != 1 || got[0].Selected != "Paris" {
		t.Fatalf("entry 0 = %+v", got[0])
	}
	if got[1].QuestionID != 2 || len(got[1].Selections) != 2 {
		t.Fatalf("entry 1 = %+v", got[1])
	}
	// A list in selectedAnswer feeds both the single value and the set.
	if got[2].Selected != "x" || len(got[2].Selections) != 2 {
		t.Fatalf("entry 2 = %+v", got[2])
	}
}

func TestNormalizeObjectShape(t *testing.T) {
	raw := json.RawMessage(`{"7": "true", "3": ["a", "c"], "9": 42}`)

	got := Normalize(raw)
	if len(got) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(got))
	}
	// Output is sorted by question id for determinism.
	if got[0].QuestionID != 3 || len(got[0].Selections) != 2 {
		t.Fatalf("entry 0 = %+v", got[0])
	}
	if got[1].QuestionID != 7 || got[1].Selected != "true" {
		t.Fatalf("entry 1 = %+v", got[1])
	}
	if got[2].QuestionID != 9 || got[2].Selected != "42" {
		t.Fatalf("entry 2 = %+v", got[2])
	}
}

func TestNormalizeMapOfValues(t *testing.T) {
	raw := json.RawMessage(`[{"questionId": 5, "selectedAnswers": {"0": "a", "1": "b"}}]`)

	got := Normalize(raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(got))
	}
	if len(got[0].Selections) != 2 {
		t.Fatalf("selections = %v", got[0].Selections)
	}
}

func TestNormalizeMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "empty payload", raw: ``, want: 0},
		{name: "invalid json", raw: `{"answers":`, want: 0},
		{name: "non-numeric keys dropped", raw: `{"abc": "x", "4": "y"}`, want: 1},
		{name: "scalar payload", raw: `"hello"`, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(json.RawMessage(tc.raw))
			if len(got) != tc.want {
				t.Fatalf("expected %d answers, got %d", tc.want, len(got))
			}
		})
	}
}
