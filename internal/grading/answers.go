package grading

import (
	"encoding/json"
	"sort"
	"strconv"
)

// SubmittedAnswer is the canonical form of one submitted answer. Clients send
// answers in several shapes (array of records, or an object keyed by question
// id, with selections as a scalar, a list, or a map of values); everything is
// folded into this form at the boundary so the grader only ever sees one
// representation.
type SubmittedAnswer struct {
	QuestionID uint
	Selected   string
	Selections []string
}

type rawAnswer struct {
	QuestionID      json.RawMessage `json:"questionId"`
	SelectedAnswer  interface{}     `json:"selectedAnswer"`
	SelectedAnswers interface{}     `json:"selectedAnswers"`
}

// Normalize reshapes a raw answers payload into canonical submitted answers.
// Malformed input never fails: entries that cannot be interpreted are dropped
// and later graded as skipped.
func Normalize(raw json.RawMessage) []SubmittedAnswer {
	if len(raw) == 0 {
		return nil
	}

	var list []rawAnswer
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]SubmittedAnswer, 0, len(list))
		for _, entry := range list {
			id, ok := parseQuestionID(entry.QuestionID)
			if !ok {
				continue
			}
			out = append(out, SubmittedAnswer{
				QuestionID: id,
				Selected:   firstValue(entry.SelectedAnswer),
				Selections: collectValues(entry.SelectedAnswers, entry.SelectedAnswer),
			})
		}
		return out
	}

	var byID map[string]interface{}
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil
	}

	out := make([]SubmittedAnswer, 0, len(byID))
	for key, value := range byID {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, SubmittedAnswer{
			QuestionID: uint(id),
			Selected:   firstValue(value),
			Selections: collectValues(value, nil),
		})
	}
	// Map iteration order is random; keep output deterministic.
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

func parseQuestionID(raw json.RawMessage) (uint, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n uint
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if id, err := strconv.ParseUint(s, 10, 64); err == nil {
			return uint(id), true
		}
	}
	return 0, false
}

// coerceValue renders a decoded JSON scalar as a string. Numbers drop
// trailing zeros so 2 and 2.0 compare equal against a stored "2".
func coerceValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// firstValue extracts the single selected value: the scalar itself, or the
// first element when a client sent an array for a single-select question.
func firstValue(v interface{}) string {
	if list, ok := v.([]interface{}); ok {
		if len(list) == 0 {
			return ""
		}
		return coerceValue(list[0])
	}
	return coerceValue(v)
}

// collectValues gathers a multi-select selection from whichever field is
// populated: selectedAnswers as a list, selectedAnswers as a map of values,
// or selectedAnswer carrying a list.
func collectValues(primary, fallback interface{}) []string {
	if vals := valuesOf(primary); len(vals) > 0 {
		return vals
	}
	return valuesOf(fallback)
}

func valuesOf(v interface{}) []string {
	switch val := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceValue(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case map[string]interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceValue(item); s != "" {
				out = append(out, s)
			}
		}
		sort.Strings(out)
		return out
	default:
		return nil
	}
}
