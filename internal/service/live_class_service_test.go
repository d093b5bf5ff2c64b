package service

import (
	"testing"

	"educonnect_backend/internal/model"
)

func TestLiveClassStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from model.LiveClassStatus
		to   model.LiveClassStatus
		want bool
	}{
		{"scheduled to live", model.LiveClassScheduled, model.LiveClassLive, true},
		{"scheduled to cancelled", model.LiveClassScheduled, model.LiveClassCancelled, true},
		{"scheduled to ended", model.LiveClassScheduled, model.LiveClassEnded, false},
		{"live to ended", model.LiveClassLive, model.LiveClassEnded, true},
		{"live to cancelled", model.LiveClassLive, model.LiveClassCancelled, false},
		{"live back to scheduled", model.LiveClassLive, model.LiveClassScheduled, false},
		{"ended is terminal", model.LiveClassEnded, model.LiveClassLive, false},
		{"cancelled is terminal", model.LiveClassCancelled, model.LiveClassLive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validLiveClassTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("validLiveClassTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
