package models

import (
	"testing"
	"time"
)

func TestCompetitionStatusAt(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)
	competition := Competition{StartDate: start, EndDate: end}

	tests := []struct {
		name string
		now  time.Time
		want CompetitionStatus
	}{
		{"before start", start.Add(-time.Hour), CompetitionUpcoming},
		{"at start", start, CompetitionActive},
		{"mid window", start.AddDate(0, 0, 14), CompetitionActive},
		{"at end", end, CompetitionActive},
		{"after end", end.Add(time.Second), CompetitionClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := competition.StatusAt(tt.now); got != tt.want {
				t.Errorf("StatusAt(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestCompetitionOpen(t *testing.T) {
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	competition := Competition{
		StartDate: end.AddDate(0, -1, 0),
		EndDate:   end,
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before end", end.Add(-time.Hour), true},
		{"exactly at end", end, true},
		{"just past end", end.Add(time.Nanosecond), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := competition.Open(tt.now); got != tt.want {
				t.Errorf("Open(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
