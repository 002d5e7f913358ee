package models

import (
	"testing"
)

func TestApplySequence(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []Outcome
		current  int
		longest  int
		total    int
		breaks   int
	}{
		{
			name:     "first success",
			outcomes: []Outcome{OutcomeSuccess},
			current:  1, longest: 1, total: 1, breaks: 0,
		},
		{
			name:     "break on fresh habit",
			outcomes: []Outcome{OutcomeBreak},
			current:  0, longest: 0, total: 0, breaks: 1,
		},
		{
			name:     "break keeps longest",
			outcomes: []Outcome{OutcomeSuccess, OutcomeSuccess, OutcomeBreak, OutcomeSuccess},
			current:  1, longest: 2, total: 3, breaks: 1,
		},
		{
			name:     "new streak overtakes old",
			outcomes: []Outcome{OutcomeSuccess, OutcomeBreak, OutcomeSuccess, OutcomeSuccess},
			current:  2, longest: 2, total: 3, breaks: 1,
		},
		{
			name:     "repeated breaks",
			outcomes: []Outcome{OutcomeSuccess, OutcomeBreak, OutcomeBreak},
			current:  0, longest: 1, total: 1, breaks: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h Habit
			for _, o := range tt.outcomes {
				h.Apply(o)
			}
			if h.CurrentStreak != tt.current || h.LongestStreak != tt.longest ||
				h.TotalDays != tt.total || h.BreakDays != tt.breaks {
				t.Errorf("counters = %d/%d/%d/%d, want %d/%d/%d/%d",
					h.CurrentStreak, h.LongestStreak, h.TotalDays, h.BreakDays,
					tt.current, tt.longest, tt.total, tt.breaks)
			}
		})
	}
}

func TestCountersInvariants(t *testing.T) {
	// A fixed, irregular pattern of outcomes.
	pattern := "ssbsssbbsbsssssbs"

	var h Habit
	for i, c := range pattern {
		prevTotal, prevBreaks := h.TotalDays, h.BreakDays
		if c == 's' {
			h.ApplySuccess()
		} else {
			h.ApplyBreak()
		}
		if h.LongestStreak < h.CurrentStreak {
			t.Fatalf("step %d: longest %d < current %d", i, h.LongestStreak, h.CurrentStreak)
		}
		if h.TotalDays < prevTotal || h.BreakDays < prevBreaks {
			t.Fatalf("step %d: counters decreased", i)
		}
	}
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		total  int
		breaks int
		want   float64
	}{
		{total: 0, breaks: 0, want: 0},
		{total: 3, breaks: 1, want: 75.0},
		{total: 0, breaks: 4, want: 0},
		{total: 5, breaks: 0, want: 100},
		{total: 1, breaks: 2, want: 33.3},
		{total: 2, breaks: 1, want: 66.7},
	}

	for _, tt := range tests {
		if got := SuccessRate(tt.total, tt.breaks); got != tt.want {
			t.Errorf("SuccessRate(%d, %d) = %v, want %v", tt.total, tt.breaks, got, tt.want)
		}
	}
}

func TestStats(t *testing.T) {
	h := Habit{Name: "smoking", CurrentStreak: 1, LongestStreak: 2, TotalDays: 3, BreakDays: 1}
	s := h.Stats()
	if s.Name != "smoking" || s.CurrentStreak != 1 || s.LongestStreak != 2 {
		t.Errorf("unexpected stats: %+v", s)
	}
	if s.SuccessRate != 75.0 {
		t.Errorf("success rate = %v, want 75.0", s.SuccessRate)
	}
}

func TestParseOutcome(t *testing.T) {
	if o, err := ParseOutcome("break"); err != nil || o != OutcomeBreak {
		t.Errorf("ParseOutcome(break) = %q, %v", o, err)
	}
	if _, err := ParseOutcome("relapse"); err == nil {
		t.Error("expected error for unknown outcome")
	}
}
