package models

import (
	"math"
	"time"
)

// Habit is a bad habit a user is trying to quit, together with its streak counters.
// The active habit for a user is the one with the greatest ID.
type Habit struct {
	ID            int64     `json:"id"`
	Owner         int64     `json:"owner"`
	Name          string    `json:"name"`
	StartedAt     time.Time `json:"started_at"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	TotalDays     int       `json:"total_days"`
	BreakDays     int       `json:"break_days"`
}

// ApplySuccess extends the current streak by one day.
func (h *Habit) ApplySuccess() {
	h.CurrentStreak++
	if h.CurrentStreak > h.LongestStreak {
		h.LongestStreak = h.CurrentStreak
	}
	h.TotalDays++
}

// ApplyBreak resets the current streak. LongestStreak and TotalDays are kept.
func (h *Habit) ApplyBreak() {
	h.CurrentStreak = 0
	h.BreakDays++
}

// Apply dispatches to ApplySuccess or ApplyBreak.
func (h *Habit) Apply(outcome Outcome) {
	switch outcome {
	case OutcomeSuccess:
		h.ApplySuccess()
	case OutcomeBreak:
		h.ApplyBreak()
	}
}

// Stats is the derived, read-only summary of a habit's counters.
type Stats struct {
	Name          string  `json:"name"`
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	TotalDays     int     `json:"total_days"`
	BreakDays     int     `json:"break_days"`
	SuccessRate   float64 `json:"success_rate"`
}

// Stats computes the habit's statistics. SuccessRate is a percentage rounded
// to one decimal place, or 0 when nothing has been recorded yet.
func (h Habit) Stats() Stats {
	return Stats{
		Name:          h.Name,
		CurrentStreak: h.CurrentStreak,
		LongestStreak: h.LongestStreak,
		TotalDays:     h.TotalDays,
		BreakDays:     h.BreakDays,
		SuccessRate:   SuccessRate(h.TotalDays, h.BreakDays),
	}
}

// SuccessRate returns 100*total/(total+breaks) rounded to one decimal place.
func SuccessRate(total, breaks int) float64 {
	days := total + breaks
	if days <= 0 {
		return 0
	}
	return math.Round(float64(total)*1000/float64(days)) / 10
}
