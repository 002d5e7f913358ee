package models

import (
	"fmt"
	"time"
)

// Outcome is the result a user reports for a single day.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeBreak   Outcome = "break"
)

// ParseOutcome converts a stored outcome string back into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeSuccess, OutcomeBreak:
		return Outcome(s), nil
	default:
		return "", fmt.Errorf("unknown outcome %q", s)
	}
}

// DailyReport is one row of the append-only outcome log.
type DailyReport struct {
	ID         int64     `json:"id"`
	Owner      int64     `json:"owner"`
	HabitID    int64     `json:"habit_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Outcome    Outcome   `json:"outcome"`
}
