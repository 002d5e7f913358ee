// Package tracker implements the habit lifecycle: creating the active habit,
// recording daily successes and breaks, and reporting streak statistics.
package tracker

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/julianstephens/habitbreaker/internal/constants"
	apperrors "github.com/julianstephens/habitbreaker/internal/errors"
	"github.com/julianstephens/habitbreaker/internal/logger"
	"github.com/julianstephens/habitbreaker/internal/models"
	"github.com/julianstephens/habitbreaker/internal/storage"
)

type Tracker struct {
	store  storage.Provider
	policy *bluemonday.Policy
	locks  *keyedMutex
	now    func() time.Time
}

func New(store storage.Provider) *Tracker {
	return &Tracker{
		store:  store,
		policy: bluemonday.StrictPolicy(),
		locks:  newKeyedMutex(),
		now:    time.Now,
	}
}

// cleanName trims a habit name and rejects anything that is not plain text.
// Names are stored exactly as typed, so bluemonday only detects markup here.
func (t *Tracker) cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.ErrEmptyName
	}
	if !utf8.ValidString(name) {
		return "", apperrors.Validation("name is not valid UTF-8")
	}
	if utf8.RuneCountInString(name) > constants.MaxHabitNameLength {
		return "", apperrors.ErrNameTooLong
	}

	// The strict policy escapes entities; unescaping leaves only removed tags
	// as a difference.
	if html.UnescapeString(t.policy.Sanitize(name)) != name {
		return "", apperrors.ErrNameMarkup
	}
	return name, nil
}

// CreateHabit starts a new zeroed habit for identity. It becomes the active
// habit; earlier habits are kept but no longer updated.
func (t *Tracker) CreateHabit(ctx context.Context, identity int64, name string) (models.Habit, error) {
	name, err := t.cleanName(name)
	if err != nil {
		return models.Habit{}, err
	}

	unlock := t.locks.Lock(identity)
	defer unlock()

	habit, err := t.store.AddHabit(ctx, models.Habit{
		Owner:     identity,
		Name:      name,
		StartedAt: t.now(),
	})
	if err != nil {
		return models.Habit{}, apperrors.Storage("create habit", err)
	}

	logger.Info("Habit created", "identity", identity, "habit_id", habit.ID)
	return habit, nil
}

// GetActiveHabit returns nil when identity has never created a habit.
func (t *Tracker) GetActiveHabit(ctx context.Context, identity int64) (*models.Habit, error) {
	habit, err := t.store.GetActiveHabit(ctx, identity)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("get active habit", err)
	}
	return &habit, nil
}

func (t *Tracker) record(ctx context.Context, identity int64, outcome models.Outcome) (models.Habit, error) {
	unlock := t.locks.Lock(identity)
	defer unlock()

	habit, err := t.store.UpdateActiveHabit(ctx, identity, t.now(), func(h *models.Habit) models.Outcome {
		h.Apply(outcome)
		return outcome
	})
	if errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, apperrors.ErrNoActiveHabit
	}
	if err != nil {
		return models.Habit{}, apperrors.Storage("record "+string(outcome), err)
	}

	logger.Debug("Outcome recorded", "identity", identity, "habit_id", habit.ID,
		"outcome", outcome, "current_streak", habit.CurrentStreak)
	return habit, nil
}

// RecordSuccess extends the active habit's streak and returns the new
// current streak.
func (t *Tracker) RecordSuccess(ctx context.Context, identity int64) (int, error) {
	habit, err := t.record(ctx, identity, models.OutcomeSuccess)
	if err != nil {
		return 0, err
	}
	return habit.CurrentStreak, nil
}

// RecordBreak resets the active habit's current streak.
func (t *Tracker) RecordBreak(ctx context.Context, identity int64) (bool, error) {
	if _, err := t.record(ctx, identity, models.OutcomeBreak); err != nil {
		return false, err
	}
	return true, nil
}

// GetStats returns ErrNoActiveHabit with nil stats when there is no habit.
func (t *Tracker) GetStats(ctx context.Context, identity int64) (*models.Stats, error) {
	habit, err := t.GetActiveHabit(ctx, identity)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, apperrors.ErrNoActiveHabit
	}
	stats := habit.Stats()
	return &stats, nil
}

// History returns the newest limit daily reports across all of identity's
// habits, newest first. A non-positive limit returns every report.
func (t *Tracker) History(ctx context.Context, identity int64, limit int) ([]models.DailyReport, error) {
	reports, err := t.store.GetDailyReports(ctx, identity, limit)
	if err != nil {
		return nil, apperrors.Storage("get history", err)
	}
	return reports, nil
}

// Habits lists every habit identity has created, active one first.
func (t *Tracker) Habits(ctx context.Context, identity int64) ([]models.Habit, error) {
	habits, err := t.store.GetHabitsForOwner(ctx, identity)
	if err != nil {
		return nil, apperrors.Storage("list habits", err)
	}
	return habits, nil
}
