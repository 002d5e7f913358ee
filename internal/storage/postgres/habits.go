package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitbreaker/internal/logger"
	"github.com/julianstephens/habitbreaker/internal/models"
	"github.com/julianstephens/habitbreaker/internal/storage"
)

const habitColumns = `id, owner, name, started_at, current_streak, longest_streak, total_days, break_days`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	err := row.Scan(&h.ID, &h.Owner, &h.Name, &h.StartedAt,
		&h.CurrentStreak, &h.LongestStreak, &h.TotalDays, &h.BreakDays)
	return h, err
}

func (s *Store) AddHabit(ctx context.Context, habit models.Habit) (models.Habit, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Habit{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO users (identity, registered_at) VALUES ($1, $2)
ON CONFLICT (identity) DO NOTHING`,
		habit.Owner, utc(habit.StartedAt))
	if err != nil {
		return models.Habit{}, err
	}

	err = tx.QueryRowContext(ctx, `
INSERT INTO habits (owner, name, started_at, current_streak, longest_streak, total_days, break_days)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`,
		habit.Owner, habit.Name, utc(habit.StartedAt),
		habit.CurrentStreak, habit.LongestStreak, habit.TotalDays, habit.BreakDays).Scan(&habit.ID)
	if err != nil {
		return models.Habit{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *Store) GetActiveHabit(ctx context.Context, owner int64) (models.Habit, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+habitColumns+`
FROM habits WHERE owner = $1 ORDER BY id DESC LIMIT 1`, owner)

	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, storage.ErrNotFound
	}
	return h, err
}

func (s *Store) GetHabitsForOwner(ctx context.Context, owner int64) ([]models.Habit, error) {
	return s.queryHabits(ctx, `
SELECT `+habitColumns+`
FROM habits WHERE owner = $1 ORDER BY id DESC`, owner)
}

func (s *Store) GetAllHabits(ctx context.Context) ([]models.Habit, error) {
	return s.queryHabits(ctx, `SELECT `+habitColumns+` FROM habits ORDER BY id`)
}

func (s *Store) queryHabits(ctx context.Context, query string, args ...any) ([]models.Habit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateActiveHabit(ctx context.Context, owner int64, at time.Time, fn storage.ApplyFunc) (models.Habit, error) {
	return retryOnce(func() (models.Habit, error) {
		return s.updateActiveHabit(ctx, owner, at, fn)
	})
}

// retryOnce runs op again after a serialization failure or deadlock. Each run
// is a whole transaction, so nothing from the failed attempt survives.
func retryOnce(op func() (models.Habit, error)) (models.Habit, error) {
	habit, err := op()
	if err == nil || !isRetryable(err) {
		return habit, err
	}

	logger.Debug("Retrying habit update after conflict", "error", err)
	habit, err = op()
	if err != nil && isRetryable(err) {
		return models.Habit{}, fmt.Errorf("concurrent update, retry the command: %w", err)
	}
	return habit, err
}

func (s *Store) updateActiveHabit(ctx context.Context, owner int64, at time.Time, fn storage.ApplyFunc) (models.Habit, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Habit{}, err
	}
	defer tx.Rollback()

	// FOR UPDATE holds the row until commit so a second writer reads our counters.
	row := tx.QueryRowContext(ctx, `
SELECT `+habitColumns+`
FROM habits WHERE owner = $1 ORDER BY id DESC LIMIT 1
FOR UPDATE`, owner)
	habit, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, storage.ErrNotFound
		}
		return models.Habit{}, err
	}

	outcome := fn(&habit)

	_, err = tx.ExecContext(ctx, `
UPDATE habits
SET current_streak = $1, longest_streak = $2, total_days = $3, break_days = $4
WHERE id = $5`,
		habit.CurrentStreak, habit.LongestStreak, habit.TotalDays, habit.BreakDays, habit.ID)
	if err != nil {
		return models.Habit{}, err
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO daily_reports (owner, habit_id, occurred_at, outcome)
VALUES ($1, $2, $3, $4)`,
		owner, habit.ID, utc(at), string(outcome))
	if err != nil {
		return models.Habit{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}
