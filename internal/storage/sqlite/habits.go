package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitbreaker/internal/models"
	"github.com/julianstephens/habitbreaker/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

const habitColumns = `id, owner, name, started_at, current_streak, longest_streak, total_days, break_days`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var startedAt string

	err := row.Scan(&h.ID, &h.Owner, &h.Name, &startedAt,
		&h.CurrentStreak, &h.LongestStreak, &h.TotalDays, &h.BreakDays)
	if err != nil {
		return models.Habit{}, err
	}

	h.StartedAt, err = parseTime(startedAt, "started_at")
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %d: %w", h.ID, err)
	}
	return h, nil
}

func (s *Store) AddHabit(ctx context.Context, habit models.Habit) (models.Habit, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Habit{}, err
	}
	defer tx.Rollback()

	// Creating a habit counts as first contact when the user skipped /start.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (identity, registered_at) VALUES (?, ?)
		ON CONFLICT(identity) DO NOTHING`,
		habit.Owner, formatTime(habit.StartedAt))
	if err != nil {
		return models.Habit{}, err
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO habits (owner, name, started_at, current_streak, longest_streak, total_days, break_days)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		habit.Owner, habit.Name, formatTime(habit.StartedAt),
		habit.CurrentStreak, habit.LongestStreak, habit.TotalDays, habit.BreakDays)
	if err != nil {
		return models.Habit{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Habit{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Habit{}, err
	}

	habit.ID = id
	return habit, nil
}

func (s *Store) GetActiveHabit(ctx context.Context, owner int64) (models.Habit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+habitColumns+`
		FROM habits WHERE owner = ? ORDER BY id DESC LIMIT 1`, owner)

	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, storage.ErrNotFound
	}
	return h, err
}

func (s *Store) GetHabitsForOwner(ctx context.Context, owner int64) ([]models.Habit, error) {
	return s.queryHabits(ctx, `
		SELECT `+habitColumns+`
		FROM habits WHERE owner = ? ORDER BY id DESC`, owner)
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
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Habit{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+habitColumns+`
		FROM habits WHERE owner = ? ORDER BY id DESC LIMIT 1`, owner)
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
		SET current_streak = ?, longest_streak = ?, total_days = ?, break_days = ?
		WHERE id = ?`,
		habit.CurrentStreak, habit.LongestStreak, habit.TotalDays, habit.BreakDays, habit.ID)
	if err != nil {
		return models.Habit{}, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO daily_reports (owner, habit_id, occurred_at, outcome)
		VALUES (?, ?, ?, ?)`,
		owner, habit.ID, formatTime(at), string(outcome))
	if err != nil {
		return models.Habit{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Habit{}, err
	}

	return habit, nil
}
