package storage

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/habitbreaker/internal/models"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("record not found")

// ApplyFunc mutates the active habit inside a storage transaction and returns
// the outcome to append to the daily report log.
type ApplyFunc func(h *models.Habit) models.Outcome

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	// AddUser inserts the user unless the identity already exists, in which case
	// the stored row is left untouched.
	AddUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, identity int64) (models.User, error)

	// Habits
	// AddHabit inserts a new habit, registering the owner first if needed, and
	// returns it with its assigned ID.
	AddHabit(ctx context.Context, habit models.Habit) (models.Habit, error)
	// GetActiveHabit returns the owner's most recently created habit or ErrNotFound.
	GetActiveHabit(ctx context.Context, owner int64) (models.Habit, error)
	GetHabitsForOwner(ctx context.Context, owner int64) ([]models.Habit, error)
	GetAllHabits(ctx context.Context) ([]models.Habit, error)
	// UpdateActiveHabit reads the owner's active habit, applies fn, persists the
	// new counters and appends a daily report, all in one transaction. It returns
	// ErrNotFound if the owner has no habit.
	UpdateActiveHabit(ctx context.Context, owner int64, at time.Time, fn ApplyFunc) (models.Habit, error)

	// Daily reports
	GetDailyReports(ctx context.Context, owner int64, limit int) ([]models.DailyReport, error)
	CountDailyReports(ctx context.Context, habitID int64) (success, breaks int, err error)

	// Schema
	// Migrate applies pending migrations, reporting progress through logFn,
	// and returns how many were applied.
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)

	// Utils
	GetConfigPath() string
}
