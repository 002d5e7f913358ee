package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/julianstephens/habitbreaker/internal/models"
	"github.com/julianstephens/habitbreaker/internal/storage"
)

func (s *Store) AddUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (identity, display_name, handle, registered_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(identity) DO NOTHING`,
		user.Identity, user.DisplayName, user.Handle, formatTime(user.RegisteredAt))
	return err
}

func (s *Store) GetUser(ctx context.Context, identity int64) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT identity, display_name, handle, registered_at
		FROM users WHERE identity = ?`, identity)

	var u models.User
	var registeredAt string
	if err := row.Scan(&u.Identity, &u.DisplayName, &u.Handle, &registeredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}

	t, err := parseTime(registeredAt, "registered_at")
	if err != nil {
		return models.User{}, err
	}
	u.RegisteredAt = t

	return u, nil
}
