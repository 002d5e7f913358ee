package postgres

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
VALUES ($1, $2, $3, $4)
ON CONFLICT (identity) DO NOTHING`,
		user.Identity, user.DisplayName, user.Handle, utc(user.RegisteredAt))
	return err
}

func (s *Store) GetUser(ctx context.Context, identity int64) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
SELECT identity, display_name, handle, registered_at
FROM users WHERE identity = $1`, identity).
		Scan(&u.Identity, &u.DisplayName, &u.Handle, &u.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrNotFound
	}
	return u, err
}
