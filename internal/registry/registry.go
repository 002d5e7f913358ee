// Package registry records the users who have contacted the bot.
package registry

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/julianstephens/habitbreaker/internal/errors"
	"github.com/julianstephens/habitbreaker/internal/logger"
	"github.com/julianstephens/habitbreaker/internal/models"
	"github.com/julianstephens/habitbreaker/internal/storage"
)

type Registry struct {
	store storage.Provider
	now   func() time.Time
}

func New(store storage.Provider) *Registry {
	return &Registry{store: store, now: time.Now}
}

// Register records identity on first contact. Later calls are no-ops and never
// overwrite the stored display name or handle.
func (r *Registry) Register(ctx context.Context, identity int64, displayName, handle string) error {
	err := r.store.AddUser(ctx, models.User{
		Identity:     identity,
		DisplayName:  displayName,
		Handle:       handle,
		RegisteredAt: r.now(),
	})
	if err != nil {
		return apperrors.Storage("register user", err)
	}
	logger.Debug("User registered", "identity", identity)
	return nil
}

func (r *Registry) Get(ctx context.Context, identity int64) (models.User, error) {
	u, err := r.store.GetUser(ctx, identity)
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, apperrors.Storage("get user", err)
	}
	return u, nil
}
