package sdk

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/celerix-dev/celerix-users/internal/engine"
	"github.com/celerix-dev/celerix-users/pkg/schema"
)

// Environment variables read by New.
const (
	EnvURL   = "USERAPI_URL"
	EnvToken = "USERAPI_TOKEN"
)

// New initializes a directory based on the environment.
// It returns the interface, so the caller doesn't care if it's local or remote.
func New() (UserDirectory, error) {
	// 1. Check if a remote API is defined in the environment
	if url := os.Getenv(EnvURL); url != "" {
		return NewClient(url, WithToken(os.Getenv(EnvToken)))
	}

	// 2. Fallback to embedded mode over the default seed
	return NewLocal(engine.NewMemStore(engine.DefaultSeed())), nil
}

// Local serves the directory from an in-process store without authentication.
type Local struct {
	store engine.UserStore
}

// NewLocal wraps an existing store.
func NewLocal(store engine.UserStore) *Local {
	return &Local{store: store}
}

func (l *Local) ListUsers(context.Context) ([]schema.User, error) {
	return l.store.List(), nil
}

func (l *Local) GetUser(_ context.Context, id int) (schema.User, error) {
	u, err := l.store.Get(id)
	return u, localError(err)
}

func (l *Local) AddUser(_ context.Context, u schema.User) (schema.User, error) {
	u.ID = 0
	created, err := l.store.Add(u)
	return created, localError(err)
}

func (l *Local) UpdateJob(_ context.Context, id int, job string) error {
	return localError(l.store.UpdateJob(id, job))
}

func (l *Local) DeleteUser(_ context.Context, id int) (schema.User, error) {
	removed, err := l.store.Remove(id)
	return removed, localError(err)
}

// localError maps engine errors onto the same sentinels the remote client reports.
func localError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, engine.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, engine.ErrInvalidUser):
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return err
}
