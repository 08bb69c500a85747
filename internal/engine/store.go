// Package engine defines the core storage engine for the user directory.
package engine

import (
	"errors"

	"github.com/celerix-dev/celerix-users/pkg/schema"
)

var (
	// ErrUserNotFound is returned when no user carries the requested id or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidUser is returned when a candidate record or a job update fails validation.
	// The wrapped error names the failing fields.
	ErrInvalidUser = errors.New("invalid user")
)

// UserStore is the primary interface for interacting with the user directory.
// Implementations must be safe for concurrent use.
type UserStore interface {
	// List returns every user in insertion order. The slice is a snapshot owned by the caller.
	List() []schema.User
	// Get returns the user with the given id.
	Get(id int) (schema.User, error)
	// FindByEmail returns the first user, in insertion order, whose email matches exactly.
	FindByEmail(email string) (schema.User, error)
	// Add validates the candidate, assigns it a fresh id and appends it.
	Add(candidate schema.User) (schema.User, error)
	// UpdateJob replaces the job title of an existing user. No other field is touched.
	UpdateJob(id int, job string) error
	// Remove deletes the user and returns the removed record.
	Remove(id int) (schema.User, error)
}
