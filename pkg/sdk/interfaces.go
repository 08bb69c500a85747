package sdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/celerix-dev/celerix-users/pkg/schema"
)

var (
	// ErrUnauthorized is returned when the token is missing, expired or rejected,
	// or when login is refused.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when the requested user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest is returned when the server rejects the request payload.
	ErrBadRequest = errors.New("bad request")
)

// APIError carries the status and message of a failed call.
// errors.Is matches it against ErrUnauthorized, ErrNotFound and ErrBadRequest.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("userapi: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("userapi: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// --- Functional Interfaces (Interface Segregation) ---

// Authenticator exchanges a registered email for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, email string) (string, error)
}

// UserReader defines the read operations of the directory.
type UserReader interface {
	// ListUsers returns every user in insertion order; an empty directory yields an empty slice.
	ListUsers(ctx context.Context) ([]schema.User, error)
	GetUser(ctx context.Context, id int) (schema.User, error)
}

// UserWriter defines the mutating operations of the directory.
type UserWriter interface {
	// AddUser ignores u.ID and returns the stored record with its assigned id.
	AddUser(ctx context.Context, u schema.User) (schema.User, error)
	UpdateJob(ctx context.Context, id int, job string) error
	DeleteUser(ctx context.Context, id int) (schema.User, error)
}

// --- Composite Interfaces ---

// UserDirectory is the primary interface for working with users,
// whether the directory is remote or embedded.
type UserDirectory interface {
	UserReader
	UserWriter
}
