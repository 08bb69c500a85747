// Package auth issues and validates the bearer tokens guarding the user API.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/celerix-dev/celerix-users/internal/engine"
	"github.com/celerix-dev/celerix-users/pkg/schema"
)

// RoleUser is the only role handed out at login.
const RoleUser = "user"

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = time.Hour

var (
	ErrMissingSigningKey  = errors.New("signing key is missing")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// Claims is the payload of an issued token. Name and Role use the claim names
// common to .NET issued tokens so existing clients can read them.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"unique_name"`
	Role string `json:"role"`
}

// UserFinder resolves the login identifier to a stored user.
type UserFinder interface {
	FindByEmail(email string) (schema.User, error)
}

// TokenService issues HS256 tokens for known users and validates presented ones.
// It keeps no state about issued tokens.
type TokenService struct {
	signingKey []byte
	users      UserFinder
	ttl        time.Duration
	now        func() time.Time
}

type Option func(*TokenService)

// WithTTL overrides DefaultTokenTTL.
func WithTTL(ttl time.Duration) Option {
	return func(ts *TokenService) {
		if ttl > 0 {
			ts.ttl = ttl
		}
	}
}

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(ts *TokenService) {
		if now != nil {
			ts.now = now
		}
	}
}

// NewTokenService fails with ErrMissingSigningKey when signingKey is empty or blank.
func NewTokenService(signingKey string, users UserFinder, opts ...Option) (*TokenService, error) {
	if strings.TrimSpace(signingKey) == "" {
		return nil, ErrMissingSigningKey
	}
	if users == nil {
		return nil, errors.New("token service needs a user finder")
	}

	ts := &TokenService{
		signingKey: []byte(signingKey),
		users:      users,
		ttl:        DefaultTokenTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts, nil
}

// Issue signs a token for the user whose email matches exactly.
// No secret is verified: knowing a stored email is enough to log in.
func (ts *TokenService) Issue(email string) (string, error) {
	user, err := ts.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, engine.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	now := ts.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		Name: user.Email,
		Role: RoleUser,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry. Issuer and audience are not checked.
func (ts *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
