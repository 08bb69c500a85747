package auth

import "context"

type ctxKey string

const claimsKey ctxKey = "claims"

// NewContext returns a copy of ctx carrying the validated claims.
func NewContext(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// FromContext returns the claims attached by the auth gate, if any.
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok && c != nil
}
