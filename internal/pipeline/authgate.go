package pipeline

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/celerix-dev/celerix-users/internal/auth"
	"github.com/celerix-dev/celerix-users/internal/logging"
)

// ClaimsKey is the gin context key holding the *auth.Claims of an authenticated request.
const ClaimsKey = "auth.claims"

// TokenValidator is the part of auth.TokenService the gate needs.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// AuthGate answers 401 unless the request carries a valid bearer token.
// Requests for the public paths pass through untouched.
func AuthGate(v TokenValidator, log logging.Logger, public ...string) gin.HandlerFunc {
	open := make(map[string]struct{}, len(public))
	for _, p := range public {
		open[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := open[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			challenge(c, "")
			return
		}

		claims, err := v.Validate(token)
		if err != nil {
			log.Debug(c.Request.Context(), "bearer token rejected", "path", c.Request.URL.Path, "error", err)
			if errors.Is(err, auth.ErrTokenExpired) {
				challenge(c, `error="invalid_token", error_description="The token is expired"`)
			} else {
				challenge(c, `error="invalid_token"`)
			}
			return
		}

		c.Set(ClaimsKey, claims)
		c.Request = c.Request.WithContext(auth.NewContext(c.Request.Context(), claims))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func challenge(c *gin.Context, params string) {
	value := "Bearer"
	if params != "" {
		value += " " + params
	}
	c.Header("WWW-Authenticate", value)
	c.AbortWithStatus(http.StatusUnauthorized)
}
