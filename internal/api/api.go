package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/celerix-dev/celerix-users/internal/engine"
)

// TokenIssuer is the part of auth.TokenService the login endpoint needs.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// Handler adapts HTTP requests to the user store and the token service.
// Known error kinds become status codes here; anything else is attached to the
// context with c.Error and left to the error boundary.
type Handler struct {
	Store  engine.UserStore
	Tokens TokenIssuer
}

// ErrDiagnostic is raised on purpose by the diagnostic error route.
var ErrDiagnostic = errors.New("test exception")

// Fail raises an internal fault. It exists to exercise the error boundary.
func (h *Handler) Fail(c *gin.Context) {
	_ = c.Error(ErrDiagnostic)
	c.Abort()
}

// NotFound answers unmatched routes.
func (h *Handler) NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Route %s %s not found.", c.Request.Method, c.Request.URL.Path)
}

func userID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid user id.")
		return 0, false
	}
	return id, true
}

// internal hands an unexpected error to the error boundary.
func internal(c *gin.Context, op string, err error) {
	_ = c.Error(fmt.Errorf("%s: %w", op, err))
	c.Abort()
}
