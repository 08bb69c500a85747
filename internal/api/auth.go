package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/celerix-dev/celerix-users/internal/auth"
	"github.com/celerix-dev/celerix-users/pkg/schema"
)

// Login issues a bearer token for a stored email address.
func (h *Handler) Login(c *gin.Context) {
	var req schema.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid login request.")
		return
	}

	token, err := h.Tokens.Issue(req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.String(http.StatusUnauthorized, "Invalid credentials")
			return
		}
		internal(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, schema.LoginResponse{Token: token})
}
