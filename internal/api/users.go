package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/celerix-dev/celerix-users/internal/engine"
	"github.com/celerix-dev/celerix-users/pkg/schema"
)

// UsersPath is the collection path; single users live below it.
const UsersPath = "/api/users"

func (h *Handler) ListUsers(c *gin.Context) {
	users := h.Store.List()
	if len(users) == 0 {
		c.String(http.StatusNotFound, "No users stored in database")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := h.Store.Get(id)
	if err != nil {
		if errors.Is(err, engine.ErrUserNotFound) {
			c.String(http.StatusNotFound, "No user found with id %d.", id)
			return
		}
		internal(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) AddUser(c *gin.Context) {
	var candidate schema.User
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.String(http.StatusBadRequest, "Invalid user payload: %v", err)
		return
	}
	candidate.ID = 0

	user, err := h.Store.Add(candidate)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidUser) {
			c.String(http.StatusBadRequest, "%s", err.Error())
			return
		}
		internal(c, "add user", err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", UsersPath, user.ID))
	c.JSON(http.StatusCreated, user)
}

// UpdateUserJob replaces the job title. The body is either a JSON string or raw text.
func (h *Handler) UpdateUserJob(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Unreadable request body.")
		return
	}
	job := string(raw)
	var decoded string
	if json.Unmarshal(raw, &decoded) == nil {
		job = decoded
	}

	if err := h.Store.UpdateJob(id, job); err != nil {
		switch {
		case errors.Is(err, engine.ErrUserNotFound):
			c.String(http.StatusNotFound, "No User found with ID %d.", id)
		case errors.Is(err, engine.ErrInvalidUser):
			c.String(http.StatusBadRequest, "Job must not be empty.")
		default:
			internal(c, "update job", err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	removed, err := h.Store.Remove(id)
	if err != nil {
		if errors.Is(err, engine.ErrUserNotFound) {
			c.String(http.StatusNotFound, "No User found with ID %d.", id)
			return
		}
		internal(c, "delete user", err)
		return
	}
	c.JSON(http.StatusOK, removed)
}
