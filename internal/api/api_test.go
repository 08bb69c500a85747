package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celerix-dev/celerix-users/internal/auth"
	"github.com/celerix-dev/celerix-users/internal/engine"
	"github.com/celerix-dev/celerix-users/pkg/schema"
)

type stubIssuer struct {
	err error
}

func (s stubIssuer) Issue(email string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-for-" + email, nil
}

func setupTestRouter(seed []schema.User) (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)
	h := &Handler{Store: engine.NewMemStore(seed), Tokens: stubIssuer{}}
	r := gin.New()

	r.POST("/api/auth/login", h.Login)
	r.GET("/api/users", h.ListUsers)
	r.GET("/api/users/:id", h.GetUser)
	r.POST("/api/users", h.AddUser)
	r.PUT("/api/users/:id", h.UpdateUserJob)
	r.DELETE("/api/users/:id", h.DeleteUser)

	return r, h
}

func perform(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validUserJSON(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"firstName": "Erika",
		"lastName":  "Musterfrau",
		"email":     "erika.musterfrau@firma.de",
		"address":   "Beispielallee 7, München",
		"age":       29,
		"job":       "Entwicklerin",
	})
	require.NoError(t, err)
	return body
}

func TestLogin(t *testing.T) {
	r, _ := setupTestRouter(engine.DefaultSeed())

	w := perform(r, "POST", "/api/auth/login", []byte(`{"email":"anna.mueller@firma.de"}`))
	require.Equal(t, http.StatusOK, w.Code)
	var res schema.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "token-for-anna.mueller@firma.de", res.Token)

	w = perform(r, "POST", "/api/auth/login", []byte(`not json`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{Store: engine.NewMemStore(nil), Tokens: stubIssuer{err: auth.ErrInvalidCredentials}}
	r := gin.New()
	r.POST("/login", h.Login)

	w := perform(r, "POST", "/login", []byte(`{"email":"nobody@firma.de"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", w.Body.String())
}

func TestLogin_UnexpectedErrorIsAttached(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{Store: engine.NewMemStore(nil), Tokens: stubIssuer{err: errors.New("hsm offline")}}
	r := gin.New()
	var attached error
	r.Use(func(c *gin.Context) {
		c.Next()
		if last := c.Errors.Last(); last != nil {
			attached = last.Err
		}
	})
	r.POST("/login", h.Login)

	perform(r, "POST", "/login", []byte(`{"email":"anna.mueller@firma.de"}`))
	require.Error(t, attached)
	assert.Contains(t, attached.Error(), "hsm offline")
}

func TestListUsers(t *testing.T) {
	r, _ := setupTestRouter(engine.DefaultSeed())

	w := perform(r, "GET", "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []schema.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Equal(t, engine.DefaultSeed(), users)
}

func TestListUsers_Empty(t *testing.T) {
	r, _ := setupTestRouter(nil)

	w := perform(r, "GET", "/api/users", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No users stored in database", w.Body.String())
}

func TestGetUser(t *testing.T) {
	r, _ := setupTestRouter(engine.DefaultSeed())

	w := perform(r, "GET", "/api/users/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var u schema.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, "max.mustermann@firma.de", u.Email)

	w = perform(r, "GET", "/api/users/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No user found with id 99.", w.Body.String())

	w = perform(r, "GET", "/api/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddUser(t *testing.T) {
	r, h := setupTestRouter(engine.DefaultSeed())

	w := perform(r, "POST", "/api/users", validUserJSON(t))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/users/3", w.Header().Get("Location"))

	var created schema.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 3, created.ID)

	stored, err := h.Store.Get(3)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
}

func TestAddUser_IgnoresClientID(t *testing.T) {
	r, _ := setupTestRouter(engine.DefaultSeed())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(validUserJSON(t), &payload))
	payload["id"] = 1
	body, _ := json.Marshal(payload)

	w := perform(r, "POST", "/api/users", body)
	require.Equal(t, http.StatusCreated, w.Code)
	var created schema.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 3, created.ID)
}

func TestAddUser_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		patch map[string]any
		field string
	}{
		{"blank first name", map[string]any{"firstName": " "}, "firstName"},
		{"missing email", map[string]any{"email": ""}, "email"},
		{"weak email", map[string]any{"email": "erika-at-firma"}, "email"},
		{"age too high", map[string]any{"age": 101}, "age"},
		{"age zero", map[string]any{"age": 0}, "age"},
		{"blank job", map[string]any{"job": "   "}, "job"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, h := setupTestRouter(engine.DefaultSeed())

			var payload map[string]any
			require.NoError(t, json.Unmarshal(validUserJSON(t), &payload))
			for k, v := range tc.patch {
				payload[k] = v
			}
			body, _ := json.Marshal(payload)

			w := perform(r, "POST", "/api/users", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tc.field)
			assert.Len(t, h.Store.List(), 2)
		})
	}
}

func TestAddUser_MalformedJSON(t *testing.T) {
	r, _ := setupTestRouter(nil)

	w := perform(r, "POST", "/api/users", []byte(`{"age":"old"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, "POST", "/api/users", []byte(`invalid`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserJob(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantJob string
	}{
		{"json string", `"Teamleiterin"`, "Teamleiterin"},
		{"raw text", `Teamleiterin Recruiting`, "Teamleiterin Recruiting"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, h := setupTestRouter(engine.DefaultSeed())
			before, _ := h.Store.Get(1)

			w := perform(r, "PUT", "/api/users/1", []byte(tc.body))
			require.Equal(t, http.StatusNoContent, w.Code)
			assert.Empty(t, w.Body.String())

			after, _ := h.Store.Get(1)
			assert.Equal(t, tc.wantJob, after.Job)
			after.Job = before.Job
			assert.Equal(t, before, after)
		})
	}
}

func TestUpdateUserJob_Errors(t *testing.T) {
	r, h := setupTestRouter(engine.DefaultSeed())

	for _, body := range []string{"", "   ", `""`, `"  "`, `null`} {
		w := perform(r, "PUT", "/api/users/1", []byte(body))
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		assert.Equal(t, "Job must not be empty.", w.Body.String())
	}
	u, _ := h.Store.Get(1)
	assert.Equal(t, "HR Managerin", u.Job)

	w := perform(r, "PUT", "/api/users/77", []byte(`"CTO"`))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No User found with ID 77.", w.Body.String())
}

func TestDeleteUser(t *testing.T) {
	r, h := setupTestRouter(engine.DefaultSeed())

	w := perform(r, "DELETE", "/api/users/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var removed schema.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &removed))
	assert.Equal(t, 2, removed.ID)

	_, err := h.Store.Get(2)
	assert.ErrorIs(t, err, engine.ErrUserNotFound)

	w = perform(r, "DELETE", "/api/users/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
