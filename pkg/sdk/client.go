// Package sdk provides the client-side library for the user directory.
// It supports both remote access over HTTP and a local embedded mode.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/celerix-dev/celerix-users/pkg/schema"
)

const (
	loginPath = "/api/auth/login"
	usersPath = "/api/users"

	maxAttempts = 3
)

// Client is a remote client for the user API.
// It implements Authenticator and UserDirectory.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex // Protects token
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithToken presets the bearer token, e.g. one obtained by an earlier Login.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient returns a client for the API rooted at baseURL, e.g. "http://localhost:8080".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("sdk: empty base URL")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Token returns the bearer token currently attached to requests.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token attached to requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Login exchanges email for a token and keeps it for subsequent calls.
func (c *Client) Login(ctx context.Context, email string) (string, error) {
	var res schema.LoginResponse
	if err := c.do(ctx, http.MethodPost, loginPath, schema.LoginRequest{Email: email}, &res); err != nil {
		return "", err
	}
	c.SetToken(res.Token)
	return res.Token, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]schema.User, error) {
	var users []schema.User
	err := c.do(ctx, http.MethodGet, usersPath, nil, &users)
	if errors.Is(err, ErrNotFound) {
		// The server answers 404 for an empty directory.
		return []schema.User{}, nil
	}
	return users, err
}

func (c *Client) GetUser(ctx context.Context, id int) (schema.User, error) {
	var u schema.User
	err := c.do(ctx, http.MethodGet, userPath(id), nil, &u)
	return u, err
}

func (c *Client) AddUser(ctx context.Context, u schema.User) (schema.User, error) {
	u.ID = 0
	var created schema.User
	err := c.do(ctx, http.MethodPost, usersPath, u, &created)
	return created, err
}

func (c *Client) UpdateJob(ctx context.Context, id int, job string) error {
	return c.do(ctx, http.MethodPut, userPath(id), job, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id int) (schema.User, error) {
	var removed schema.User
	err := c.do(ctx, http.MethodDelete, userPath(id), nil, &removed)
	return removed, err
}

func userPath(id int) string {
	return usersPath + "/" + strconv.Itoa(id)
}

// do sends one API call. GET requests are retried on transport errors
// with a linear backoff; everything else is sent once.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("sdk: encode request: %w", err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = maxAttempts
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i*200) * time.Millisecond):
			}
		}

		resp, err := c.send(ctx, method, path, payload)
		if err != nil {
			lastErr = err
			continue
		}
		return decodeResponse(resp, out)
	}
	return fmt.Errorf("sdk: %s %s failed after %d attempts: %w", method, path, attempts, lastErr)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.http.Do(req)
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sdk: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("sdk: decode response: %w", err)
	}
	return nil
}

// errorMessage accepts both plain-text bodies and {"error": "..."} envelopes.
func errorMessage(raw []byte) string {
	var envelope schema.ErrorResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return strings.TrimSpace(string(raw))
}
