package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/celerix-dev/celerix-users/internal/api"
	"github.com/celerix-dev/celerix-users/internal/audit"
	"github.com/celerix-dev/celerix-users/internal/engine"
	"github.com/celerix-dev/celerix-users/internal/logging"
	"github.com/celerix-dev/celerix-users/internal/pipeline"
)

// LoginPath is the only route reachable without a bearer token.
const LoginPath = "/api/auth/login"

// Tokens issues tokens at login and validates them at the auth gate.
type Tokens interface {
	api.TokenIssuer
	pipeline.TokenValidator
}

// Deps are the collaborators a Router is built from.
type Deps struct {
	Store  engine.UserStore
	Tokens Tokens
	Audit  audit.Sink
	Log    logging.Logger
	// Now stamps audit records; time.Now when nil.
	Now func() time.Time
}

type Router struct {
	engine *gin.Engine
	log    logging.Logger

	mu       sync.Mutex
	listener net.Listener
	srv      *http.Server
}

// NewRouter wires ErrorBoundary → ResponseLogger → AuthGate → routes.
func NewRouter(d Deps) *Router {
	log := d.Log
	if log == nil {
		log = logging.Nop{}
	}
	sink := d.Audit
	if sink == nil {
		sink = audit.Discard
	}

	e := gin.New()
	// Every request, including would-be redirects, goes through the pipeline and gets audited.
	e.RedirectTrailingSlash = false

	e.Use(
		pipeline.ErrorBoundary(log),
		pipeline.ResponseLogger(sink, log, d.Now),
		pipeline.AuthGate(d.Tokens, log, LoginPath),
	)

	h := &api.Handler{Store: d.Store, Tokens: d.Tokens}

	e.POST(LoginPath, h.Login)

	users := e.Group(api.UsersPath)
	{
		users.GET("", h.ListUsers)
		users.GET("/error", h.Fail)
		users.GET("/:id", h.GetUser)
		users.POST("", h.AddUser)
		users.PUT("/:id", h.UpdateUserJob)
		users.DELETE("/:id", h.DeleteUser)
	}

	e.NoRoute(h.NotFound)

	return &Router{engine: e, log: log}
}

// Handler exposes the composed pipeline, e.g. for httptest.
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Listen binds addr and serves until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func (r *Router) Listen(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return r.Serve(ctx, ln, shutdownTimeout)
}

// Serve is Listen on an existing listener.
func (r *Router) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	r.mu.Lock()
	r.listener = ln
	r.srv = srv
	r.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	r.log.Info(ctx, "http server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	r.log.Info(ctx, "http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Addr returns the bound address once serving has started.
func (r *Router) Addr() net.Addr {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listener == nil {
		return nil
	}
	return r.listener.Addr()
}
