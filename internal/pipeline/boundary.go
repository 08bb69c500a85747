package pipeline

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/celerix-dev/celerix-users/internal/logging"
	"github.com/celerix-dev/celerix-users/pkg/schema"
)

// InternalErrorMessage is the only detail a client ever sees about a fault.
const InternalErrorMessage = "Internal server error."

type resetter interface {
	Reset()
}

// ErrorBoundary must be the outermost middleware. It turns panics and errors that
// handlers attached with c.Error without answering into a 500 with a fixed JSON body,
// and records the fault on the operational log.
// It then runs the OnComplete hooks of the inner middlewares.
func ErrorBoundary(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(boundaryKey, true)

		defer func() {
			if r := recover(); r != nil {
				fail(c, log, fmt.Errorf("panic: %v", r), "stack", string(debug.Stack()))
			}
			complete(c, log)
		}()

		c.Next()

		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fail(c, log, errs.Last().Err)
		}
	}
}

func fail(c *gin.Context, log logging.Logger, fault error, attrs ...any) {
	args := append([]any{
		"fault_id", uuid.NewString(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", fault,
	}, attrs...)
	log.Error(c.Request.Context(), "unhandled fault", args...)

	if rw, ok := c.Writer.(resetter); ok {
		rw.Reset()
	} else if c.Writer.Written() {
		// Already on the wire; nothing left to replace.
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, schema.ErrorResponse{Error: InternalErrorMessage})
}

func complete(c *gin.Context, log logging.Logger) {
	hooks := takeCompletionHooks(c)
	for i := len(hooks) - 1; i >= 0; i-- {
		runHook(c, log, hooks[i])
	}
}

func runHook(c *gin.Context, log logging.Logger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(c.Request.Context(), "completion hook failed",
				"fault_id", uuid.NewString(),
				"path", c.Request.URL.Path,
				"error", fmt.Errorf("panic: %v", r),
			)
			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, schema.ErrorResponse{Error: InternalErrorMessage})
			}
		}
	}()
	fn()
}
