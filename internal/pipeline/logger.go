package pipeline

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/celerix-dev/celerix-users/internal/audit"
	"github.com/celerix-dev/celerix-users/internal/logging"
)

// ResponseLogger buffers the response, appends one audit record once the final
// status and body are known, then forwards the untouched response to the client.
// Under ErrorBoundary the record is written after fault translation, so a 500 is logged too.
func ResponseLogger(sink audit.Sink, log logging.Logger, now func() time.Time) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c *gin.Context) {
		rec := audit.Record{
			Time:   now(),
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
		}

		bw := newBufferedWriter(c.Writer)
		c.Writer = bw

		finish := func() {
			c.Writer = bw.ResponseWriter

			rec.Status = bw.Status()
			rec.Body = bw.body.String()
			if err := sink.Append(rec); err != nil {
				log.Error(c.Request.Context(), "audit log append failed", "error", err, "path", rec.Path)
			}
			if err := bw.replay(); err != nil {
				log.Warn(c.Request.Context(), "response write failed", "error", err, "path", rec.Path)
			}
		}
		if !OnComplete(c, finish) {
			defer finish()
		}

		c.Next()
	}
}
