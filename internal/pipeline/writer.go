package pipeline

import (
	"bytes"

	"github.com/gin-gonic/gin"
)

// bufferedWriter holds the status and body of a response until replay is called.
// Headers go straight to the wrapped writer's header map, which is not sent before replay.
type bufferedWriter struct {
	gin.ResponseWriter

	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newBufferedWriter(w gin.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{ResponseWriter: w, status: w.Status()}
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 && !w.wroteHeader {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	w.wroteHeader = true
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.wroteHeader = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	if !w.wroteHeader {
		return -1
	}
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.wroteHeader
}

// Flush is a no-op: nothing leaves the buffer before replay.
func (w *bufferedWriter) Flush() {}

// Reset drops everything written so far, headers included.
func (w *bufferedWriter) Reset() {
	w.body.Reset()
	w.status = 200
	w.wroteHeader = false
	clear(w.Header())
}

// replay sends the buffered status and body to the wrapped writer.
func (w *bufferedWriter) replay() error {
	w.ResponseWriter.WriteHeader(w.status)
	if w.body.Len() == 0 {
		w.ResponseWriter.WriteHeaderNow()
		return nil
	}
	_, err := w.ResponseWriter.Write(w.body.Bytes())
	return err
}
