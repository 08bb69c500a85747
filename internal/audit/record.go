// Package audit writes the append-only request/response log.
package audit

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the timestamp format of every audit line.
const TimeLayout = "2006-01-02 15:04:05"

// Record is one completed request.
type Record struct {
	Time   time.Time
	Method string
	Path   string
	Status int
	// Body is the response body; it is only rendered for error statuses.
	Body string
}

// String renders the record as a single line without the trailing newline:
//
//	[2006-01-02 15:04:05] GET /api/users/9 => 404 NotFound | Response: No user found with id 9.
func (r Record) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(r.Time.Format(TimeLayout))
	b.WriteString("] ")
	b.WriteString(r.Method)
	b.WriteString(" ")
	b.WriteString(r.Path)
	b.WriteString(" => ")
	b.WriteString(strconv.Itoa(r.Status))
	b.WriteString(" ")
	b.WriteString(StatusName(r.Status))

	if r.Status >= http.StatusBadRequest && strings.TrimSpace(r.Body) != "" {
		b.WriteString(" | Response: ")
		b.WriteString(flatten(r.Body))
	}
	return b.String()
}

// StatusName turns a status code into its identifier-style name, e.g. 404 -> "NotFound".
// Unknown codes render as the number itself.
func StatusName(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return strconv.Itoa(code)
	}
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '\'' {
			return -1
		}
		return r
	}, text)
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func flatten(s string) string {
	return newlines.Replace(s)
}
