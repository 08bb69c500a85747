package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPath is where the audit log lives unless configured otherwise.
const DefaultPath = "Logs/request_response_log.txt"

// Sink receives completed request records.
type Sink interface {
	Append(r Record) error
}

// FileWriter appends records to a text file, one line each.
// The file is opened and closed per write; the mutex serializes concurrent requests.
type FileWriter struct {
	Path string
	mu   sync.Mutex
}

// NewFileWriter ensures the parent directory of path exists.
func NewFileWriter(path string) (*FileWriter, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create audit log directory: %w", err)
	}
	return &FileWriter{Path: path}, nil
}

func (w *FileWriter) Append(r Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(r.String() + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Discard drops every record.
var Discard Sink = discard{}

type discard struct{}

func (discard) Append(Record) error { return nil }
