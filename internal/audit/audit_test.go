package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 10, 19, 8, 5, 9, 0, time.Local)

func TestRecord_String(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "success omits body",
			rec:  Record{Time: at, Method: "GET", Path: "/api/users", Status: 200, Body: `[{"id":1}]`},
			want: "[2026-10-19 08:05:09] GET /api/users => 200 OK",
		},
		{
			name: "error includes flattened body",
			rec:  Record{Time: at, Method: "GET", Path: "/api/users/9", Status: 404, Body: "No user\r\nfound\nwith id 9."},
			want: "[2026-10-19 08:05:09] GET /api/users/9 => 404 NotFound | Response: No user found with id 9.",
		},
		{
			name: "error with blank body",
			rec:  Record{Time: at, Method: "POST", Path: "/api/users", Status: 401, Body: "  \n"},
			want: "[2026-10-19 08:05:09] POST /api/users => 401 Unauthorized",
		},
		{
			name: "internal error",
			rec:  Record{Time: at, Method: "GET", Path: "/api/users/error", Status: 500, Body: `{"error":"Internal server error."}`},
			want: `[2026-10-19 08:05:09] GET /api/users/error => 500 InternalServerError | Response: {"error":"Internal server error."}`,
		},
		{
			name: "no content",
			rec:  Record{Time: at, Method: "PUT", Path: "/api/users/1", Status: 204},
			want: "[2026-10-19 08:05:09] PUT /api/users/1 => 204 NoContent",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rec.String())
		})
	}
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "Created", StatusName(201))
	assert.Equal(t, "BadRequest", StatusName(400))
	assert.Equal(t, "MethodNotAllowed", StatusName(405))
	assert.Equal(t, "599", StatusName(599))
}

func TestFileWriter_CreatesDirectoryAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Logs", "nested", "audit.txt")
	w, err := NewFileWriter(path)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, w.Append(Record{Time: at, Method: "GET", Path: "/a", Status: 200}))
	require.NoError(t, w.Append(Record{Time: at, Method: "GET", Path: "/b", Status: 404, Body: "gone"}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"[2026-10-19 08:05:09] GET /a => 200 OK\n"+
			"[2026-10-19 08:05:09] GET /b => 404 NotFound | Response: gone\n",
		string(content))

	// A second writer on the same file keeps appending.
	w2, err := NewFileWriter(path)
	require.NoError(t, err)
	require.NoError(t, w2.Append(Record{Time: at, Method: "DELETE", Path: "/c", Status: 200}))
	content, _ = os.ReadFile(path)
	assert.Equal(t, 3, strings.Count(string(content), "\n"))
}

func TestFileWriter_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.txt")
	w, err := NewFileWriter(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := w.Append(Record{Time: at, Method: "GET", Path: fmt.Sprintf("/p/%d", i), Status: 200}); err != nil {
				t.Errorf("Append failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "[2026-10-19 08:05:09] GET /p/"), "torn line %q", l)
	}
}
