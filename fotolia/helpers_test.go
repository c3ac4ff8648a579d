package fotolia

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "APIKEY"

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
	User     string
	Pass     string
	HasAuth  bool
}

// apiServer is an httptest server that records every request it serves.
type apiServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newAPIServer(t *testing.T, handler http.HandlerFunc) *apiServer {
	t.Helper()

	s := &apiServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		user, pass, ok := r.BasicAuth()

		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Body:     string(body),
			User:     user,
			Pass:     pass,
			HasAuth:  ok,
		})
		s.mu.Unlock()

		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *apiServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

func (s *apiServer) count(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func newTestClient(t *testing.T, srv *apiServer, opts ...Option) *Client {
	t.Helper()

	base := []Option{
		WithBaseURL(srv.URL + "/Rest"),
		WithSequence(NewSequence(1)),
	}
	c, err := NewClient(testAPIKey, zerolog.Nop(), append(base, opts...)...)
	require.NoError(t, err)
	return c
}

// fakeClock is a settable clock for session aging.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// collector is a Recorder that keeps everything it is given.
type collector struct {
	mu    sync.Mutex
	calls []CallDiagnostics
}

func (c *collector) RecordCall(d CallDiagnostics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, d)
}

func (c *collector) Sequences() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, 0, len(c.calls))
	for _, d := range c.calls {
		out = append(out, d.Sequence)
	}
	return out
}
