package fotolia

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Sequence hands out call numbers starting at 1. It is safe for concurrent use.
type Sequence struct {
	next atomic.Int64
}

// NewSequence returns a Sequence whose first number is start.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.next.Store(start)
	return s
}

// defaultSequence is shared by every Client built without WithSequence.
var defaultSequence = NewSequence(1)

// DefaultSequence returns the process-wide sequence.
func DefaultSequence() *Sequence { return defaultSequence }

// Next returns the current number and advances the sequence.
func (s *Sequence) Next() int64 {
	return s.next.Add(1) - 1
}

// Peek returns the number the next call will receive.
func (s *Sequence) Peek() int64 {
	return s.next.Load()
}

// CallDiagnostics describes one completed dispatch.
type CallDiagnostics struct {
	Sequence int64
	Method   string
	Elapsed  time.Duration
	Err      error
}

// Recorder receives diagnostics after every dispatch that reached the network.
type Recorder interface {
	RecordCall(d CallDiagnostics)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(d CallDiagnostics)

func (f RecorderFunc) RecordCall(d CallDiagnostics) { f(d) }

type recorderKey struct{}

// ContextWithRecorder returns a context whose dispatches also report to r.
func ContextWithRecorder(ctx context.Context, r Recorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, r)
}

func recorderFrom(ctx context.Context) Recorder {
	r, _ := ctx.Value(recorderKey{}).(Recorder)
	return r
}

// HeaderRecorder wraps an http.ResponseWriter and copies call diagnostics into
// X-Fotolia-API-Call-Method-N and X-Fotolia-API-Call-Time-N headers for as
// long as the response headers have not been sent.
type HeaderRecorder struct {
	http.ResponseWriter

	mu   sync.Mutex
	sent bool
}

// NewHeaderRecorder wraps w.
func NewHeaderRecorder(w http.ResponseWriter) *HeaderRecorder {
	return &HeaderRecorder{ResponseWriter: w}
}

// RecordCall implements Recorder.
func (h *HeaderRecorder) RecordCall(d CallDiagnostics) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sent {
		return
	}
	n := strconv.FormatInt(d.Sequence, 10)
	hdr := h.ResponseWriter.Header()
	hdr.Set("X-Fotolia-API-Call-Method-"+n, d.Method)
	hdr.Set("X-Fotolia-API-Call-Time-"+n, strconv.FormatFloat(d.Elapsed.Seconds(), 'f', -1, 64))
}

// HeadersSent reports whether the wrapped writer has sent its headers.
func (h *HeaderRecorder) HeadersSent() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sent
}

func (h *HeaderRecorder) WriteHeader(code int) {
	h.mu.Lock()
	h.sent = true
	h.mu.Unlock()
	h.ResponseWriter.WriteHeader(code)
}

func (h *HeaderRecorder) Write(b []byte) (int, error) {
	h.mu.Lock()
	h.sent = true
	h.mu.Unlock()
	return h.ResponseWriter.Write(b)
}

// Flush forwards to the wrapped writer when it supports flushing.
func (h *HeaderRecorder) Flush() {
	if f, ok := h.ResponseWriter.(http.Flusher); ok {
		h.mu.Lock()
		h.sent = true
		h.mu.Unlock()
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the wrapped writer.
func (h *HeaderRecorder) Unwrap() http.ResponseWriter {
	return h.ResponseWriter
}
