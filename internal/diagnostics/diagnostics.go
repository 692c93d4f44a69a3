package diagnostics

import "sync"

const (
	maxPrimarySnippet  = 400
	maxFallbackSnippet = 300
)

// Recorder keeps the status and error snippet of the most recent upstream
// call for inspection via the debug endpoints. Process-wide, one per server.
type Recorder struct {
	mu     sync.Mutex
	status *int
	errStr *string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetStatus records the HTTP status of the latest upstream call.
func (r *Recorder) SetStatus(status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := status
	r.status = &s
}

// RecordError records a primary-call error, truncated to a short snippet.
func (r *Recorder) RecordError(err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s := truncate(err.Error(), maxPrimarySnippet)
	r.errStr = &s
}

// RecordFallbackError appends a safe-retry error to the existing snippet so
// both tiers of a failed request stay visible.
func (r *Recorder) RecordFallbackError(err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := ""
	if r.errStr != nil {
		prev = *r.errStr
	}
	s := prev + " | safe_fallback:" + truncate(err.Error(), maxFallbackSnippet)
	r.errStr = &s
}

// Snapshot returns the last recorded status and error snippet.
// Either may be nil if nothing has been recorded yet.
func (r *Recorder) Snapshot() (status *int, errSnippet *string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status, r.errStr
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
