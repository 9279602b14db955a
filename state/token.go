package state

import "sync/atomic"

// CancelToken is handed to background work when it starts. The worker
// checks it before each message emission; the shell additionally drops
// inbox messages whose token was cancelled in the meantime.
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken creates a live token
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel marks the token. Idempotent and safe from any goroutine.
func (t *CancelToken) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether the token was cancelled
func (t *CancelToken) Cancelled() bool {
	return t.cancelled.Load()
}
