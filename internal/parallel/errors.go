// Package parallel provides small synchronization helpers for concurrent
// task execution.
package parallel

import "sync"

// ErrorCollector captures the first non-nil error reported by a group of
// concurrent goroutines. It is safe for concurrent use and ignores nil
// errors, so workers can unconditionally report their outcome.
//
// The zero value is ready to use.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is non-nil and no error has been recorded yet.
// Subsequent errors are discarded; only the first one wins.
//
// Parameters:
//   - err: The error to record (nil values are ignored).
func (ec *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	ec.mu.Lock()
	defer ec.mu.Unlock()
	if ec.err == nil {
		ec.err = err
	}
}

// Err returns the first recorded error, or nil if none was recorded.
//
// Returns:
//   - error: The first recorded error.
func (ec *ErrorCollector) Err() error {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.err
}
