package catalogsync

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized: the caller lacks the administrator role. Checked
	// before any external call, so no side effects have happened.
	ErrUnauthorized = errors.New("administrator role required")

	// ErrNotFound: the referenced catalog entity does not exist.
	ErrNotFound = errors.New("catalog entity not found")

	ErrInvalidInput = errors.New("invalid input")
)

// Mode says what happens when an external side effect fails: Fatal aborts
// the mutation, BestEffort is logged and swallowed. Call sites pick the mode
// explicitly instead of burying the policy in control flow.
type Mode int

const (
	Fatal Mode = iota
	BestEffort
)

// UpstreamError wraps a billing or video-host rejection that aborted a
// mutation. The provider error is carried unmodified.
type UpstreamError struct {
	System string
	Op     string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.System, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
