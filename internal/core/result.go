package core

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned by providers whose credentials are missing.
	ErrNotConfigured = errors.New("provider not configured")
	ErrNotFound      = errors.New("not found")
)

// Outcome classifies how an external lookup ended.
type Outcome int

const (
	Success Outcome = iota
	NotFound
	Timeout
	Fault
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NotFound:
		return "not_found"
	case Timeout:
		return "timeout"
	default:
		return "fault"
	}
}

// Result carries a provider value together with the outcome class, so callers
// decide fallbacks without inspecting error strings.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

func (r Result[T]) OK() bool { return r.Outcome == Success }

func Found[T any](v T) Result[T] {
	return Result[T]{Value: v, Outcome: Success}
}

func Missing[T any]() Result[T] {
	return Result[T]{Outcome: NotFound, Err: ErrNotFound}
}

// Failed classifies err: deadline and client timeouts become Timeout,
// ErrNotFound becomes NotFound, anything else is a Fault.
func Failed[T any](err error) Result[T] {
	switch {
	case errors.Is(err, ErrNotFound):
		return Result[T]{Outcome: NotFound, Err: err}
	case errors.Is(err, context.DeadlineExceeded) || IsTimeout(err):
		return Result[T]{Outcome: Timeout, Err: err}
	default:
		return Result[T]{Outcome: Fault, Err: err}
	}
}

// IsTimeout reports whether err is a network or client deadline.
func IsTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
