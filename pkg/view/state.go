// Package view holds the headless state machines behind the doomdex screens.
//
// Each view owns its state privately and fetches through a Scope that is tied
// to the view's lifetime: mounting a view starts its fetches, unmounting it
// cancels whatever is still in flight and drops results that arrive late.
// Screens read snapshots of the state and branch on its Status tag.
package view

import (
	"context"
	"fmt"
)

// Status is the tag of a State.
type Status int

const (
	StatusLoading Status = iota // Fetch issued, no answer yet
	StatusLoaded                // Fetch succeeded, Value is populated
	StatusFailed                // Fetch failed, Reason and Err are populated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// State is a tagged union of Loading, Loaded(Value) and Failed(Reason, Err).
// Value is only meaningful when Status is StatusLoaded.
type State[T any] struct {
	Status Status
	Value  T
	Reason string // User facing message for StatusFailed
	Err    error  // Underlying cause for StatusFailed
}

func Loading[T any]() State[T] {
	return State[T]{Status: StatusLoading}
}

func Loaded[T any](value T) State[T] {
	return State[T]{Status: StatusLoaded, Value: value}
}

func Failed[T any](reason string, err error) State[T] {
	return State[T]{Status: StatusFailed, Reason: reason, Err: err}
}

func (s State[T]) IsLoading() bool { return s.Status == StatusLoading }
func (s State[T]) IsLoaded() bool  { return s.Status == StatusLoaded }
func (s State[T]) IsFailed() bool  { return s.Status == StatusFailed }

// Result is the outcome of one asynchronous fetch.
type Result[T any] struct {
	Value T
	Err   error
}

// Fetch runs fn and captures its outcome as a Result. A panic inside fn is
// converted into an error so that no fetch can fail outside its Result.
func Fetch[T any](ctx context.Context, fn func(context.Context) (T, error)) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Err: fmt.Errorf("view: fetch panicked: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return Result[T]{Err: err}
	}

	value, err := fn(ctx)
	if err != nil {
		return Result[T]{Err: err}
	}
	return Result[T]{Value: value}
}
