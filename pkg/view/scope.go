package view

import (
	"context"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Scope ties fetch tasks to the lifetime of a view. Tasks launched with Go
// receive the scope's context, which is cancelled by Close.
//
// Close must not be called from inside a task of the same scope.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex // guards the hand-off between Go and Close
	group    errgroup.Group
	sem      *semaphore.Weighted
	alive    *atomic.Bool
	inFlight *atomic.Int64
}

// NewScope creates a scope derived from parent. maxConcurrent caps how many
// tasks run at once; zero or less means no cap.
func NewScope(parent context.Context, maxConcurrent int) *Scope {
	ctx, cancel := context.WithCancel(parent)
	s := &Scope{
		ctx:      ctx,
		cancel:   cancel,
		alive:    atomic.NewBool(true),
		inFlight: atomic.NewInt64(0),
	}
	if maxConcurrent > 0 {
		s.sem = semaphore.NewWeighted(int64(maxConcurrent))
	}
	return s
}

// Context returns the scope's context.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Alive reports whether the scope has not been closed.
func (s *Scope) Alive() bool {
	return s.alive.Load()
}

// InFlight returns the number of tasks launched and not yet finished.
func (s *Scope) InFlight() int64 {
	return s.inFlight.Load()
}

// Go launches task in its own goroutine. It returns false, without running
// task, when the scope is already closed.
func (s *Scope) Go(task func(ctx context.Context)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.alive.Load() {
		return false
	}

	s.inFlight.Inc()
	s.group.Go(func() error {
		defer s.inFlight.Dec()

		if s.sem != nil {
			if err := s.sem.Acquire(s.ctx, 1); err != nil {
				return nil
			}
			defer s.sem.Release(1)
		}

		task(s.ctx)
		return nil
	})
	return true
}

// Wait blocks until every launched task has returned.
func (s *Scope) Wait() {
	_ = s.group.Wait()
}

// Close cancels the scope's context and waits for its tasks to return.
// Calling Close more than once is safe.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.alive.CompareAndSwap(true, false) {
		s.cancel()
	}
	s.mu.Unlock()

	s.Wait()
}
