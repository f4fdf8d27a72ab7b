package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/doomdex/pkg/gateway"
	"go.uber.org/atomic"
)

// DetailFunc fetches one detail record by key.
type DetailFunc[D gateway.Detail] func(ctx context.Context, key string) (D, error)

// DetailOptions configures a DetailView.
type DetailOptions struct {
	Kind           string // Entity kind used in logs (e.g. "weapons")
	FailureMessage string // Reason shown when the fetch fails
	Logger         *slog.Logger
}

// DetailView fetches and holds the detail record for a single key. Every
// Mount issues a fresh fetch.
type DetailView[D gateway.Detail] struct {
	key     string
	fetch   DetailFunc[D]
	options DetailOptions
	logger  *slog.Logger

	mu    sync.RWMutex
	scope *Scope
	state State[D]

	version *atomic.Uint64
}

func NewDetailView[D gateway.Detail](key string, fetch DetailFunc[D], options DetailOptions) *DetailView[D] {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DetailView[D]{
		key:     key,
		fetch:   fetch,
		options: options,
		logger:  logger.With(slog.String("component", "view"), slog.String("kind", options.Kind)),
		state:   Loading[D](),
		version: atomic.NewUint64(0),
	}
}

// Key returns the key the view was created for.
func (v *DetailView[D]) Key() string {
	return v.key
}

// Mount resets the view to Loading and issues the detail fetch.
func (v *DetailView[D]) Mount(ctx context.Context) {
	v.Unmount()

	scope := NewScope(ctx, 0)

	v.mu.Lock()
	v.scope = scope
	v.state = Loading[D]()
	v.mu.Unlock()
	v.version.Inc()

	scope.Go(func(ctx context.Context) {
		res := Fetch(ctx, func(ctx context.Context) (D, error) {
			return v.fetch(ctx, v.key)
		})

		if res.Err != nil && ctx.Err() == nil {
			v.logger.Warn("detail fetch failed", "key", v.key, "error", res.Err)
		}

		v.mu.Lock()
		if !scope.Alive() || v.scope != scope {
			v.mu.Unlock()
			v.logger.Debug("dropped result of unmounted view", "key", v.key)
			return
		}
		if res.Err != nil {
			v.state = Failed[D](v.options.FailureMessage, res.Err)
		} else {
			v.state = Loaded(res.Value)
		}
		v.mu.Unlock()
		v.version.Inc()
	})
}

// Unmount cancels the fetch if it is still in flight.
func (v *DetailView[D]) Unmount() {
	v.mu.Lock()
	scope := v.scope
	v.mu.Unlock()

	if scope != nil {
		scope.Close()
	}
}

// Wait blocks until the current fetch has finished.
func (v *DetailView[D]) Wait() {
	v.mu.RLock()
	scope := v.scope
	v.mu.RUnlock()

	if scope != nil {
		scope.Wait()
	}
}

func (v *DetailView[D]) State() State[D] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Version increases every time the state changes.
func (v *DetailView[D]) Version() uint64 {
	return v.version.Load()
}
