package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/doomdex/pkg/gateway"
	"go.uber.org/atomic"
)

var (
	// ErrNotSelectable is returned by Select when the list or row has not loaded.
	ErrNotSelectable = errors.New("view: row is not selectable")
	// ErrNoSuchRow is returned by Select for an index outside the list.
	ErrNoSuchRow = errors.New("view: no such row")
)

// KeySource decides which key a selected row navigates with.
type KeySource string

const (
	// KeySourceCanonical reuses the summary key that fetched the row.
	KeySourceCanonical KeySource = "canonical"
	// KeySourceDisplayName recomputes the key from the detail's display name.
	KeySourceDisplayName KeySource = "display_name"
)

// ParseKeySource validates a configured key source. Empty means canonical.
func ParseKeySource(s string) (KeySource, error) {
	switch KeySource(s) {
	case "", KeySourceCanonical:
		return KeySourceCanonical, nil
	case KeySourceDisplayName:
		return KeySourceDisplayName, nil
	default:
		return "", fmt.Errorf("view: unknown key source %q", s)
	}
}

// Source supplies the two fetches a list view needs.
type Source[D gateway.Detail] interface {
	List(ctx context.Context) ([]gateway.EntitySummary, error)
	Detail(ctx context.Context, key string) (D, error)
}

// SourceFuncs adapts a pair of functions, such as gateway methods, to Source.
type SourceFuncs[D gateway.Detail] struct {
	ListFunc   func(ctx context.Context) ([]gateway.EntitySummary, error)
	DetailFunc func(ctx context.Context, key string) (D, error)
}

func (s SourceFuncs[D]) List(ctx context.Context) ([]gateway.EntitySummary, error) {
	return s.ListFunc(ctx)
}

func (s SourceFuncs[D]) Detail(ctx context.Context, key string) (D, error) {
	return s.DetailFunc(ctx, key)
}

// Row is one entry of a list, at its original index, with its own detail state.
type Row[D gateway.Detail] struct {
	Index int
	Key   string
	State State[D]
}

// ListOptions configures a ListView.
type ListOptions struct {
	Kind                 string    // Entity kind used in logs (e.g. "demons")
	FailureMessage       string    // Reason shown when the list fetch fails
	RowFailureMessage    string    // Reason shown when a row's detail fetch fails
	MaxConcurrentFetches int       // Zero means no cap
	KeySource            KeySource // Defaults to KeySourceCanonical
	Logger               *slog.Logger
}

// ListView fetches a list of summaries and then, concurrently, the detail of
// every row.
type ListView[D gateway.Detail] struct {
	source  Source[D]
	options ListOptions
	logger  *slog.Logger

	mu    sync.RWMutex
	scope *Scope
	state State[[]Row[D]]

	version *atomic.Uint64
}

// NewListView returns a list view in the Loading state. Nothing is fetched
// until Mount is called.
func NewListView[D gateway.Detail](source Source[D], options ListOptions) *ListView[D] {
	if options.KeySource == "" {
		options.KeySource = KeySourceCanonical
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ListView[D]{
		source:  source,
		options: options,
		logger:  logger.With(slog.String("component", "view"), slog.String("kind", options.Kind)),
		state:   Loading[[]Row[D]](),
		version: atomic.NewUint64(0),
	}
}

// Mount resets the view to Loading and issues the list fetch. Each summary
// that comes back gets its own detail fetch. Mounting an already mounted view
// first cancels the previous fetches.
func (v *ListView[D]) Mount(ctx context.Context) {
	v.Unmount()

	scope := NewScope(ctx, v.options.MaxConcurrentFetches)

	v.mu.Lock()
	v.scope = scope
	v.state = Loading[[]Row[D]]()
	v.mu.Unlock()
	v.version.Inc()

	scope.Go(func(ctx context.Context) {
		v.loadList(ctx, scope)
	})
}

// Unmount cancels outstanding fetches. Results that arrive afterwards are dropped.
func (v *ListView[D]) Unmount() {
	v.mu.Lock()
	scope := v.scope
	v.mu.Unlock()

	if scope != nil {
		scope.Close()
	}
}

// Wait blocks until every fetch of the current mount has finished.
func (v *ListView[D]) Wait() {
	v.mu.RLock()
	scope := v.scope
	v.mu.RUnlock()

	if scope != nil {
		scope.Wait()
	}
}

// State returns a snapshot of the view. When loaded, Value holds a copy of
// the rows in original list order.
func (v *ListView[D]) State() State[[]Row[D]] {
	v.mu.RLock()
	defer v.mu.RUnlock()

	snapshot := v.state
	if snapshot.Status == StatusLoaded {
		snapshot.Value = append([]Row[D](nil), v.state.Value...)
	}
	return snapshot
}

// Rows returns the rows in original list order, or nil before the list has loaded.
func (v *ListView[D]) Rows() []Row[D] {
	return v.State().Value
}

// Version increases every time the state changes.
func (v *ListView[D]) Version() uint64 {
	return v.version.Load()
}

// Select returns the key to navigate with for the row at index.
func (v *ListView[D]) Select(index int) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.state.Status != StatusLoaded {
		return "", ErrNotSelectable
	}
	if index < 0 || index >= len(v.state.Value) {
		return "", fmt.Errorf("%w: %d", ErrNoSuchRow, index)
	}

	row := v.state.Value[index]
	if row.State.Status != StatusLoaded {
		return "", fmt.Errorf("%w: %s is %s", ErrNotSelectable, row.Key, row.State.Status)
	}

	key := row.Key
	if v.options.KeySource == KeySourceDisplayName {
		key = NormalizeKey(row.State.Value.DisplayName())
	}
	if key == "" {
		return "", fmt.Errorf("%w: row %d has an empty key", ErrNotSelectable, index)
	}
	return key, nil
}

func (v *ListView[D]) loadList(ctx context.Context, scope *Scope) {
	res := Fetch(ctx, v.source.List)
	if res.Err != nil {
		if ctx.Err() != nil {
			v.logger.Debug("list fetch abandoned", "error", res.Err)
			return
		}
		v.logger.Warn("list fetch failed", "error", res.Err)
		v.update(scope, func() {
			v.state = Failed[[]Row[D]](v.options.FailureMessage, res.Err)
		})
		return
	}

	rows := make([]Row[D], len(res.Value))
	for i, summary := range res.Value {
		rows[i] = Row[D]{Index: i, Key: string(summary), State: Loading[D]()}
	}
	if !v.update(scope, func() { v.state = Loaded(rows) }) {
		return
	}

	for i := range rows {
		index, key := i, rows[i].Key
		scope.Go(func(ctx context.Context) {
			v.loadRow(ctx, scope, index, key)
		})
	}
}

func (v *ListView[D]) loadRow(ctx context.Context, scope *Scope, index int, key string) {
	res := Fetch(ctx, func(ctx context.Context) (D, error) {
		return v.source.Detail(ctx, key)
	})

	if res.Err != nil && ctx.Err() == nil {
		v.logger.Warn("row fetch failed", "key", key, "error", res.Err)
	}

	v.update(scope, func() {
		if res.Err != nil {
			v.state.Value[index].State = Failed[D](v.options.RowFailureMessage, res.Err)
			return
		}
		v.state.Value[index].State = Loaded(res.Value)
	})
}

// update applies fn under the lock if scope is still the live scope of the view.
func (v *ListView[D]) update(scope *Scope, fn func()) bool {
	v.mu.Lock()
	if !scope.Alive() || v.scope != scope {
		v.mu.Unlock()
		v.logger.Debug("dropped result of unmounted view")
		return false
	}
	fn()
	v.mu.Unlock()

	v.version.Inc()
	return true
}
