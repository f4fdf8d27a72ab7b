package view

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BrandonKowalski/doomdex/pkg/gateway"
	"github.com/google/go-cmp/cmp"
)

// gatedSource releases each detail fetch only when its gate is closed, so
// tests can pick the completion order.
type gatedSource struct {
	summaries []gateway.EntitySummary
	listErr   error
	detailErr map[string]error
	gates     map[string]chan struct{}

	mu    sync.Mutex
	calls []string
}

func newGatedSource(keys ...string) *gatedSource {
	s := &gatedSource{
		detailErr: map[string]error{},
		gates:     map[string]chan struct{}{},
	}
	for _, k := range keys {
		s.summaries = append(s.summaries, gateway.EntitySummary(k))
		s.gates[k] = make(chan struct{})
	}
	return s
}

func (s *gatedSource) List(ctx context.Context) ([]gateway.EntitySummary, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.summaries, nil
}

func (s *gatedSource) Detail(ctx context.Context, key string) (gateway.DemonDetail, error) {
	s.mu.Lock()
	s.calls = append(s.calls, key)
	gate := s.gates[key]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return gateway.DemonDetail{}, ctx.Err()
		}
	}
	if err := s.detailErr[key]; err != nil {
		return gateway.DemonDetail{}, err
	}
	return gateway.DemonDetail{Name: key, HP: "20", Image: "http://x/" + key + ".png"}, nil
}

func (s *gatedSource) release(key string) { close(s.gates[key]) }

func (s *gatedSource) detailCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestListView_RowsKeepListOrder(t *testing.T) {
	src := newGatedSource("Zombieman", "Imp")
	v := NewListView[gateway.DemonDetail](src, ListOptions{Kind: "demons"})
	v.Mount(context.Background())
	defer v.Unmount()

	waitFor(t, "both detail fetches", func() bool { return len(src.detailCalls()) == 2 })

	// Complete out of order.
	src.release("Imp")
	waitFor(t, "Imp row", func() bool {
		rows := v.Rows()
		return len(rows) == 2 && rows[1].State.IsLoaded()
	})
	if rows := v.Rows(); !rows[0].State.IsLoading() {
		t.Fatalf("Zombieman should still be loading, got %s", rows[0].State.Status)
	}
	src.release("Zombieman")
	v.Wait()

	st := v.State()
	if !st.IsLoaded() {
		t.Fatalf("expected loaded list, got %s", st.Status)
	}
	var keys, names []string
	for _, r := range st.Value {
		keys = append(keys, r.Key)
		names = append(names, r.State.Value.Name)
	}
	if diff := cmp.Diff([]string{"Zombieman", "Imp"}, keys); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Zombieman", "Imp"}, names); diff != "" {
		t.Errorf("row detail mismatch (-want +got):\n%s", diff)
	}

	calls := src.detailCalls()
	if len(calls) != 2 {
		t.Errorf("expected exactly two detail fetches, got %v", calls)
	}
}

func TestListView_ListFailure(t *testing.T) {
	src := newGatedSource()
	src.listErr = errors.New("connection refused")

	v := NewListView[gateway.DemonDetail](src, ListOptions{
		Kind:           "demons",
		FailureMessage: "Failed to load demons",
	})
	v.Mount(context.Background())
	v.Wait()

	st := v.State()
	if !st.IsFailed() {
		t.Fatalf("expected failed, got %s", st.Status)
	}
	if st.Reason != "Failed to load demons" {
		t.Errorf("reason: got %q", st.Reason)
	}
	if !errors.Is(st.Err, src.listErr) {
		t.Errorf("err: got %v", st.Err)
	}
	if len(v.Rows()) != 0 {
		t.Errorf("failed list must not expose rows")
	}
	if _, err := v.Select(0); !errors.Is(err, ErrNotSelectable) {
		t.Errorf("select on failed list: got %v", err)
	}
}

func TestListView_RowFailureIsExplicit(t *testing.T) {
	src := newGatedSource("Imp", "Baron of Hell")
	src.detailErr["Imp"] = errors.New("decode failed")
	src.release("Imp")
	src.release("Baron of Hell")

	v := NewListView[gateway.DemonDetail](src, ListOptions{RowFailureMessage: "Failed to load"})
	v.Mount(context.Background())
	v.Wait()

	rows := v.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].State.IsFailed() || rows[0].State.Reason != "Failed to load" {
		t.Errorf("row 0: %+v", rows[0].State)
	}
	if !rows[1].State.IsLoaded() {
		t.Errorf("row 1: %+v", rows[1].State)
	}
	if _, err := v.Select(0); !errors.Is(err, ErrNotSelectable) {
		t.Errorf("select failed row: got %v", err)
	}
}

func TestListView_SelectKeySource(t *testing.T) {
	tests := []struct {
		source KeySource
		want   string
	}{
		{KeySourceCanonical, "Pain Elemental"},
		{KeySourceDisplayName, "pain_elemental"},
	}

	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			src := newGatedSource("Pain Elemental")
			src.release("Pain Elemental")

			v := NewListView[gateway.DemonDetail](src, ListOptions{KeySource: tt.source})
			v.Mount(context.Background())
			v.Wait()

			got, err := v.Select(0)
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if _, err := v.Select(3); !errors.Is(err, ErrNoSuchRow) {
				t.Errorf("out of range: got %v", err)
			}
		})
	}
}

func TestListView_EmptyKeyIsNotSelectable(t *testing.T) {
	for _, source := range []KeySource{KeySourceCanonical, KeySourceDisplayName} {
		t.Run(string(source), func(t *testing.T) {
			src := newGatedSource("", "Imp")
			src.release("")
			src.release("Imp")

			v := NewListView[gateway.DemonDetail](src, ListOptions{KeySource: source})
			v.Mount(context.Background())
			v.Wait()

			if !v.Rows()[0].State.IsLoaded() {
				t.Fatalf("row 0: %+v", v.Rows()[0].State)
			}
			if key, err := v.Select(0); !errors.Is(err, ErrNotSelectable) {
				t.Errorf("Select(0) = %q, %v", key, err)
			}
			if _, err := v.Select(1); err != nil {
				t.Errorf("Select(1): %v", err)
			}
		})
	}
}

func TestListView_UnmountCancelsAndDrops(t *testing.T) {
	src := newGatedSource("Cyberdemon")
	v := NewListView[gateway.DemonDetail](src, ListOptions{})
	v.Mount(context.Background())

	waitFor(t, "detail fetch", func() bool { return len(src.detailCalls()) == 1 })
	before := v.Version()
	v.Unmount()

	rows := v.Rows()
	if len(rows) != 1 || !rows[0].State.IsLoading() {
		t.Fatalf("row should stay loading after unmount, got %+v", rows)
	}
	if v.Version() != before {
		t.Errorf("version changed after unmount: %d -> %d", before, v.Version())
	}
}

func TestListView_MaxConcurrentFetches(t *testing.T) {
	src := newGatedSource("a", "b", "c")
	v := NewListView[gateway.DemonDetail](src, ListOptions{MaxConcurrentFetches: 1})
	v.Mount(context.Background())
	defer v.Unmount()

	waitFor(t, "first detail fetch", func() bool { return len(src.detailCalls()) == 1 })
	time.Sleep(20 * time.Millisecond)
	if n := len(src.detailCalls()); n != 1 {
		t.Fatalf("cap of 1 exceeded: %d fetches in flight", n)
	}

	for _, c := range src.detailCalls() {
		src.release(c)
	}
	waitFor(t, "second detail fetch", func() bool { return len(src.detailCalls()) == 2 })
	for _, c := range src.detailCalls()[1:] {
		src.release(c)
	}
	waitFor(t, "third detail fetch", func() bool { return len(src.detailCalls()) == 3 })
	src.release(src.detailCalls()[2])
	v.Wait()

	for _, r := range v.Rows() {
		if !r.State.IsLoaded() {
			t.Errorf("row %s not loaded", r.Key)
		}
	}
}

func TestDetailView_RemountRefetches(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	fetch := func(ctx context.Context, key string) (gateway.WeaponDetail, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return gateway.WeaponDetail{Name: "Plasma Rifle", Damage: "20", FireMode: "Auto"}, nil
	}

	v := NewDetailView[gateway.WeaponDetail]("plasma_rifle", fetch, DetailOptions{Kind: "weapons"})
	v.Mount(context.Background())
	v.Wait()
	first := v.State()
	v.Unmount()

	v.Mount(context.Background())
	v.Wait()
	second := v.State()
	v.Unmount()

	if calls != 2 {
		t.Errorf("expected 2 fetches, got %d", calls)
	}
	if !first.IsLoaded() || !second.IsLoaded() {
		t.Fatalf("states: %s, %s", first.Status, second.Status)
	}
	if diff := cmp.Diff(first.Value, second.Value); diff != "" {
		t.Errorf("remount diverged (-first +second):\n%s", diff)
	}
}

func TestDetailView_FailureAndPanic(t *testing.T) {
	fetch := func(ctx context.Context, key string) (gateway.DemonDetail, error) {
		panic("boom")
	}

	v := NewDetailView[gateway.DemonDetail]("imp", fetch, DetailOptions{FailureMessage: "Failed to load"})
	v.Mount(context.Background())
	v.Wait()

	st := v.State()
	if !st.IsFailed() || st.Reason != "Failed to load" || st.Err == nil {
		t.Fatalf("expected failed state with reason, got %+v", st)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"Mancubus":        "mancubus",
		"Pain Elemental":  "pain_elemental",
		"Arch-Vile Prime": "arch-vile_prime",
		"":                "",
	}
	for in, want := range tests {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScope_GoAfterClose(t *testing.T) {
	s := NewScope(context.Background(), 0)
	s.Close()
	s.Close()

	if s.Go(func(ctx context.Context) { t.Error("task ran after close") }) {
		t.Error("Go should report false after Close")
	}
	if s.Context().Err() == nil {
		t.Error("context should be cancelled")
	}
	if s.InFlight() != 0 {
		t.Errorf("in flight: %d", s.InFlight())
	}
}
