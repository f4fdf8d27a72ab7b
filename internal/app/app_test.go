package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/doomdex/internal/i18n"
	"github.com/BrandonKowalski/doomdex/pkg/gateway"
	"github.com/BrandonKowalski/doomdex/pkg/ui"
	"github.com/BrandonKowalski/doomdex/pkg/ui/router"
	"github.com/BrandonKowalski/doomdex/pkg/view"
)

type fakeGateway struct {
	mu      sync.Mutex
	calls   []string
	demons  map[string]gateway.DemonDetail
	weapons map[string]gateway.WeaponDetail
	order   map[string][]string
	listErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		demons: map[string]gateway.DemonDetail{
			"zombieman":      {Name: "Zombieman", HP: "20", Speed: "8", Description: "Former human", Rank: "Fodder", Image: "/img/zombieman.png"},
			"pain_elemental": {Name: "Pain Elemental", HP: "400", Speed: "8", Description: "Spits lost souls", Rank: "Heavy", Image: "/img/pain.png"},
		},
		weapons: map[string]gateway.WeaponDetail{
			"shotgun":      {Name: "Shotgun", Damage: "70", FireMode: "Pump", Location: "E1M2", WeaponType: "Hitscan", AmmoType: "Shells"},
			"plasma_rifle": {Name: "Plasma Rifle", Damage: "20", FireMode: "Auto", Location: "UAC Facility", WeaponType: "Energy", AmmoType: "Cells", Image: "http://example.com/plasma.png"},
		},
		order: map[string][]string{
			"demons":  {"zombieman", "pain_elemental"},
			"weapons": {"shotgun", "plasma_rifle", "bfg"},
		},
	}
}

func (f *fakeGateway) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeGateway) list(kind string) ([]gateway.EntitySummary, error) {
	f.record("list " + kind)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []gateway.EntitySummary
	for _, k := range f.order[kind] {
		out = append(out, gateway.EntitySummary(k))
	}
	return out, nil
}

func (f *fakeGateway) ListDemons(context.Context) ([]gateway.EntitySummary, error) {
	return f.list("demons")
}

func (f *fakeGateway) ListWeapons(context.Context) ([]gateway.EntitySummary, error) {
	return f.list("weapons")
}

func (f *fakeGateway) DemonDetail(_ context.Context, key string) (gateway.DemonDetail, error) {
	f.record("demon " + key)
	d, ok := f.demons[key]
	if !ok {
		return gateway.DemonDetail{}, &gateway.StatusError{Op: "demon detail", StatusCode: 404}
	}
	return d, nil
}

func (f *fakeGateway) WeaponDetail(_ context.Context, key string) (gateway.WeaponDetail, error) {
	f.record("weapon " + key)
	w, ok := f.weapons[key]
	if !ok {
		return gateway.WeaponDetail{}, &gateway.StatusError{Op: "weapon detail", StatusCode: 404}
	}
	return w, nil
}

func newTestApp(t *testing.T, gw gateway.Gateway) *App {
	t.Helper()
	tr, err := i18n.New(language.English, nil)
	if err != nil {
		t.Fatal(err)
	}
	a, err := New(Options{Gateway: gw, Translator: tr})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

// settledList polls until the list failed or no row is still loading.
func settledList(t *testing.T, source ui.ListSource) ui.ListSnapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := source.Snapshot()
		if snap.Status == ui.ContentFailed {
			return snap
		}
		if snap.Status == ui.ContentReady {
			done := true
			for _, item := range snap.Items {
				if item.Status == ui.ContentLoading {
					done = false
				}
			}
			if done {
				return snap
			}
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("list never settled")
	return ui.ListSnapshot{}
}

func settledDetail(t *testing.T, source ui.DetailSource) ui.DetailSnapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := source.Snapshot(); snap.Status != ui.ContentLoading {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("detail never settled")
	return ui.DetailSnapshot{}
}

func indexOf(items []ui.MenuItem, text string) int {
	for i, item := range items {
		if item.Text == text {
			return i
		}
	}
	return -1
}

func TestBrowseWeaponsAndBack(t *testing.T) {
	gw := newFakeGateway()
	a := newTestApp(t, gw)

	var routes []string
	homeVisits, listVisits := 0, 0

	a.runHome = func(_ string, options []ui.SelectionOption, _ []ui.FooterHelpItem, settings ui.SelectionMessageSettings) (*ui.SelectionMessageResult, error) {
		routes = append(routes, a.Router().Current())
		homeVisits++
		if homeVisits == 1 {
			return &ui.SelectionMessageResult{SelectedIndex: 1, SelectedValue: options[1].Value}, nil
		}
		if settings.InitialSelection != 1 {
			t.Errorf("home selection not restored: %d", settings.InitialSelection)
		}
		return nil, ui.ErrCancelled
	}

	a.runList = func(options ui.ListOptions) (*ui.ListResult, error) {
		routes = append(routes, a.Router().Current())
		listVisits++
		if options.Title != "Weapons" {
			t.Errorf("title = %q", options.Title)
		}
		snap := settledList(t, options.Source)
		if snap.Title != "3 weapons" {
			t.Errorf("loaded title = %q", snap.Title)
		}
		if listVisits == 1 {
			want := []string{"Shotgun", "Plasma Rifle", "bfg (Unavailable)"}
			var got []string
			for _, item := range snap.Items {
				got = append(got, item.Text)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
			if snap.Items[2].Status != ui.ContentFailed {
				t.Errorf("missing weapon status = %s", snap.Items[2].Status)
			}
			i := indexOf(snap.Items, "Plasma Rifle")
			return &ui.ListResult{Action: ui.ListActionSelected, Selected: i, Item: snap.Items[i], VisibleStart: 1}, nil
		}
		if options.SelectedIndex != 1 || options.VisibleStart != 1 {
			t.Errorf("list position not restored: %d/%d", options.SelectedIndex, options.VisibleStart)
		}
		return &ui.ListResult{Action: ui.ListActionMenu}, nil
	}

	a.runDetail = func(options ui.DetailScreenOptions) (*ui.DetailScreenResult, error) {
		routes = append(routes, a.Router().Current())
		snap := settledDetail(t, options.Source)
		want := []ui.MetadataItem{
			{Label: "Name:", Value: "Plasma Rifle"},
			{Label: "Damage:", Value: "20"},
			{Label: "Fire Mode:", Value: "Auto"},
			{Label: "Location:", Value: "UAC Facility"},
			{Label: "Type:", Value: "Energy"},
			{Label: "Ammo:", Value: "Cells"},
		}
		if diff := cmp.Diff(want, snap.Rows); diff != "" {
			t.Errorf("detail rows mismatch (-want +got):\n%s", diff)
		}
		if snap.ImageURL != "http://example.com/plasma.png" || snap.Title != "Plasma Rifle" {
			t.Errorf("detail header = %q %q", snap.Title, snap.ImageURL)
		}
		return nil, ui.ErrCancelled
	}

	if err := a.Run(context.Background(), ""); err != nil {
		t.Fatal(err)
	}

	want := []string{"home", "weapons", "weaponDetail/plasma_rifle", "weapons", "home"}
	if diff := cmp.Diff(want, routes); diff != "" {
		t.Errorf("routes mismatch (-want +got):\n%s", diff)
	}

	gw.mu.Lock()
	defer gw.mu.Unlock()
	lists := 0
	for _, call := range gw.calls {
		if call == "list weapons" {
			lists++
		}
	}
	if lists != 2 {
		t.Errorf("weapons listed %d times, want once per visit", lists)
	}
}

func TestListFailureIsDistinctState(t *testing.T) {
	gw := newFakeGateway()
	gw.listErr = errors.New("connection refused")
	a := newTestApp(t, gw)

	a.runList = func(options ui.ListOptions) (*ui.ListResult, error) {
		snap := settledList(t, options.Source)
		if snap.Status != ui.ContentFailed || snap.Message != "Failed to load demons" {
			t.Errorf("snapshot = %s %q", snap.Status, snap.Message)
		}
		if len(snap.Items) != 0 {
			t.Errorf("failed list has %d items", len(snap.Items))
		}
		return nil, ui.ErrCancelled
	}
	a.runHome = func(string, []ui.SelectionOption, []ui.FooterHelpItem, ui.SelectionMessageSettings) (*ui.SelectionMessageResult, error) {
		return nil, ui.ErrCancelled
	}

	if err := a.Run(context.Background(), "demons"); err != nil {
		t.Fatal(err)
	}
}

func TestEmptyKeyRowKeepsListUp(t *testing.T) {
	gw := newFakeGateway()
	gw.order["demons"] = []string{"", "zombieman"}
	gw.demons[""] = gateway.DemonDetail{HP: "1"}
	a := newTestApp(t, gw)

	listVisits := 0
	a.runList = func(options ui.ListOptions) (*ui.ListResult, error) {
		listVisits++
		snap := settledList(t, options.Source)
		if listVisits == 1 {
			if snap.Items[0].Status != ui.ContentReady {
				t.Fatalf("row 0 status = %s", snap.Items[0].Status)
			}
			return &ui.ListResult{Action: ui.ListActionSelected, Selected: 0, Item: snap.Items[0]}, nil
		}
		if options.SelectedIndex != 0 {
			t.Errorf("selection moved to %d", options.SelectedIndex)
		}
		return nil, ui.ErrCancelled
	}
	a.runDetail = func(ui.DetailScreenOptions) (*ui.DetailScreenResult, error) {
		t.Error("detail opened for an empty key")
		return nil, ui.ErrCancelled
	}
	a.runHome = func(string, []ui.SelectionOption, []ui.FooterHelpItem, ui.SelectionMessageSettings) (*ui.SelectionMessageResult, error) {
		return nil, ui.ErrCancelled
	}

	if err := a.Run(context.Background(), "demons"); err != nil {
		t.Fatal(err)
	}
	if listVisits != 2 {
		t.Errorf("list shown %d times, want 2", listVisits)
	}
}

func TestStartAtDetailRoute(t *testing.T) {
	gw := newFakeGateway()
	a := newTestApp(t, gw)

	var routes []string
	a.runDetail = func(options ui.DetailScreenOptions) (*ui.DetailScreenResult, error) {
		routes = append(routes, a.Router().Current())
		snap := settledDetail(t, options.Source)
		if snap.Status != ui.ContentReady || len(snap.Rows) != 5 || snap.Rows[1].Value != "400" {
			t.Errorf("unexpected snapshot %+v", snap)
		}
		return nil, ui.ErrCancelled
	}
	a.runHome = func(string, []ui.SelectionOption, []ui.FooterHelpItem, ui.SelectionMessageSettings) (*ui.SelectionMessageResult, error) {
		routes = append(routes, a.Router().Current())
		return nil, ui.ErrQuit
	}

	if err := a.Run(context.Background(), "demonDetail/pain_elemental"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"demonDetail/pain_elemental", "home"}, routes); diff != "" {
		t.Errorf("routes mismatch (-want +got):\n%s", diff)
	}
}

func TestDetailFailure(t *testing.T) {
	a := newTestApp(t, newFakeGateway())
	a.runDetail = func(options ui.DetailScreenOptions) (*ui.DetailScreenResult, error) {
		snap := settledDetail(t, options.Source)
		if snap.Status != ui.ContentFailed || snap.Message != "Nothing named cyberdemon in the codex" {
			t.Errorf("snapshot = %s %q", snap.Status, snap.Message)
		}
		return &ui.DetailScreenResult{Action: ui.DetailActionMenu}, nil
	}
	a.runHome = func(string, []ui.SelectionOption, []ui.FooterHelpItem, ui.SelectionMessageSettings) (*ui.SelectionMessageResult, error) {
		return nil, ui.ErrCancelled
	}
	if err := a.Run(context.Background(), "demonDetail/cyberdemon"); err != nil {
		t.Fatal(err)
	}
}

func TestRunErrors(t *testing.T) {
	a := newTestApp(t, newFakeGateway())
	if err := a.Run(context.Background(), "bestiary"); err == nil {
		t.Error("expected error for unknown route")
	}

	boom := errors.New("renderer lost")
	a.runHome = func(string, []ui.SelectionOption, []ui.FooterHelpItem, ui.SelectionMessageSettings) (*ui.SelectionMessageResult, error) {
		return nil, ui.NewInfrastructureError("render", boom)
	}
	err := a.Run(context.Background(), "")
	if !errors.Is(err, boom) || !ui.IsInfrastructureError(err) {
		t.Errorf("Run() = %v, want infrastructure error", err)
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("expected error without gateway")
	}
	if _, err := New(Options{Gateway: newFakeGateway()}); err == nil {
		t.Error("expected error without translator")
	}
}

func TestListSnapshotStates(t *testing.T) {
	if snap := listSnapshot(view.Loading[[]view.Row[gateway.DemonDetail]](), 3); snap.Status != ui.ContentLoading || snap.Version != 3 {
		t.Errorf("loading snapshot = %+v", snap)
	}

	rows := []view.Row[gateway.DemonDetail]{
		{Index: 0, Key: "imp", State: view.Loading[gateway.DemonDetail]()},
		{Index: 1, Key: "mancubus", State: view.Loaded(gateway.DemonDetail{Name: "Mancubus", Image: "/m.png"})},
		{Index: 2, Key: "archvile", State: view.Failed[gateway.DemonDetail]("Unavailable", fmt.Errorf("timeout"))},
	}
	snap := listSnapshot(view.Loaded(rows), 7)

	want := []ui.MenuItem{
		{Text: "imp", Status: ui.ContentLoading, Metadata: "imp"},
		{Text: "Mancubus", Status: ui.ContentReady, ImageURL: "/m.png", Metadata: "mancubus"},
		{Text: "archvile (Unavailable)", Status: ui.ContentFailed, Metadata: "archvile"},
	}
	if diff := cmp.Diff(want, snap.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestDetailSnapshotTranslatesLabels(t *testing.T) {
	tr, err := i18n.New(language.Spanish, nil)
	if err != nil {
		t.Fatal(err)
	}
	d := gateway.DemonDetail{Name: "Imp", HP: "60"}
	snap := detailSnapshot("imp", view.Loaded(d), 1, tr)
	if snap.Rows[0].Label != "Nombre:" || snap.Rows[1].Label != "Puntos de vida:" || snap.Rows[1].Value != "60" {
		t.Errorf("rows = %+v", snap.Rows)
	}

	loading := detailSnapshot("imp", view.Loading[gateway.DemonDetail](), 0, tr)
	if loading.Title != "imp" || loading.Status != ui.ContentLoading {
		t.Errorf("loading = %+v", loading)
	}
}

func TestDetailSnapshotFailureReasons(t *testing.T) {
	tr, err := i18n.New(language.English, nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", &gateway.StatusError{Op: "demon_detail", StatusCode: 404}, "Nothing named cyberdemon in the codex"},
		{"server error", &gateway.StatusError{Op: "demon_detail", StatusCode: 500}, "Failed to load cyberdemon"},
		{"decode", &gateway.DecodeError{Op: "demon_detail", Err: errors.New("missing fields: hp")}, "Failed to load cyberdemon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := view.Failed[gateway.DemonDetail]("Failed to load cyberdemon", tt.err)
			snap := detailSnapshot("cyberdemon", state, 2, tr)
			if snap.Status != ui.ContentFailed || snap.Message != tt.want {
				t.Errorf("snapshot = %s %q, want %q", snap.Status, snap.Message, tt.want)
			}
		})
	}
}

func TestTransitions(t *testing.T) {
	a := newTestApp(t, newFakeGateway())
	stack := router.NewStack()

	next, in := a.transition(ScreenHome, HomeResult{Target: ScreenDemons, Selected: 0}, stack)
	if next != ScreenDemons || stack.Len() != 1 {
		t.Fatalf("home -> %d, stack %d", next, stack.Len())
	}

	next, in = a.transition(ScreenDemons, ListResult{Action: ListActionOpen, Key: "imp", Resume: ListResume{Selected: 4}}, stack)
	if next != ScreenDemonDetail || in.(DetailInput).Key != "imp" {
		t.Fatalf("open -> %d %v", next, in)
	}

	next, in = a.transition(ScreenDemonDetail, DetailResult{Action: DetailActionBack}, stack)
	if next != ScreenDemons || in.(ListInput).Resume.Selected != 4 {
		t.Fatalf("back -> %d %v", next, in)
	}

	next, _ = a.transition(ScreenDemons, ListResult{Action: ListActionBack}, stack)
	if next != ScreenHome || !stack.IsEmpty() {
		t.Fatalf("list back -> %d, stack %d", next, stack.Len())
	}

	next, _ = a.transition(ScreenHome, HomeResult{Target: router.ScreenExit}, stack)
	if next != router.ScreenExit {
		t.Errorf("home back -> %d", next)
	}
}

func TestMenuUnwindsToHome(t *testing.T) {
	a := newTestApp(t, newFakeGateway())
	stack := router.NewStack()
	stack.Push(ScreenHome, HomeInput{Selected: 1}, nil)
	stack.Push(ScreenWeapons, ListInput{}, &ListResume{})

	next, in := a.transition(ScreenWeaponDetail, DetailResult{Action: DetailActionHome}, stack)
	if next != ScreenHome || in.(HomeInput).Selected != 1 || !stack.IsEmpty() {
		t.Errorf("menu -> %d %v, stack %d", next, in, stack.Len())
	}
}

func TestRoutesRoundTrip(t *testing.T) {
	a := newTestApp(t, newFakeGateway())
	for _, route := range []string{"home", "demons", "weapons", "demonDetail/pain_elemental", "weaponDetail/plasma_rifle"} {
		screen, key, err := a.Router().Resolve(route)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", route, err)
		}
		var input any = ListInput{}
		if key != "" {
			input = DetailInput{Key: key}
		}
		path, err := a.Router().Path(screen, input)
		if err != nil || path != route {
			t.Errorf("Path(%d) = %q, %v; want %q", screen, path, err, route)
		}
	}
}

func TestFooterTranslates(t *testing.T) {
	a := newTestApp(t, newFakeGateway())
	items := a.footer("HelpBack", "HelpSelect")
	if len(items) != 2 || items[0].ButtonName != "B" || !strings.EqualFold(items[1].HelpText, "select") {
		t.Errorf("footer = %+v", items)
	}
}
