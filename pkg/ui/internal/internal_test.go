package internal

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/BrandonKowalski/doomdex/pkg/ui/constants"
	"github.com/google/go-cmp/cmp"
	"github.com/veandco/go-sdl2/sdl"
)

func TestWrapText(t *testing.T) {
	// One unit per rune keeps widths predictable.
	measure := func(s string) int32 { return int32(len([]rune(s))) }

	tests := []struct {
		name  string
		text  string
		width int32
		want  []string
	}{
		{"fits", "Imp", 10, []string{"Imp"}},
		{"wraps on words", "fires explosive plasma bolts", 15, []string{"fires explosive", "plasma bolts"}},
		{"keeps newlines", "line one\n\nline two", 20, []string{"line one", "", "line two"}},
		{"long word alone", "a supercalifragilistic b", 5, []string{"a", "supercalifragilistic", "b"}},
		{"crlf", "a\r\nb", 5, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.width, measure)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("WrapText mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		start, selected, size, total, want int
	}{
		{0, 0, 5, 3, 0},
		{0, 4, 5, 10, 0},
		{0, 5, 5, 10, 1},
		{4, 2, 5, 10, 2},
		{8, 9, 5, 10, 5},
		{0, 9, 0, 10, 0},
	}
	for _, tt := range tests {
		if got := VisibleWindow(tt.start, tt.selected, tt.size, tt.total); got != tt.want {
			t.Errorf("VisibleWindow(%d, %d, %d, %d) = %d, want %d", tt.start, tt.selected, tt.size, tt.total, got, tt.want)
		}
	}
}

func TestScaleFor(t *testing.T) {
	if got := ScaleFor(240); got != 1 {
		t.Errorf("ScaleFor(240) = %v, want 1", got)
	}
	if got := ScaleFor(960); got != 2 {
		t.Errorf("ScaleFor(960) = %v, want 2", got)
	}
}

func TestHexToColor(t *testing.T) {
	got := HexToColor(0x8B0010)
	want := sdl.Color{R: 0x8B, G: 0x00, B: 0x10, A: 255}
	if got != want {
		t.Errorf("HexToColor = %+v, want %+v", got, want)
	}
	if d := Dim(sdl.Color{R: 200, G: 100, B: 50, A: 255}, 0.5); d != (sdl.Color{R: 100, G: 50, B: 25, A: 255}) {
		t.Errorf("Dim = %+v", d)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseWindowMode(t *testing.T) {
	if wo, err := ParseWindowMode(""); err != nil || !wo.IsZero() {
		t.Errorf("empty mode: %+v, %v", wo, err)
	}
	if wo, err := ParseWindowMode("Fullscreen"); err != nil || !wo.FullscreenDesktop {
		t.Errorf("fullscreen: %+v, %v", wo, err)
	}
	if _, err := ParseWindowMode("kiosk"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestDirectionalInput(t *testing.T) {
	clock := time.Unix(0, 0)
	d := NewDirectionalInputWithTiming(300*time.Millisecond, 50*time.Millisecond)
	d.now = func() time.Time { return clock }

	if d.SetHeld(constants.VirtualButtonA, true) {
		t.Fatal("A is not a direction")
	}
	d.SetHeld(constants.VirtualButtonDown, true)

	clock = clock.Add(200 * time.Millisecond)
	if dir := d.Update(); dir != DirectionNone {
		t.Fatalf("repeat before delay: %v", dir)
	}
	clock = clock.Add(100 * time.Millisecond)
	if dir := d.Update(); dir != DirectionDown {
		t.Fatalf("expected first repeat, got %v", dir)
	}
	clock = clock.Add(50 * time.Millisecond)
	if dir := d.Update(); dir != DirectionDown {
		t.Fatalf("expected interval repeat, got %v", dir)
	}

	// Releasing a different direction leaves the held one alone.
	d.SetHeld(constants.VirtualButtonUp, false)
	if d.HeldDirection() != DirectionDown {
		t.Fatal("release of another direction cleared hold")
	}
	d.SetHeld(constants.VirtualButtonDown, false)
	clock = clock.Add(time.Second)
	if dir := d.Update(); dir != DirectionNone {
		t.Fatalf("repeat after release: %v", dir)
	}
}

func TestPowerTracker(t *testing.T) {
	cfg := PowerButtonConfig{ShortPressMax: 2 * time.Second, CoolDownTime: time.Second}
	tr := powerTracker{cfg: cfg}
	start := time.Unix(100, 0)

	if got := tr.release(start); got != powerNone {
		t.Fatalf("release without press = %v", got)
	}

	tr.press(start)
	if got := tr.release(start.Add(500 * time.Millisecond)); got != powerSuspend {
		t.Fatalf("short press = %v, want suspend", got)
	}

	// Wake-up press inside the cool down is ignored.
	tr.press(start.Add(700 * time.Millisecond))
	if got := tr.release(start.Add(800 * time.Millisecond)); got != powerNone {
		t.Fatalf("press during cool down = %v", got)
	}

	tr.press(start.Add(5 * time.Second))
	if got := tr.release(start.Add(8 * time.Second)); got != powerShutdown {
		t.Fatalf("long press = %v, want shutdown", got)
	}
}

func TestTextureCache_Eviction(t *testing.T) {
	destroyed := 0
	c := NewTextureCacheWithSize(2)
	c.destroy = func(*sdl.Texture) { destroyed++ }

	c.Set("imp", nil)
	c.Set("baron", nil)
	c.Get("imp")
	c.Set("cacodemon", nil)

	if c.Len() != 2 || destroyed != 1 {
		t.Fatalf("len=%d destroyed=%d", c.Len(), destroyed)
	}
	if c.Contains("baron") {
		t.Error("least recently used entry should be evicted")
	}
	if !c.Contains("imp") || !c.Contains("cacodemon") {
		t.Error("recent entries should survive")
	}

	c.Destroy()
	if c.Len() != 0 || destroyed != 3 {
		t.Errorf("after destroy len=%d destroyed=%d", c.Len(), destroyed)
	}
}

func TestImageLoader(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := map[string]int{}

	fetch := func(ctx context.Context, url string) ([]byte, error) {
		mu.Lock()
		calls[url]++
		mu.Unlock()
		if strings.HasSuffix(url, "missing.png") {
			return nil, errors.New("404")
		}
		select {
		case <-release:
			return []byte("png"), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	l := NewImageLoader(context.Background(), fetch, 4)

	if got := l.Request("/img/imp.png"); got != ImagePending {
		t.Fatalf("first request = %v", got)
	}
	if got := l.Request("/img/imp.png"); got != ImagePending {
		t.Fatalf("second request = %v", got)
	}
	l.Request("/img/missing.png")
	if got := l.Request(""); got != ImageFailed {
		t.Fatalf("empty url = %v", got)
	}

	close(release)
	l.Wait()

	if got := l.Request("/img/imp.png"); got != ImageReady {
		t.Errorf("after download = %v, want ready", got)
	}
	if got := l.Request("/img/missing.png"); got != ImageFailed {
		t.Errorf("failed download = %v", got)
	}
	if calls["/img/imp.png"] != 1 {
		t.Errorf("expected one download, got %d", calls["/img/imp.png"])
	}
	if l.InFlight() != 0 {
		t.Errorf("in flight = %d", l.InFlight())
	}

	l.Close()
	if got := l.Request("/img/new.png"); got != ImageFailed {
		t.Errorf("request after close = %v", got)
	}
}

func TestImageLoader_CloseCancels(t *testing.T) {
	started := make(chan struct{})
	fetch := func(ctx context.Context, url string) ([]byte, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}

	l := NewImageLoader(context.Background(), fetch, 4)
	l.Request("/img/slow.png")
	<-started

	done := make(chan struct{})
	go func() {
		l.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the download")
	}
}

func TestInputProcessor_Keyboard(t *testing.T) {
	p := NewInputProcessor(false)

	ev := p.ProcessSDLEvent(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_UP}})
	if ev == nil || ev.Button != constants.VirtualButtonUp || !ev.Pressed {
		t.Fatalf("KEYDOWN up = %+v", ev)
	}

	ev = p.ProcessSDLEvent(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_b}})
	if ev == nil || ev.Button != constants.VirtualButtonB || ev.Pressed {
		t.Fatalf("KEYUP b = %+v", ev)
	}

	if ev := p.ProcessSDLEvent(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_UP}}); ev != nil {
		t.Errorf("key repeat should be ignored, got %+v", ev)
	}
	if ev := p.ProcessSDLEvent(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_F12}}); ev != nil {
		t.Errorf("unmapped key should be ignored, got %+v", ev)
	}
}

func TestInputProcessor_FaceButtons(t *testing.T) {
	press := &sdl.ControllerButtonEvent{
		Type:   sdl.CONTROLLERBUTTONDOWN,
		Button: uint8(sdl.CONTROLLER_BUTTON_A),
		State:  uint8(sdl.PRESSED),
	}

	if ev := NewInputProcessor(false).ProcessSDLEvent(press); ev == nil || ev.Button != constants.VirtualButtonB {
		t.Errorf("default layout: south button = %+v, want B", ev)
	}
	if ev := NewInputProcessor(true).ProcessSDLEvent(press); ev == nil || ev.Button != constants.VirtualButtonA {
		t.Errorf("flipped layout: south button = %+v, want A", ev)
	}
}

func TestInputProcessor_Axis(t *testing.T) {
	p := NewInputProcessor(false)
	axis := func(v int16) *Event {
		return p.ProcessSDLEvent(&sdl.ControllerAxisEvent{
			Type:  sdl.CONTROLLERAXISMOTION,
			Axis:  uint8(sdl.CONTROLLER_AXIS_LEFTY),
			Value: v,
		})
	}

	if ev := axis(1000); ev != nil {
		t.Fatalf("dead zone produced %+v", ev)
	}
	if ev := axis(30000); ev == nil || ev.Button != constants.VirtualButtonDown || !ev.Pressed {
		t.Fatalf("push down = %+v", ev)
	}
	if ev := axis(31000); ev != nil {
		t.Fatalf("still held produced %+v", ev)
	}
	if ev := axis(0); ev == nil || ev.Button != constants.VirtualButtonDown || ev.Pressed {
		t.Fatalf("return to center = %+v", ev)
	}
}

func TestRasterizeIcon(t *testing.T) {
	for _, icon := range []Icon{IconPlaceholder, IconAlert, IconSpinner} {
		rgba, err := RasterizeIcon(icon, 32)
		if err != nil {
			t.Fatalf("%s: %v", icon, err)
		}
		if b := rgba.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
			t.Fatalf("%s: bounds %v", icon, b)
		}
		painted := 0
		for i := 3; i < len(rgba.Pix); i += 4 {
			if rgba.Pix[i] > 0 {
				painted++
			}
		}
		if painted == 0 {
			t.Errorf("%s: nothing drawn", icon)
		}
	}

	if _, err := RasterizeIcon("nope", 32); err == nil {
		t.Error("expected error for unknown icon")
	}
	if _, err := RasterizeSVG(iconSources[IconAlert], 0, 10); err == nil {
		t.Error("expected error for zero size")
	}
}
