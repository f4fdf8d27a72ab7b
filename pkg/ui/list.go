package ui

import (
	"context"
	"time"

	"github.com/BrandonKowalski/doomdex/pkg/ui/constants"
	"github.com/BrandonKowalski/doomdex/pkg/ui/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// ImageFetchFunc downloads the bytes of a remote image.
type ImageFetchFunc func(ctx context.Context, url string) ([]byte, error)

// ListSnapshot is what a List draws on a frame.
type ListSnapshot struct {
	Status  ContentStatus // Overall state; Items are only drawn when ready
	Message string        // Shown when Status is ContentFailed
	Title   string        // Replaces ListOptions.Title when set
	Items   []MenuItem
	Version uint64 // Changes whenever the content changes
}

// ListSource supplies snapshots while the list is on screen. Snapshot is
// called from the render loop and must not block.
type ListSource interface {
	Snapshot() ListSnapshot
}

// ListSourceFunc adapts a function to ListSource.
type ListSourceFunc func() ListSnapshot

func (f ListSourceFunc) Snapshot() ListSnapshot { return f() }

// ListOptions configures List.
type ListOptions struct {
	Title           string
	Source          ListSource
	SelectedIndex   int // Item to focus once it is shown
	VisibleStart    int // First row on screen, from a previous ListResult
	LoadingText     string
	EmptyText       string
	FooterHelpItems []FooterHelpItem // Shown while rows are on screen
	IdleHelpItems   []FooterHelpItem // Shown while loading, failed or empty
	FetchImage      ImageFetchFunc // Thumbnails are skipped when nil
	Context         context.Context
}

// listModel tracks focus over the rows that are currently drawn. Focus is
// an item index so it survives rows appearing around it.
type listModel struct {
	items    []MenuItem
	visible  []int
	focus    int // item index, -1 when nothing is drawn
	want     int // item index to focus once visible, -1 when none
	start    int // first visible position on screen
	pageSize int
}

func newListModel(selected, start, pageSize int) *listModel {
	return &listModel{focus: -1, want: selected, start: start, pageSize: pageSize}
}

func (m *listModel) sync(items []MenuItem) {
	m.items = items
	m.visible = m.visible[:0]
	for i, item := range items {
		if item.Status != ContentLoading {
			m.visible = append(m.visible, i)
		}
	}

	if m.want >= 0 && m.position(m.want) >= 0 {
		m.focus = m.want
		m.want = -1
	}
	if m.position(m.focus) < 0 {
		m.focus = -1
		if len(m.visible) > 0 {
			m.focus = m.visible[0]
		}
	}
	m.scroll()
}

// position returns where item sits among the drawn rows, or -1.
func (m *listModel) position(item int) int {
	for pos, idx := range m.visible {
		if idx == item {
			return pos
		}
	}
	return -1
}

func (m *listModel) move(delta int) {
	n := len(m.visible)
	if n == 0 {
		return
	}
	pos := m.position(m.focus)
	pos = ((pos+delta)%n + n) % n
	m.focus = m.visible[pos]
	m.want = -1
	m.scroll()
}

// page moves focus by delta rows without wrapping.
func (m *listModel) page(delta int) {
	n := len(m.visible)
	if n == 0 {
		return
	}
	pos := m.position(m.focus) + delta
	pos = max(0, min(pos, n-1))
	m.focus = m.visible[pos]
	m.want = -1
	m.scroll()
}

func (m *listModel) scroll() {
	pos := m.position(m.focus)
	if pos < 0 {
		pos = 0
	}
	m.start = internal.VisibleWindow(m.start, pos, m.pageSize, len(m.visible))
}

// selectable reports whether the focused row may be opened.
func (m *listModel) selectable() bool {
	return m.focus >= 0 && m.focus < len(m.items) && m.items[m.focus].Status == ContentReady
}

type listController struct {
	options    ListOptions
	window     *internal.Window
	renderer   *sdl.Renderer
	model      *listModel
	snapshot   ListSnapshot
	synced     bool
	images     *internal.ImageLoader
	icons      *internal.IconSet
	textCache  *internal.TextureCache
	directions internal.DirectionalInput
	lastInput  time.Time
	result     *ListResult
	err        error
}

// List shows a live list backed by options.Source and blocks until the
// user opens a loaded row, presses Menu, or backs out. Back returns
// ErrCancelled; closing the window returns ErrQuit; a done Context returns
// its error.
func List(options ListOptions) (*ListResult, error) {
	if options.Context == nil {
		options.Context = context.Background()
	}

	c := newListController(options)
	defer c.cleanup()

	for c.result == nil && c.err == nil {
		if err := options.Context.Err(); err != nil {
			return nil, err
		}
		c.handleEvents()
		c.update()
		c.render()
	}

	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

func newListController(options ListOptions) *listController {
	window := internal.GetWindow()
	c := &listController{
		options:    options,
		window:     window,
		renderer:   window.Renderer,
		icons:      internal.NewIconSet(window.Renderer, internal.Scale(thumbSize)),
		textCache:  internal.NewTextureCacheWithSize(64),
		directions: internal.NewDirectionalInputWithTiming(250*time.Millisecond, 60*time.Millisecond),
		lastInput:  time.Now(),
	}
	if options.FetchImage != nil {
		c.images = internal.NewImageLoader(options.Context, internal.FetchFunc(options.FetchImage), 32)
	}
	c.model = newListModel(options.SelectedIndex, options.VisibleStart, c.pageSize())
	return c
}

const (
	rowHeight = 44
	thumbSize = 36
)

func (c *listController) pageSize() int {
	margins := internal.UniformPadding(20).Scaled()
	top := margins.Top + int32(internal.Fonts.LargeFont.Height()) + internal.Scale(15)
	bottom := footerHeight(internal.Fonts.SmallFont, margins.Bottom)
	available := c.window.GetHeight() - top - bottom
	return int(internal.Max32(1, available/internal.Scale(rowHeight)))
}

func (c *listController) handleEvents() {
	processor := internal.GetInputProcessor()

	for event := sdl.WaitEventTimeout(constants.FrameDelay); event != nil; event = sdl.PollEvent() {
		switch event.(type) {
		case *sdl.QuitEvent:
			c.err = ErrQuit
			return
		case *sdl.KeyboardEvent, *sdl.ControllerButtonEvent, *sdl.ControllerAxisEvent, *sdl.ControllerDeviceEvent:
			inputEvent := processor.ProcessSDLEvent(event)
			if inputEvent == nil {
				continue
			}
			if !inputEvent.Pressed {
				c.directions.SetHeld(inputEvent.Button, false)
				continue
			}
			c.handleInput(inputEvent.Button)
			if c.result != nil || c.err != nil {
				return
			}
		}
	}
}

func (c *listController) handleInput(button constants.VirtualButton) {
	if time.Since(c.lastInput) < constants.DefaultInputDelay {
		return
	}
	c.lastInput = time.Now()

	switch button {
	case constants.VirtualButtonUp:
		c.directions.SetHeld(button, true)
		c.model.move(-1)
	case constants.VirtualButtonDown:
		c.directions.SetHeld(button, true)
		c.model.move(1)
	case constants.VirtualButtonL1, constants.VirtualButtonLeft:
		c.model.page(-c.model.pageSize)
	case constants.VirtualButtonR1, constants.VirtualButtonRight:
		c.model.page(c.model.pageSize)
	case constants.VirtualButtonA:
		if c.snapshot.Status == ContentReady && c.model.selectable() {
			c.result = &ListResult{
				Action:       ListActionSelected,
				Selected:     c.model.focus,
				Item:         c.model.items[c.model.focus],
				VisibleStart: c.model.start,
			}
		}
	case constants.VirtualButtonB:
		c.err = ErrCancelled
	case constants.VirtualButtonMenu:
		c.result = &ListResult{Action: ListActionMenu, Selected: c.model.focus, VisibleStart: c.model.start}
	}
}

func (c *listController) update() {
	switch c.directions.Update() {
	case internal.DirectionUp:
		c.model.move(-1)
	case internal.DirectionDown:
		c.model.move(1)
	}

	if c.options.Source == nil {
		return
	}
	snap := c.options.Source.Snapshot()
	if c.synced && snap.Version == c.snapshot.Version && snap.Status == c.snapshot.Status {
		return
	}
	c.snapshot = snap
	c.synced = true
	c.model.sync(snap.Items)
}

func (c *listController) render() {
	c.window.Clear()

	theme := internal.GetTheme()
	margins := internal.UniformPadding(20).Scaled()
	width := c.window.GetWidth()

	title := c.options.Title
	if c.snapshot.Title != "" {
		title = c.snapshot.Title
	}
	titleHeight := internal.RenderMultilineTextWithCache(c.renderer, title, internal.Fonts.LargeFont,
		width-margins.Left-margins.Right, margins.Left, margins.Top, theme.TextColor, constants.TextAlignLeft, c.textCache)
	top := margins.Top + titleHeight + internal.Scale(15)

	footer := c.options.IdleHelpItems
	switch {
	case c.snapshot.Status == ContentFailed:
		c.renderCentered(internal.IconAlert, c.snapshot.Message, theme.ErrorColor, top)
	case c.snapshot.Status == ContentLoading || !c.synced:
		c.renderCentered(internal.IconSpinner, c.options.LoadingText, theme.HintColor, top)
	case len(c.model.visible) == 0 && len(c.model.items) > 0:
		c.renderCentered(internal.IconSpinner, c.options.LoadingText, theme.HintColor, top)
	case len(c.model.visible) == 0:
		c.renderCentered(internal.IconPlaceholder, c.options.EmptyText, theme.HintColor, top)
	default:
		c.renderRows(margins, top)
		footer = c.options.FooterHelpItems
	}

	renderFooter(c.renderer, internal.Fonts.SmallFont, footer, margins.Bottom)
	c.window.Present()
}

func (c *listController) renderCentered(icon internal.Icon, text string, color sdl.Color, top int32) {
	width := c.window.GetWidth()
	centerY := top + (c.window.GetHeight()-top)/3

	size := internal.Scale(thumbSize)
	if tex := c.icons.Get(icon); tex != nil {
		c.renderer.Copy(tex, nil, &sdl.Rect{X: (width - size) / 2, Y: centerY, W: size, H: size})
	}

	internal.RenderMultilineTextWithCache(c.renderer, text, internal.Fonts.MediumFont,
		width*3/4, width/2, centerY+size+internal.Scale(12), color, constants.TextAlignCenter, c.textCache)
}

func (c *listController) renderRows(margins internal.Padding, top int32) {
	theme := internal.GetTheme()
	width := c.window.GetWidth()
	height := internal.Scale(rowHeight)
	thumb := internal.Scale(thumbSize)
	font := internal.Fonts.MediumFont

	end := c.model.start + c.model.pageSize
	if end > len(c.model.visible) {
		end = len(c.model.visible)
	}

	y := top
	for _, idx := range c.model.visible[c.model.start:end] {
		item := c.model.items[idx]
		focused := idx == c.model.focus

		textColor := theme.TextColor
		if item.Status == ContentFailed {
			textColor = theme.DisabledTextColor
		}
		if focused {
			bg := theme.HighlightColor
			if item.Status == ContentFailed {
				bg = internal.Dim(bg, 0.4)
			}
			c.renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
			c.renderer.FillRect(&sdl.Rect{X: margins.Left, Y: y, W: width - margins.Left - margins.Right, H: height})
			if item.Status != ContentFailed {
				textColor = theme.HighlightedTextColor
			}
		}

		x := margins.Left + internal.Scale(8)
		if c.images != nil {
			c.renderThumbnail(item, x, y+(height-thumb)/2, thumb)
			x += thumb + internal.Scale(12)
		}

		textY := y + (height-int32(font.Height()))/2
		internal.RenderMultilineTextWithCache(c.renderer, item.Text, font, width-x-margins.Right, x, textY,
			textColor, constants.TextAlignLeft, c.textCache)

		y += height
	}

	if len(c.model.visible) > c.model.pageSize {
		c.renderScrollbar(top, y, len(c.model.visible))
	}
}

func (c *listController) renderThumbnail(item MenuItem, x, y, size int32) {
	dst := sdl.Rect{X: x, Y: y, W: size, H: size}

	if item.Status == ContentFailed {
		if tex := c.icons.Get(internal.IconAlert); tex != nil {
			c.renderer.Copy(tex, nil, &dst)
		}
		return
	}

	if tex := c.images.Texture(c.renderer, item.ImageURL); tex != nil {
		c.renderer.Copy(tex, nil, &dst)
		return
	}
	if tex := c.icons.Get(internal.IconPlaceholder); tex != nil {
		c.renderer.Copy(tex, nil, &dst)
	}
}

func (c *listController) renderScrollbar(top, bottom int32, total int) {
	theme := internal.GetTheme()
	w := internal.Scale(4)
	x := c.window.GetWidth() - w - internal.Scale(6)
	track := bottom - top

	handle := internal.Max32(internal.Scale(20), track*int32(c.model.pageSize)/int32(total))
	maxStart := total - c.model.pageSize
	offset := int32(0)
	if maxStart > 0 {
		offset = (track - handle) * int32(c.model.start) / int32(maxStart)
	}

	c.renderer.SetDrawColor(theme.HintColor.R, theme.HintColor.G, theme.HintColor.B, 80)
	c.renderer.FillRect(&sdl.Rect{X: x, Y: top, W: w, H: track})
	c.renderer.SetDrawColor(theme.HintColor.R, theme.HintColor.G, theme.HintColor.B, 255)
	c.renderer.FillRect(&sdl.Rect{X: x, Y: top + offset, W: w, H: handle})
}

func (c *listController) cleanup() {
	if c.images != nil {
		c.images.Close()
	}
	c.icons.Destroy()
	c.textCache.Destroy()
}
