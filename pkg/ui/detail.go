package ui

import (
	"context"
	"time"

	"github.com/BrandonKowalski/doomdex/pkg/ui/constants"
	"github.com/BrandonKowalski/doomdex/pkg/ui/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// MetadataItem is one labeled row of a detail screen.
type MetadataItem struct {
	Label string
	Value string
}

// DetailSnapshot is what a DetailScreen draws on a frame.
type DetailSnapshot struct {
	Status   ContentStatus
	Message  string // Shown when Status is ContentFailed
	Title    string
	ImageURL string
	Rows     []MetadataItem
	Version  uint64
}

// DetailSource supplies snapshots while the screen is shown. Snapshot must
// not block.
type DetailSource interface {
	Snapshot() DetailSnapshot
}

// DetailSourceFunc adapts a function to DetailSource.
type DetailSourceFunc func() DetailSnapshot

func (f DetailSourceFunc) Snapshot() DetailSnapshot { return f() }

type DetailScreenOptions struct {
	Source          DetailSource
	LoadingText     string
	FooterHelpItems []FooterHelpItem
	FetchImage      ImageFetchFunc
	MaxImageHeight  int32 // Defaults to a third of the window height
	Context         context.Context
}

// DetailScreenResult represents how the DetailScreen was left.
type DetailScreenResult struct {
	Action DetailAction
}

type detailScreenState struct {
	window        *internal.Window
	renderer      *sdl.Renderer
	options       DetailScreenOptions
	snapshot      DetailSnapshot
	images        *internal.ImageLoader
	icons         *internal.IconSet
	textCache     *internal.TextureCache
	directions    internal.DirectionalInput
	scrollY       int32
	targetScrollY int32
	maxScrollY    int32
	scrollSpeed   int32
	lastInputTime time.Time
	result        DetailScreenResult
}

// DetailScreen shows a framed image and labeled rows for one entity and
// blocks until the user leaves. Back returns ErrCancelled, closing the
// window returns ErrQuit, and Menu returns DetailActionMenu.
func DetailScreen(options DetailScreenOptions) (*DetailScreenResult, error) {
	if options.Context == nil {
		options.Context = context.Background()
	}

	s := initializeDetailScreenState(options)
	defer s.cleanup()

	for s.result.Action == DetailActionNone {
		if err := options.Context.Err(); err != nil {
			return nil, err
		}
		s.handleEvents()
		s.update()
		s.render()
	}

	switch s.result.Action {
	case DetailActionBack:
		return nil, ErrCancelled
	case DetailActionQuit:
		return nil, ErrQuit
	}
	return &s.result, nil
}

func initializeDetailScreenState(options DetailScreenOptions) *detailScreenState {
	window := internal.GetWindow()
	if options.MaxImageHeight == 0 {
		options.MaxImageHeight = window.GetHeight() / 3
	}

	s := &detailScreenState{
		window:        window,
		renderer:      window.Renderer,
		options:       options,
		icons:         internal.NewIconSet(window.Renderer, internal.Scale(48)),
		textCache:     internal.NewTextureCacheWithSize(48),
		directions:    internal.NewDirectionalInputWithTiming(150*time.Millisecond, 50*time.Millisecond),
		scrollSpeed:   internal.Scale(40),
		lastInputTime: time.Now(),
	}
	if options.FetchImage != nil {
		s.images = internal.NewImageLoader(options.Context, internal.FetchFunc(options.FetchImage), 2)
	}
	return s
}

func (s *detailScreenState) handleEvents() {
	processor := internal.GetInputProcessor()

	for event := sdl.WaitEventTimeout(constants.FrameDelay); event != nil; event = sdl.PollEvent() {
		switch event.(type) {
		case *sdl.QuitEvent:
			s.result.Action = DetailActionQuit
			return
		case *sdl.KeyboardEvent, *sdl.ControllerButtonEvent, *sdl.ControllerAxisEvent, *sdl.ControllerDeviceEvent:
			inputEvent := processor.ProcessSDLEvent(event)
			if inputEvent == nil {
				continue
			}
			if !inputEvent.Pressed {
				s.directions.SetHeld(inputEvent.Button, false)
				continue
			}
			s.handleInputEvent(inputEvent.Button)
			if s.result.Action != DetailActionNone {
				return
			}
		}
	}
}

func (s *detailScreenState) handleInputEvent(button constants.VirtualButton) {
	if time.Since(s.lastInputTime) < constants.DefaultInputDelay {
		return
	}
	s.lastInputTime = time.Now()

	switch button {
	case constants.VirtualButtonUp:
		s.directions.SetHeld(button, true)
		s.scroll(-s.scrollSpeed)
	case constants.VirtualButtonDown:
		s.directions.SetHeld(button, true)
		s.scroll(s.scrollSpeed)
	case constants.VirtualButtonB:
		s.result.Action = DetailActionBack
	case constants.VirtualButtonMenu:
		s.result.Action = DetailActionMenu
	}
}

func (s *detailScreenState) scroll(delta int32) {
	s.targetScrollY = internal.Max32(0, internal.Min32(s.maxScrollY, s.targetScrollY+delta))
}

func (s *detailScreenState) update() {
	switch s.directions.Update() {
	case internal.DirectionUp:
		s.scroll(-s.scrollSpeed)
	case internal.DirectionDown:
		s.scroll(s.scrollSpeed)
	}
	s.scrollY += int32(float32(s.targetScrollY-s.scrollY) * 0.2)

	if s.options.Source == nil {
		return
	}
	snap := s.options.Source.Snapshot()
	if snap.Version != s.snapshot.Version || snap.Status != s.snapshot.Status {
		s.snapshot = snap
		s.scrollY, s.targetScrollY = 0, 0
	}
}

func (s *detailScreenState) render() {
	s.window.Clear()

	margins := internal.UniformPadding(20).Scaled()
	safeAreaHeight := s.window.GetHeight() - footerHeight(internal.Fonts.SmallFont, margins.Bottom)

	switch s.snapshot.Status {
	case ContentLoading:
		s.renderCentered(internal.IconSpinner, s.options.LoadingText, internal.GetTheme().HintColor)
	case ContentFailed:
		s.renderCentered(internal.IconAlert, s.snapshot.Message, internal.GetTheme().ErrorColor)
	default:
		contentHeight := s.renderContent(margins, safeAreaHeight)
		s.maxScrollY = internal.Max32(0, contentHeight-safeAreaHeight)
		s.renderScrollbar(safeAreaHeight)
	}

	// Mask content scrolled under the footer.
	bg := internal.GetTheme().BackgroundColor
	s.renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	s.renderer.FillRect(&sdl.Rect{X: 0, Y: safeAreaHeight, W: s.window.GetWidth(), H: s.window.GetHeight() - safeAreaHeight})

	renderFooter(s.renderer, internal.Fonts.SmallFont, s.options.FooterHelpItems, margins.Bottom)
	s.window.Present()
}

func (s *detailScreenState) renderCentered(icon internal.Icon, text string, color sdl.Color) {
	width := s.window.GetWidth()
	size := internal.Scale(48)
	y := s.window.GetHeight()/3 - size/2

	if tex := s.icons.Get(icon); tex != nil {
		s.renderer.Copy(tex, nil, &sdl.Rect{X: (width - size) / 2, Y: y, W: size, H: size})
	}
	internal.RenderMultilineTextWithCache(s.renderer, text, internal.Fonts.MediumFont,
		width*3/4, width/2, y+size+internal.Scale(12), color, constants.TextAlignCenter, s.textCache)
}

// renderContent draws title, framed image and rows offset by the scroll
// position and returns the unscrolled content height.
func (s *detailScreenState) renderContent(margins internal.Padding, safeAreaHeight int32) int32 {
	theme := internal.GetTheme()
	width := s.window.GetWidth()
	contentWidth := width - margins.Left - margins.Right - internal.Scale(12)

	y := margins.Top - s.scrollY
	y += internal.RenderMultilineTextWithCache(s.renderer, s.snapshot.Title, internal.Fonts.LargeFont,
		contentWidth, width/2, y, theme.TextColor, constants.TextAlignCenter, s.textCache)
	y += internal.Scale(15)

	y = s.renderFramedImage(y, safeAreaHeight)
	y += internal.Scale(15)

	s.renderer.SetDrawColor(theme.HintColor.R, theme.HintColor.G, theme.HintColor.B, 120)
	s.renderer.DrawLine(margins.Left, y, margins.Left+contentWidth, y)
	y += internal.Scale(12)

	for _, row := range s.snapshot.Rows {
		y = s.renderMetadataItem(row, margins, contentWidth, y, safeAreaHeight)
	}

	return y + s.scrollY + margins.Bottom
}

func (s *detailScreenState) renderFramedImage(y, safeAreaHeight int32) int32 {
	theme := internal.GetTheme()
	border := internal.Scale(3)
	maxH := s.options.MaxImageHeight
	maxW := s.window.GetWidth() / 2

	var tex *sdl.Texture
	if s.images != nil {
		tex = s.images.Texture(s.renderer, s.snapshot.ImageURL)
	}

	w, h := maxH, maxH
	if tex != nil {
		if _, _, tw, th, err := tex.Query(); err == nil {
			w, h = fitWithin(tw, th, maxW, maxH)
		}
	}

	frame := sdl.Rect{X: (s.window.GetWidth()-w)/2 - border, Y: y, W: w + 2*border, H: h + 2*border}
	if internal.IsRectVisible(frame, safeAreaHeight) {
		s.renderer.SetDrawColor(theme.AccentColor.R, theme.AccentColor.G, theme.AccentColor.B, theme.AccentColor.A)
		s.renderer.FillRect(&frame)
		inner := sdl.Rect{X: frame.X + border, Y: frame.Y + border, W: w, H: h}
		s.renderer.SetDrawColor(theme.BackgroundColor.R, theme.BackgroundColor.G, theme.BackgroundColor.B, 255)
		s.renderer.FillRect(&inner)

		switch {
		case tex != nil:
			s.renderer.Copy(tex, nil, &inner)
		default:
			icon := internal.IconPlaceholder
			if s.images != nil && s.images.Request(s.snapshot.ImageURL) == internal.ImagePending {
				icon = internal.IconSpinner
			}
			if placeholder := s.icons.Get(icon); placeholder != nil {
				size := internal.Min32(internal.Scale(48), h)
				s.renderer.Copy(placeholder, nil, &sdl.Rect{X: inner.X + (w-size)/2, Y: inner.Y + (h-size)/2, W: size, H: size})
			}
		}
	}

	return y + frame.H
}

// fitWithin scales w x h down to fit maxW x maxH keeping the aspect ratio.
func fitWithin(w, h, maxW, maxH int32) (int32, int32) {
	if w <= 0 || h <= 0 {
		return maxH, maxH
	}
	if w > maxW {
		h = h * maxW / w
		w = maxW
	}
	if h > maxH {
		w = w * maxH / h
		h = maxH
	}
	return w, h
}

func (s *detailScreenState) renderMetadataItem(item MetadataItem, margins internal.Padding, contentWidth, y, safeAreaHeight int32) int32 {
	theme := internal.GetTheme()
	font := internal.Fonts.SmallFont
	gap := internal.Scale(10)

	labelWidth := internal.TextWidth(font, item.Label)
	valueX := margins.Left + labelWidth + gap
	valueWidth := contentWidth - labelWidth - gap
	valueHeight := internal.MultilineTextHeight(item.Value, font, valueWidth)
	rowHeight := internal.Max32(int32(font.Height()), valueHeight)

	if internal.IsRectVisible(sdl.Rect{X: margins.Left, Y: y, W: contentWidth, H: rowHeight}, safeAreaHeight) {
		internal.RenderMultilineTextWithCache(s.renderer, item.Label, font, labelWidth+1, margins.Left, y,
			theme.HintColor, constants.TextAlignLeft, s.textCache)
		internal.RenderMultilineTextWithCache(s.renderer, item.Value, font, valueWidth, valueX, y,
			theme.TextColor, constants.TextAlignLeft, s.textCache)
	}

	return y + rowHeight + gap
}

func (s *detailScreenState) renderScrollbar(safeAreaHeight int32) {
	if s.maxScrollY <= 0 {
		return
	}

	theme := internal.GetTheme()
	w := internal.Scale(4)
	x := s.window.GetWidth() - w - internal.Scale(6)
	track := safeAreaHeight - internal.Scale(10)

	handle := internal.Max32(internal.Scale(20), track*safeAreaHeight/(s.maxScrollY+safeAreaHeight))
	offset := (track - handle) * internal.Min32(s.scrollY, s.maxScrollY) / s.maxScrollY

	s.renderer.SetDrawColor(theme.HintColor.R, theme.HintColor.G, theme.HintColor.B, 80)
	s.renderer.FillRect(&sdl.Rect{X: x, Y: internal.Scale(5), W: w, H: track})
	s.renderer.SetDrawColor(theme.HintColor.R, theme.HintColor.G, theme.HintColor.B, 255)
	s.renderer.FillRect(&sdl.Rect{X: x, Y: internal.Scale(5) + internal.Max32(0, offset), W: w, H: handle})
}

func (s *detailScreenState) cleanup() {
	if s.images != nil {
		s.images.Close()
	}
	s.icons.Destroy()
	s.textCache.Destroy()
}
