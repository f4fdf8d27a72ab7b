package ui

import (
	"time"

	"github.com/BrandonKowalski/doomdex/pkg/ui/constants"
	"github.com/BrandonKowalski/doomdex/pkg/ui/internal"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// SelectionMessageSettings configures the selection message component.
type SelectionMessageSettings struct {
	// ConfirmButton is the button used to confirm the selection (default: VirtualButtonA)
	ConfirmButton constants.VirtualButton
	// BackButton is the button used to go back/cancel (default: VirtualButtonB)
	BackButton constants.VirtualButton
	// InitialSelection is the index of the initially selected option (default: 0)
	InitialSelection int
	// Title is drawn above the message in the large font.
	Title string
}

// SelectionMessageResult represents the result of a selection message.
type SelectionMessageResult struct {
	SelectedIndex int
	SelectedValue any
}

// SelectionOption represents a selectable option in the selection message.
type SelectionOption struct {
	DisplayName string
	Value       any
}

type selectionMessageController struct {
	title           string
	message         string
	options         []SelectionOption
	selectedIndex   int
	confirmButton   constants.VirtualButton
	backButton      constants.VirtualButton
	footerHelpItems []FooterHelpItem
	lastInputTime   time.Time
	confirmed       bool
	cancelled       bool
	quit            bool
	textCache       *internal.TextureCache
}

// SelectionMessage displays a message with horizontally selectable options.
// The user moves with left/right (or up/down) and confirms with the
// confirm button. Returns ErrCancelled on back and ErrQuit when the window
// is closed.
func SelectionMessage(message string, options []SelectionOption, footerHelpItems []FooterHelpItem, settings SelectionMessageSettings) (*SelectionMessageResult, error) {
	if len(options) == 0 {
		return nil, ErrCancelled
	}

	window := internal.GetWindow()

	c := &selectionMessageController{
		title:           settings.Title,
		message:         message,
		options:         options,
		selectedIndex:   settings.InitialSelection,
		confirmButton:   settings.ConfirmButton,
		backButton:      settings.BackButton,
		footerHelpItems: footerHelpItems,
		lastInputTime:   time.Now(),
		textCache:       internal.NewTextureCache(),
	}
	defer c.textCache.Destroy()

	if c.confirmButton == constants.VirtualButtonUnassigned {
		c.confirmButton = constants.VirtualButtonA
	}
	if c.backButton == constants.VirtualButtonUnassigned {
		c.backButton = constants.VirtualButtonB
	}
	if c.selectedIndex < 0 || c.selectedIndex >= len(options) {
		c.selectedIndex = 0
	}

	for c.handleEvents() {
		c.render(window)
	}

	switch {
	case c.quit:
		return nil, ErrQuit
	case c.cancelled:
		return nil, ErrCancelled
	}

	return &SelectionMessageResult{
		SelectedIndex: c.selectedIndex,
		SelectedValue: c.options[c.selectedIndex].Value,
	}, nil
}

func (c *selectionMessageController) handleEvents() bool {
	processor := internal.GetInputProcessor()

	for event := sdl.WaitEventTimeout(constants.FrameDelay); event != nil; event = sdl.PollEvent() {
		switch event.(type) {
		case *sdl.QuitEvent:
			c.quit = true
			return false

		case *sdl.KeyboardEvent, *sdl.ControllerButtonEvent, *sdl.ControllerAxisEvent, *sdl.ControllerDeviceEvent:
			inputEvent := processor.ProcessSDLEvent(event)
			if inputEvent == nil || !inputEvent.Pressed {
				continue
			}

			if time.Since(c.lastInputTime) < constants.DefaultInputDelay {
				continue
			}
			c.lastInputTime = time.Now()

			switch inputEvent.Button {
			case constants.VirtualButtonLeft, constants.VirtualButtonUp:
				c.step(-1)
			case constants.VirtualButtonRight, constants.VirtualButtonDown:
				c.step(1)
			case c.confirmButton, constants.VirtualButtonStart:
				c.confirmed = true
				return false
			case c.backButton:
				c.cancelled = true
				return false
			}
		}
	}
	return true
}

func (c *selectionMessageController) step(delta int) {
	n := len(c.options)
	c.selectedIndex = ((c.selectedIndex+delta)%n + n) % n
}

func (c *selectionMessageController) render(window *internal.Window) {
	window.Clear()

	theme := internal.GetTheme()
	renderer := window.Renderer
	windowWidth := window.GetWidth()
	windowHeight := window.GetHeight()

	titleFont := internal.Fonts.LargeFont
	messageFont := internal.Fonts.SmallFont
	optionFont := internal.Fonts.MediumFont

	maxMessageWidth := internal.Min32(windowWidth*3/4, internal.Scale(800))
	spacing := internal.Scale(30)

	titleHeight := internal.MultilineTextHeight(c.title, titleFont, maxMessageWidth)
	messageHeight := internal.MultilineTextHeight(c.message, messageFont, maxMessageWidth)
	totalHeight := titleHeight + spacing + messageHeight + spacing + int32(optionFont.Height())

	centerX := windowWidth / 2
	y := (windowHeight - totalHeight) / 2

	if titleHeight > 0 {
		internal.RenderMultilineTextWithCache(renderer, c.title, titleFont, maxMessageWidth, centerX, y,
			theme.TextColor, constants.TextAlignCenter, c.textCache)
		y += titleHeight + spacing
	}

	internal.RenderMultilineTextWithCache(renderer, c.message, messageFont, maxMessageWidth, centerX, y,
		theme.HintColor, constants.TextAlignCenter, c.textCache)
	y += messageHeight + spacing

	c.renderOptions(renderer, centerX, y, optionFont)

	renderFooter(renderer, internal.Fonts.SmallFont, c.footerHelpItems, internal.Scale(20))

	window.Present()
}

// renderOptions draws "<  One  |  Two  >" with the selection highlighted.
func (c *selectionMessageController) renderOptions(renderer *sdl.Renderer, centerX, y int32, font *ttf.Font) {
	theme := internal.GetTheme()

	const (
		leftArrow  = "<  "
		rightArrow = "  >"
		separator  = "  |  "
	)

	widths := make([]int32, len(c.options))
	total := internal.TextWidth(font, leftArrow) + internal.TextWidth(font, rightArrow)
	sepWidth := internal.TextWidth(font, separator)
	for i, opt := range c.options {
		widths[i] = internal.TextWidth(font, opt.DisplayName)
		total += widths[i]
		if i < len(c.options)-1 {
			total += sepWidth
		}
	}

	x := centerX - total/2
	draw := func(text string, color sdl.Color) {
		internal.RenderMultilineTextWithCache(renderer, text, font, internal.TextWidth(font, text)+1, x, y,
			color, constants.TextAlignLeft, c.textCache)
		x += internal.TextWidth(font, text)
	}

	draw(leftArrow, theme.HintColor)
	for i, opt := range c.options {
		color := theme.DisabledTextColor
		if i == c.selectedIndex {
			color = theme.HighlightColor
		}
		draw(opt.DisplayName, color)
		if i < len(c.options)-1 {
			draw(separator, theme.DisabledTextColor)
		}
	}
	draw(rightArrow, theme.HintColor)
}
