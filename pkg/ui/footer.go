package ui

import (
	"github.com/BrandonKowalski/doomdex/pkg/ui/internal"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// FooterHelpItem is a button hint shown at the bottom of a screen.
type FooterHelpItem struct {
	ButtonName string
	HelpText   string
}

// renderFooter draws the help items as pills along the bottom edge,
// left to right starting at margin.
func renderFooter(renderer *sdl.Renderer, font *ttf.Font, items []FooterHelpItem, margin int32) {
	if len(items) == 0 || font == nil {
		return
	}

	theme := internal.GetTheme()
	window := internal.GetWindow()

	pillPad := internal.Scale(6)
	gap := internal.Scale(16)
	height := int32(font.Height()) + pillPad
	y := window.GetHeight() - margin - height
	x := margin

	for _, item := range items {
		label := internal.RenderText(renderer, item.ButtonName, font, theme.ButtonLabelColor)
		help := internal.RenderText(renderer, item.HelpText, font, theme.HintColor)

		if label != nil {
			_, _, w, h, _ := label.Query()
			pill := sdl.Rect{X: x, Y: y, W: w + 2*pillPad, H: height}
			renderer.SetDrawColor(theme.AccentColor.R, theme.AccentColor.G, theme.AccentColor.B, theme.AccentColor.A)
			renderer.FillRect(&pill)
			renderer.Copy(label, nil, &sdl.Rect{X: x + pillPad, Y: y + (height-h)/2, W: w, H: h})
			x += pill.W + pillPad
			label.Destroy()
		}

		if help != nil {
			_, _, w, h, _ := help.Query()
			renderer.Copy(help, nil, &sdl.Rect{X: x, Y: y + (height-h)/2, W: w, H: h})
			x += w + gap
			help.Destroy()
		}
	}
}

// footerHeight is the vertical space renderFooter occupies, margin included.
func footerHeight(font *ttf.Font, margin int32) int32 {
	if font == nil {
		return margin
	}
	return int32(font.Height()) + internal.Scale(6) + 2*margin
}
