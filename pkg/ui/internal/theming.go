package internal

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Theme defines the visual appearance of the screens.
type Theme struct {
	HighlightColor       sdl.Color // Selected row background, footer button background
	AccentColor          sdl.Color // Pill backgrounds, image frames
	ButtonLabelColor     sdl.Color // Button label text (inside pills)
	TextColor            sdl.Color // Default text color
	HighlightedTextColor sdl.Color // Text on highlighted rows
	HintColor            sdl.Color // Help text
	DisabledTextColor    sdl.Color // Rows that failed to load
	ErrorColor           sdl.Color // Failure messages
	BackgroundColor      sdl.Color // Screen background color
	FontPath             string    // Path to the primary UI font
	BackgroundImagePath  string    // Path to the background image
}

var currentTheme = DefaultTheme("")

// DefaultTheme is the dark red theme used when no platform theme applies.
func DefaultTheme(fontPath string) Theme {
	return Theme{
		HighlightColor:       HexToColor(0xB22222),
		AccentColor:          HexToColor(0x8B0000),
		ButtonLabelColor:     HexToColor(0xFFFFFF),
		TextColor:            HexToColor(0xE8E8E8),
		HighlightedTextColor: HexToColor(0xFFFFFF),
		HintColor:            HexToColor(0xB4B4B4),
		DisabledTextColor:    HexToColor(0x646464),
		ErrorColor:           HexToColor(0xFF5F5F),
		BackgroundColor:      HexToColor(0x101010),
		FontPath:             fontPath,
	}
}

// SetTheme sets the active theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the currently active theme.
func GetTheme() Theme {
	return currentTheme
}

// HexToColor converts 0xRRGGBB to an opaque color.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}

// Dim returns c with its channels scaled towards black by factor (0..1).
func Dim(c sdl.Color, factor float32) sdl.Color {
	return sdl.Color{
		R: uint8(float32(c.R) * factor),
		G: uint8(float32(c.G) * factor),
		B: uint8(float32(c.B) * factor),
		A: c.A,
	}
}
