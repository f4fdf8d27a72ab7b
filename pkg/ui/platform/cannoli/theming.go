// Package cannoli provides the theme for the Cannoli custom firmware.
package cannoli

import (
	"github.com/BrandonKowalski/doomdex/pkg/ui/internal"
)

// DefaultFontPath is where Cannoli installs its system font.
const DefaultFontPath = "/mnt/SDCARD/System/fonts/Cannoli.ttf"

// InitCannoliTheme creates a theme with Cannoli's colors and the given
// font. An empty fontPath selects DefaultFontPath.
func InitCannoliTheme(fontPath string) internal.Theme {
	if fontPath == "" {
		fontPath = DefaultFontPath
	}
	return internal.Theme{
		HighlightColor:       internal.HexToColor(0xFFFFFF),
		AccentColor:          internal.HexToColor(0x008080),
		ButtonLabelColor:     internal.HexToColor(0x000000),
		HintColor:            internal.HexToColor(0xA0A0A0),
		TextColor:            internal.HexToColor(0xFFFFFF),
		HighlightedTextColor: internal.HexToColor(0x000000),
		DisabledTextColor:    internal.HexToColor(0x5A5A5A),
		ErrorColor:           internal.HexToColor(0xFF6B6B),
		BackgroundColor:      internal.HexToColor(0x000000),
		FontPath:             fontPath,
	}
}
