// Package ui is the screen toolkit doomdex draws with: SDL initialization,
// input, theming, and blocking screen functions for lists, detail pages and
// selection prompts that render live data sources.
package ui

import (
	"log/slog"
	"time"

	"github.com/BrandonKowalski/doomdex/pkg/ui/internal"
	"github.com/BrandonKowalski/doomdex/pkg/ui/platform/cannoli"
)

// Options configures Init.
type Options struct {
	WindowTitle     string                 // Window title displayed in windowed mode
	ShowBackground  bool                   // Whether to render the theme background image
	WindowOptions   internal.WindowOptions // SDL window flags; zero picks a platform default
	AccentColorHex  uint32                 // Custom accent color, 0 keeps the theme's
	IsCannoli       bool                   // Use the Cannoli CFW theme
	FontPath        string                 // TTF font used for all text
	LogPath         string                 // Full path for the log file; empty logs to stdout only
	FlipFaceButtons bool                   // Direct face button mapping (A=A, B=B)
	PowerDevice     string                 // evdev device carrying the power key; empty disables
}

// Power button behavior on handhelds.
const (
	powerKeyCode    = 116 // KEY_POWER
	suspendScript   = "/mnt/SDCARD/.system/bin/suspend"
	shutdownCommand = "/sbin/poweroff"
)

// Init initializes SDL, the window, fonts, theming and input handling.
// Must be called before any screen function.
func Init(options Options) error {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}
	internal.SetInternalLogLevel(slog.LevelWarn)
	internal.SetFlipFaceButtons(options.FlipFaceButtons)

	theme := internal.DefaultTheme(options.FontPath)
	if options.IsCannoli {
		theme = cannoli.InitCannoliTheme(options.FontPath)
	}
	if options.AccentColorHex != 0 {
		theme.AccentColor = internal.HexToColor(options.AccentColorHex)
		theme.HighlightColor = internal.HexToColor(options.AccentColorHex)
	}
	internal.SetTheme(theme)

	pbc := internal.PowerButtonConfig{}
	if options.PowerDevice != "" {
		pbc = internal.PowerButtonConfig{
			ButtonCode:      powerKeyCode,
			DevicePath:      options.PowerDevice,
			ShortPressMax:   2 * time.Second,
			CoolDownTime:    time.Second,
			SuspendScript:   suspendScript,
			ShutdownCommand: shutdownCommand,
		}
	}

	if err := internal.Init(options.WindowTitle, options.ShowBackground, options.WindowOptions, pbc); err != nil {
		return NewInfrastructureError("init", err)
	}
	return nil
}

// Close releases all SDL resources. Call before exit.
func Close() {
	internal.SDLCleanup()
}

// ParseWindowMode maps "windowed", "borderless" or "fullscreen" to window
// options. Empty means the platform default.
func ParseWindowMode(mode string) (internal.WindowOptions, error) {
	return internal.ParseWindowMode(mode)
}

// SetLogPath sets the full path for the log file, including filename.
// Call before the first logger is requested.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetInternalLogLevel sets the level of the screen layer's own logger.
func SetInternalLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}
