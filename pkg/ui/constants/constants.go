// Package constants defines shared constants, types, and configuration values
// used by the doomdex screens.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by the windowing layer.
const (
	EnvironmentEnvVar    = "ENVIRONMENT"
	WindowWidthEnvVar    = "WINDOW_WIDTH"
	WindowHeightEnvVar   = "WINDOW_HEIGHT"
	BackgroundPathEnvVar = "BACKGROUND_PATH"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
// Dev mode opens a decorated desktop window and skips the power button.
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// VirtualButton represents an abstract input button, mapped from physical hardware.
type VirtualButton int

const (
	VirtualButtonUnassigned VirtualButton = iota
	VirtualButtonUp
	VirtualButtonDown
	VirtualButtonLeft
	VirtualButtonRight
	VirtualButtonA
	VirtualButtonB
	VirtualButtonX
	VirtualButtonY
	VirtualButtonL1
	VirtualButtonR1
	VirtualButtonStart
	VirtualButtonSelect
	VirtualButtonMenu
)

var buttonNames = map[VirtualButton]string{
	VirtualButtonUnassigned: "Unassigned",
	VirtualButtonUp:         "Up",
	VirtualButtonDown:       "Down",
	VirtualButtonLeft:       "Left",
	VirtualButtonRight:      "Right",
	VirtualButtonA:          "A",
	VirtualButtonB:          "B",
	VirtualButtonX:          "X",
	VirtualButtonY:          "Y",
	VirtualButtonL1:         "L1",
	VirtualButtonR1:         "R1",
	VirtualButtonStart:      "Start",
	VirtualButtonSelect:     "Select",
	VirtualButtonMenu:       "Menu",
}

func (vb VirtualButton) GetName() string {
	if name, ok := buttonNames[vb]; ok {
		return name
	}
	return "Unknown"
}

// IsDirectional reports whether the button is one of the four d-pad directions.
func (vb VirtualButton) IsDirectional() bool {
	return vb >= VirtualButtonUp && vb <= VirtualButtonRight
}

// TextAlign specifies horizontal text alignment.
type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// Default timing and spacing constants.
const (
	DefaultInputDelay         = 20 * time.Millisecond // Debounce delay between input events
	DefaultTitleSpacing int32 = 5                     // Vertical spacing below title text
	FrameDelay                = 16                    // Milliseconds to wait for events per frame
)
