package internal

import (
	"fmt"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
)

type WindowOptions struct {
	Borderless        bool // SDL_WINDOW_BORDERLESS
	Resizable         bool // SDL_WINDOW_RESIZABLE
	FullscreenDesktop bool // SDL_WINDOW_FULLSCREEN_DESKTOP
	Hidden            bool // omits SDL_WINDOW_SHOWN
}

// ParseWindowMode maps a configured mode name to window options. An empty
// mode yields zero options so Init picks the platform default.
func ParseWindowMode(mode string) (WindowOptions, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "":
		return WindowOptions{}, nil
	case "windowed":
		return WindowOptions{Resizable: true}, nil
	case "borderless":
		return WindowOptions{Borderless: true}, nil
	case "fullscreen":
		return WindowOptions{FullscreenDesktop: true}, nil
	default:
		return WindowOptions{}, fmt.Errorf("unknown window mode %q (want windowed, borderless or fullscreen)", mode)
	}
}

func (wo WindowOptions) IsZero() bool {
	return wo == WindowOptions{}
}

func (wo WindowOptions) ToSDLFlags() uint32 {
	var flags uint32

	if !wo.Hidden {
		flags |= sdl.WINDOW_SHOWN
	}
	if wo.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if wo.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if wo.FullscreenDesktop {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	return flags
}
