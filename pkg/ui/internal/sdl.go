package internal

import (
	"fmt"

	"github.com/BrandonKowalski/doomdex/pkg/ui/constants"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

var (
	window      *Window
	powerButton *PowerButton
)

// Init brings up SDL, the window, fonts, input and, outside dev mode, the
// power button watcher. A power button that cannot be opened is logged and
// ignored.
func Init(title string, showBackground bool, winOpts WindowOptions, pbc PowerButtonConfig) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}

	if flags := img.Init(img.INIT_PNG | img.INIT_JPG | img.INIT_WEBP); flags&img.INIT_PNG == 0 {
		GetInternalLogger().Warn("png support unavailable", "error", sdl.GetError())
	}

	if err := ttf.Init(); err != nil {
		return fmt.Errorf("ttf init: %w", err)
	}

	InitInputProcessor()

	if winOpts.IsZero() {
		if constants.IsDevMode() {
			winOpts = WindowOptions{Resizable: true}
		} else {
			winOpts = WindowOptions{Borderless: true}
		}
	}

	var err error
	if window, err = initWindow(title, showBackground, winOpts); err != nil {
		return err
	}

	if err := initFonts(GetTheme().FontPath, DefaultFontSizes); err != nil {
		return err
	}

	if !constants.IsDevMode() && pbc.DevicePath != "" {
		pb, err := StartPowerButton(pbc)
		if err != nil {
			GetInternalLogger().Warn("power button unavailable", "device", pbc.DevicePath, "error", err)
		} else {
			powerButton = pb
		}
	}

	return nil
}

func SDLCleanup() {
	if powerButton != nil {
		powerButton.Stop()
		powerButton = nil
	}
	if window != nil {
		window.closeWindow()
		window = nil
	}
	CloseAllControllers()
	closeFonts()
	ttf.Quit()
	img.Quit()
	sdl.Quit()
	CloseLogger()
}
