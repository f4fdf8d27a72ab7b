package internal

import (
	"fmt"

	"github.com/veandco/go-sdl2/ttf"
)

type fontsManager struct {
	LargeFont  *ttf.Font
	MediumFont *ttf.Font
	SmallFont  *ttf.Font
}

// Fonts holds the three text sizes used across screens. Valid after Init.
var Fonts fontsManager

type FontSizes struct {
	Large  int
	Medium int
	Small  int
}

var DefaultFontSizes = FontSizes{
	Large:  32,
	Medium: 26,
	Small:  20,
}

func initFonts(path string, sizes FontSizes) error {
	scale := GetScaleFactor()

	open := func(size int) (*ttf.Font, error) {
		font, err := ttf.OpenFont(path, int(float32(size)*scale))
		if err != nil {
			return nil, fmt.Errorf("open font %s at %d: %w", path, size, err)
		}
		return font, nil
	}

	var err error
	if Fonts.LargeFont, err = open(sizes.Large); err != nil {
		return err
	}
	if Fonts.MediumFont, err = open(sizes.Medium); err != nil {
		closeFonts()
		return err
	}
	if Fonts.SmallFont, err = open(sizes.Small); err != nil {
		closeFonts()
		return err
	}
	return nil
}

func closeFonts() {
	for _, f := range []*ttf.Font{Fonts.LargeFont, Fonts.MediumFont, Fonts.SmallFont} {
		if f != nil {
			f.Close()
		}
	}
	Fonts = fontsManager{}
}
