package internal

import (
	"strings"

	"github.com/BrandonKowalski/doomdex/pkg/ui/constants"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

func Max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func Min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// WrapText splits text into lines no wider than maxWidth as reported by
// measure. Explicit newlines are kept; a single word wider than maxWidth
// gets a line of its own.
func WrapText(text string, maxWidth int32, measure func(string) int32) []string {
	normalized := strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")

	var lines []string
	for _, paragraph := range strings.Split(normalized, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if measure(candidate) > maxWidth {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}

func fontMeasure(font *ttf.Font) func(string) int32 {
	return func(s string) int32 {
		w, _, err := font.SizeUTF8(s)
		if err != nil {
			return 0
		}
		return int32(w)
	}
}

func lineSpacing(font *ttf.Font) int32 {
	return int32(float32(font.Height()) * 0.25)
}

// MultilineTextHeight is the height RenderMultilineText will use for text.
func MultilineTextHeight(text string, font *ttf.Font, maxWidth int32) int32 {
	if text == "" {
		return 0
	}
	lines := WrapText(text, maxWidth, fontMeasure(font))
	n := int32(len(lines))
	return n*int32(font.Height()) + (n-1)*lineSpacing(font)
}

// RenderMultilineText draws wrapped text with its top edge at y. For
// centered text x is the center line, otherwise the left or right edge.
// It returns the height drawn.
func RenderMultilineText(renderer *sdl.Renderer, text string, font *ttf.Font, maxWidth, x, y int32, color sdl.Color, align constants.TextAlign) int32 {
	return RenderMultilineTextWithCache(renderer, text, font, maxWidth, x, y, color, align, nil)
}

// RenderMultilineTextWithCache is RenderMultilineText keeping line textures
// in cache between frames.
func RenderMultilineTextWithCache(renderer *sdl.Renderer, text string, font *ttf.Font, maxWidth, x, y int32, color sdl.Color, align constants.TextAlign, cache *TextureCache) int32 {
	if text == "" {
		return 0
	}

	lines := WrapText(text, maxWidth, fontMeasure(font))
	lineHeight := int32(font.Height())
	spacing := lineSpacing(font)

	currentY := y
	for i, line := range lines {
		if line != "" {
			drawLine(renderer, line, font, x, currentY, color, align, cache)
		}
		currentY += lineHeight
		if i < len(lines)-1 {
			currentY += spacing
		}
	}
	return currentY - y
}

func drawLine(renderer *sdl.Renderer, line string, font *ttf.Font, x, y int32, color sdl.Color, align constants.TextAlign, cache *TextureCache) {
	var key string
	var texture *sdl.Texture
	if cache != nil {
		key = cacheKey(line, color)
		texture = cache.Get(key)
	}

	if texture == nil {
		surface, err := font.RenderUTF8Blended(line, color)
		if err != nil {
			return
		}
		defer surface.Free()

		texture, err = renderer.CreateTextureFromSurface(surface)
		if err != nil {
			return
		}
		if cache != nil {
			cache.Set(key, texture)
		} else {
			defer texture.Destroy()
		}
	}

	_, _, w, h, err := texture.Query()
	if err != nil {
		return
	}

	dstX := x
	switch align {
	case constants.TextAlignCenter:
		dstX = x - w/2
	case constants.TextAlignRight:
		dstX = x - w
	}
	renderer.Copy(texture, nil, &sdl.Rect{X: dstX, Y: y, W: w, H: h})
}

func cacheKey(line string, c sdl.Color) string {
	return string([]byte{c.R, c.G, c.B, c.A}) + line
}

// RenderText renders a single line into a new texture owned by the caller.
// It returns nil for empty text or on failure.
func RenderText(renderer *sdl.Renderer, text string, font *ttf.Font, color sdl.Color) *sdl.Texture {
	if text == "" {
		return nil
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		return nil
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil
	}

	return texture
}

// TextWidth measures a single line.
func TextWidth(font *ttf.Font, text string) int32 {
	return fontMeasure(font)(text)
}

// IsRectVisible reports whether rect overlaps the band [0, viewportHeight].
func IsRectVisible(rect sdl.Rect, viewportHeight int32) bool {
	return rect.Y+rect.H >= 0 && rect.Y <= viewportHeight
}
