package internal

import (
	"fmt"
	"image"
	"strings"
	"unsafe"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/veandco/go-sdl2/sdl"
)

// Icon names a built-in vector icon.
type Icon string

const (
	IconPlaceholder Icon = "placeholder"
	IconAlert       Icon = "alert"
	IconSpinner     Icon = "spinner"
)

var iconSources = map[Icon]string{
	IconPlaceholder: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<rect x="2" y="4" width="20" height="16" rx="2" fill="none" stroke="#8c8c8c" stroke-width="1.5"/>
<circle cx="8" cy="9" r="2" fill="#8c8c8c"/>
<path d="M3 18l6-6 4 4 3-3 5 5z" fill="#8c8c8c"/>
</svg>`,
	IconAlert: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path d="M12 2L1 21h22z" fill="#ff5f5f"/>
<rect x="11" y="9" width="2" height="6" fill="#101010"/>
<rect x="11" y="17" width="2" height="2" fill="#101010"/>
</svg>`,
	IconSpinner: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<circle cx="12" cy="12" r="9" fill="none" stroke="#5a5a5a" stroke-width="3"/>
<path d="M12 3a9 9 0 0 1 9 9" fill="none" stroke="#e8e8e8" stroke-width="3"/>
</svg>`,
}

// RasterizeIcon renders a built-in icon into a size x size RGBA image.
func RasterizeIcon(icon Icon, size int) (*image.RGBA, error) {
	src, ok := iconSources[icon]
	if !ok {
		return nil, fmt.Errorf("unknown icon %q", icon)
	}
	return RasterizeSVG(src, size, size)
}

// RasterizeSVG renders an SVG document scaled to w x h.
func RasterizeSVG(src string, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid icon size %dx%d", w, h)
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(src), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	return rgba, nil
}

// IconTexture rasterizes icon and uploads it as a texture.
func IconTexture(renderer *sdl.Renderer, icon Icon, size int32) (*sdl.Texture, error) {
	rgba, err := RasterizeIcon(icon, int(size))
	if err != nil {
		return nil, err
	}
	return textureFromRGBA(renderer, rgba)
}

func textureFromRGBA(renderer *sdl.Renderer, rgba *image.RGBA) (*sdl.Texture, error) {
	b := rgba.Bounds()
	// image.RGBA stores bytes R,G,B,A which is ABGR8888 on little endian.
	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&rgba.Pix[0]),
		int32(b.Dx()), int32(b.Dy()), 32, int32(rgba.Stride),
		uint32(sdl.PIXELFORMAT_ABGR8888),
	)
	if err != nil {
		return nil, err
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, err
	}
	texture.SetBlendMode(sdl.BLENDMODE_BLEND)
	return texture, nil
}

// IconSet lazily rasterizes icons at one size and owns their textures.
type IconSet struct {
	renderer *sdl.Renderer
	size     int32
	textures map[Icon]*sdl.Texture
}

func NewIconSet(renderer *sdl.Renderer, size int32) *IconSet {
	return &IconSet{renderer: renderer, size: size, textures: make(map[Icon]*sdl.Texture)}
}

// Get returns the texture for icon, or nil if it could not be built.
func (s *IconSet) Get(icon Icon) *sdl.Texture {
	if t, ok := s.textures[icon]; ok {
		return t
	}
	t, err := IconTexture(s.renderer, icon, s.size)
	if err != nil {
		GetInternalLogger().Error("failed to rasterize icon", "icon", string(icon), "error", err)
	}
	s.textures[icon] = t
	return t
}

func (s *IconSet) Destroy() {
	for _, t := range s.textures {
		if t != nil {
			t.Destroy()
		}
	}
	clear(s.textures)
}
