package internal

import (
	"container/list"

	"github.com/veandco/go-sdl2/sdl"
)

const defaultMaxCacheSize = 24

type cachedTexture struct {
	key     string
	texture *sdl.Texture
}

// TextureCache is an LRU of textures keyed by string, used for rendered text
// and decoded images. It owns what it holds: evicted and replaced textures
// are destroyed. Not safe for concurrent use; call from the render thread.
type TextureCache struct {
	entries map[string]*list.Element
	recency *list.List // front is most recently used
	maxSize int
	destroy func(*sdl.Texture)
}

func NewTextureCache() *TextureCache {
	return NewTextureCacheWithSize(defaultMaxCacheSize)
}

func NewTextureCacheWithSize(maxSize int) *TextureCache {
	return &TextureCache{
		entries: make(map[string]*list.Element),
		recency: list.New(),
		maxSize: max(1, maxSize),
		destroy: func(t *sdl.Texture) {
			if t != nil {
				t.Destroy()
			}
		},
	}
}

// Get returns the texture for key and marks it used, or nil.
func (c *TextureCache) Get(key string) *sdl.Texture {
	el, ok := c.entries[key]
	if !ok {
		return nil
	}
	c.recency.MoveToFront(el)
	return el.Value.(*cachedTexture).texture
}

// Set stores texture under key, destroying whatever it replaces or evicts.
func (c *TextureCache) Set(key string, texture *sdl.Texture) {
	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*cachedTexture)
		if entry.texture != texture {
			c.destroy(entry.texture)
		}
		entry.texture = texture
		c.recency.MoveToFront(el)
		return
	}

	for c.recency.Len() >= c.maxSize {
		c.evict(c.recency.Back())
	}
	c.entries[key] = c.recency.PushFront(&cachedTexture{key: key, texture: texture})
}

func (c *TextureCache) Contains(key string) bool {
	_, ok := c.entries[key]
	return ok
}

func (c *TextureCache) Len() int {
	return c.recency.Len()
}

func (c *TextureCache) evict(el *list.Element) {
	entry := c.recency.Remove(el).(*cachedTexture)
	delete(c.entries, entry.key)
	c.destroy(entry.texture)
}

// Destroy frees every texture. The cache stays usable.
func (c *TextureCache) Destroy() {
	for el := c.recency.Front(); el != nil; el = el.Next() {
		c.destroy(el.Value.(*cachedTexture).texture)
	}
	c.entries = make(map[string]*list.Element)
	c.recency.Init()
}
