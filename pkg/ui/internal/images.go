package internal

import (
	"context"
	"sync"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

// FetchFunc downloads the raw bytes of a remote image.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

type ImageStatus int

const (
	ImageUnknown ImageStatus = iota
	ImagePending
	ImageReady
	ImageFailed
)

type imageEntry struct {
	status ImageStatus
	data   []byte
}

// ImageLoader downloads images in the background and turns them into
// textures on the render thread. Decoded textures live in an LRU cache;
// raw bytes are kept so an evicted texture can be rebuilt without another
// download. Everything dies with Close.
type ImageLoader struct {
	fetch  FetchFunc
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	entries map[string]*imageEntry
	wg      sync.WaitGroup

	inFlight *atomic.Int64
	cache    *TextureCache
}

func NewImageLoader(parent context.Context, fetch FetchFunc, cacheSize int) *ImageLoader {
	ctx, cancel := context.WithCancel(parent)
	return &ImageLoader{
		fetch:    fetch,
		ctx:      ctx,
		cancel:   cancel,
		entries:  make(map[string]*imageEntry),
		inFlight: atomic.NewInt64(0),
		cache:    NewTextureCacheWithSize(cacheSize),
	}
}

// Request starts downloading url unless it is already known, and reports
// the current status.
func (l *ImageLoader) Request(url string) ImageStatus {
	if url == "" || l.fetch == nil {
		return ImageFailed
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[url]; ok {
		return e.status
	}
	if l.ctx.Err() != nil {
		return ImageFailed
	}

	l.entries[url] = &imageEntry{status: ImagePending}
	l.inFlight.Inc()
	l.wg.Add(1)
	go l.download(url)
	return ImagePending
}

func (l *ImageLoader) download(url string) {
	defer l.wg.Done()
	defer l.inFlight.Dec()

	data, err := l.fetch(l.ctx, url)

	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entries[url]
	if err != nil || len(data) == 0 {
		if l.ctx.Err() == nil {
			GetInternalLogger().Debug("image download failed", "url", url, "error", err)
		}
		e.status = ImageFailed
		return
	}
	e.status = ImageReady
	e.data = data
}

// Texture returns the decoded texture for url, starting a download when
// needed. It returns nil while pending or after failure; use Request to
// tell the two apart. Must be called from the render thread.
func (l *ImageLoader) Texture(renderer *sdl.Renderer, url string) *sdl.Texture {
	if t := l.cache.Get(url); t != nil {
		return t
	}
	if l.Request(url) != ImageReady {
		return nil
	}

	l.mu.Lock()
	data := l.entries[url].data
	l.mu.Unlock()

	t, err := decodeTexture(renderer, data)
	if err != nil {
		GetInternalLogger().Debug("image decode failed", "url", url, "error", err)
		l.mu.Lock()
		l.entries[url] = &imageEntry{status: ImageFailed}
		l.mu.Unlock()
		return nil
	}
	l.cache.Set(url, t)
	return t
}

func decodeTexture(renderer *sdl.Renderer, data []byte) (*sdl.Texture, error) {
	rw, err := sdl.RWFromMem(data)
	if err != nil {
		return nil, err
	}
	surface, err := img.LoadRW(rw, true)
	if err != nil {
		return nil, err
	}
	defer surface.Free()
	return renderer.CreateTextureFromSurface(surface)
}

// InFlight returns the number of running downloads.
func (l *ImageLoader) InFlight() int64 {
	return l.inFlight.Load()
}

// Wait blocks until running downloads have finished.
func (l *ImageLoader) Wait() {
	l.wg.Wait()
}

// Close cancels downloads, waits for them, and destroys cached textures.
func (l *ImageLoader) Close() {
	l.cancel()
	l.wg.Wait()
	l.cache.Destroy()
}
