// Package mockapi serves the demon and weapon endpoints from a fixture, for
// development and demos without the real API.
package mockapi

import (
	"bytes"
	"encoding/json"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/BrandonKowalski/doomdex/pkg/gateway"
)

// Options tweaks how the mock behaves.
type Options struct {
	Latency   time.Duration // Added before every response
	FailLists bool          // Answer list endpoints with 503
	ImageDir  string        // Serve /images from here; placeholders when empty
	Logger    *slog.Logger
}

type server struct {
	fixture *Fixture
	options Options
	logger  *slog.Logger
	demons  map[string]gateway.DemonDetail
	weapons map[string]gateway.WeaponDetail
}

// NewRouter returns the mock API handler for fixture.
func NewRouter(fixture *Fixture, options Options) *mux.Router {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &server{
		fixture: fixture,
		options: options,
		logger:  logger.With(slog.String("component", "mockapi")),
		demons:  make(map[string]gateway.DemonDetail, len(fixture.Demons)),
		weapons: make(map[string]gateway.WeaponDetail, len(fixture.Weapons)),
	}
	for _, d := range fixture.Demons {
		s.demons[d.Key] = d.detail()
	}
	for _, w := range fixture.Weapons {
		s.weapons[w.Key] = w.detail()
	}

	r := mux.NewRouter()
	r.UseEncodedPath()
	r.Use(s.requestLog)
	if options.Latency > 0 {
		r.Use(s.delay)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK\n"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/demons", s.listDemons).Methods(http.MethodGet)
	r.HandleFunc("/demons/{key}", s.demonDetail).Methods(http.MethodGet)
	r.HandleFunc("/weapons", s.listWeapons).Methods(http.MethodGet)
	r.HandleFunc("/weapons/{key}", s.weaponDetail).Methods(http.MethodGet)

	if options.ImageDir != "" {
		r.PathPrefix("/images/").Handler(http.StripPrefix("/images/", http.FileServer(http.Dir(options.ImageDir))))
	} else {
		r.HandleFunc("/images/{name}", s.placeholderImage).Methods(http.MethodGet)
	}

	return r
}

func (s *server) listDemons(w http.ResponseWriter, r *http.Request) {
	if s.options.FailLists {
		http.Error(w, "demons unavailable", http.StatusServiceUnavailable)
		return
	}
	keys := make([]string, len(s.fixture.Demons))
	for i, d := range s.fixture.Demons {
		keys[i] = d.Key
	}
	writeJSON(w, keys)
}

func (s *server) listWeapons(w http.ResponseWriter, r *http.Request) {
	if s.options.FailLists {
		http.Error(w, "weapons unavailable", http.StatusServiceUnavailable)
		return
	}
	keys := make([]string, len(s.fixture.Weapons))
	for i, wp := range s.fixture.Weapons {
		keys[i] = wp.Key
	}
	writeJSON(w, keys)
}

func (s *server) demonDetail(w http.ResponseWriter, r *http.Request) {
	d, ok := s.demons[pathKey(r)]
	if !ok {
		http.Error(w, "no such demon", http.StatusNotFound)
		return
	}
	writeJSON(w, d)
}

func (s *server) weaponDetail(w http.ResponseWriter, r *http.Request) {
	wp, ok := s.weapons[pathKey(r)]
	if !ok {
		http.Error(w, "no such weapon", http.StatusNotFound)
		return
	}
	writeJSON(w, wp)
}

// placeholderImage draws a solid square whose color is derived from the name.
func (s *server) placeholderImage(w http.ResponseWriter, r *http.Request) {
	name := path.Base(pathVar(r, "name"))

	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	sum := h.Sum32()
	fill := color.RGBA{R: uint8(sum >> 16), G: uint8(sum >> 8), B: uint8(sum), A: 0xFF}

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.logger.Error("encode placeholder", "name", name, "error", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (s *server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(gateway.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(gateway.RequestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.EscapedPath(),
			"status", rec.status,
			"request_id", id,
			"duration", time.Since(start))
	})
}

func (s *server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(s.options.Latency):
		case <-r.Context().Done():
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// pathKey returns the decoded {key} variable. With UseEncodedPath the
// variables are still percent-encoded.
func pathKey(r *http.Request) string {
	return pathVar(r, "key")
}

func pathVar(r *http.Request, name string) string {
	raw := mux.Vars(r)[name]
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
