// Package config loads doomdex settings from a TOML file, DOOMDEX_ environment
// variables and command line overrides, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/doomdex/pkg/view"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DOOMDEX_"

// Default values applied before the file is decoded.
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultLanguage       = "en"
	DefaultLogLevel       = "info"
	DefaultWindowTitle    = "doomdex"
)

// Config is the complete runtime configuration.
type Config struct {
	Host                 string        `toml:"host" env:"HOST"`
	RequestTimeout       time.Duration `toml:"request_timeout" env:"REQUEST_TIMEOUT"`
	MaxConcurrentFetches int           `toml:"max_concurrent_fetches" env:"MAX_CONCURRENT_FETCHES"`
	KeySource            string        `toml:"key_source" env:"KEY_SOURCE"`

	Language string `toml:"language" env:"LANGUAGE"`
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`
	LogPath  string `toml:"log_path" env:"LOG_PATH"`

	WindowTitle     string `toml:"window_title" env:"WINDOW_TITLE"`
	WindowMode      string `toml:"window_mode" env:"WINDOW_MODE"`
	FontPath        string `toml:"font_path" env:"FONT_PATH"`
	AccentColor     string `toml:"accent_color" env:"ACCENT_COLOR"`
	Cannoli         bool   `toml:"cannoli" env:"CANNOLI"`
	FlipFaceButtons bool   `toml:"flip_face_buttons" env:"FLIP_FACE_BUTTONS"`
	PowerDevice     string `toml:"power_device" env:"POWER_DEVICE"`
}

// Overrides carries command line values. Nil fields leave the loaded value alone.
type Overrides struct {
	Host       *string
	LogLevel   *string
	Language   *string
	WindowMode *string
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		RequestTimeout: DefaultRequestTimeout,
		KeySource:      string(view.KeySourceCanonical),
		Language:       DefaultLanguage,
		LogLevel:       DefaultLogLevel,
		WindowTitle:    DefaultWindowTitle,
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty) and the environment. A nil environ reads the process
// environment. The result is not validated.
func Load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("config: %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	return cfg, nil
}

// Apply copies every set override into c.
func (c *Config) Apply(o Overrides) {
	if o.Host != nil {
		c.Host = *o.Host
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.Language != nil {
		c.Language = *o.Language
	}
	if o.WindowMode != nil {
		c.WindowMode = *o.WindowMode
	}
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error

	if c.Host == "" {
		errs = append(errs, errors.New("host is required"))
	} else if u, err := url.Parse(c.Host); err != nil {
		errs = append(errs, fmt.Errorf("host: %w", err))
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("host %q must be an absolute http(s) URL", c.Host))
	}

	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout))
	}
	if c.MaxConcurrentFetches < 0 {
		errs = append(errs, fmt.Errorf("max_concurrent_fetches must not be negative, got %d", c.MaxConcurrentFetches))
	}
	if _, err := view.ParseKeySource(c.KeySource); err != nil {
		errs = append(errs, fmt.Errorf("key_source: %w", err))
	}
	if _, err := c.LanguageTag(); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}
	switch c.WindowMode {
	case "", "windowed", "borderless", "fullscreen":
	default:
		errs = append(errs, fmt.Errorf("window_mode %q is not one of windowed, borderless, fullscreen", c.WindowMode))
	}
	if _, err := c.AccentColorHex(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// KeySourceValue returns the parsed key source. Call after Validate.
func (c Config) KeySourceValue() view.KeySource {
	ks, err := view.ParseKeySource(c.KeySource)
	if err != nil {
		return view.KeySourceCanonical
	}
	return ks
}

// LanguageTag parses the configured BCP 47 language. Empty means English.
func (c Config) LanguageTag() (language.Tag, error) {
	if c.Language == "" {
		return language.English, nil
	}
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und, fmt.Errorf("language %q: %w", c.Language, err)
	}
	return tag, nil
}

// AccentColorHex parses accent_color ("#RRGGBB", "0xRRGGBB" or "RRGGBB").
// Empty returns zero, which keeps the theme's accent.
func (c Config) AccentColorHex() (uint32, error) {
	s := strings.TrimSpace(c.AccentColor)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 6 {
		return 0, fmt.Errorf("accent_color %q must have six hex digits", c.AccentColor)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("accent_color %q: %w", c.AccentColor, err)
	}
	return uint32(v), nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
