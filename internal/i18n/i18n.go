// Package i18n holds the doomdex message catalogs and a localizer over them.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// DefaultLanguage is used for any message a catalog does not translate.
var DefaultLanguage = language.English

//go:embed locales/*.toml
var embeddedLocales embed.FS

// NewBundle loads every locales/*.toml file found in fsys.
func NewBundle(fsys fs.FS) (*goi18n.Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("i18n: no message files found")
	}
	sort.Strings(paths)

	bundle := goi18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, path := range paths {
		if _, err := bundle.LoadMessageFileFS(fsys, path); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", path, err)
		}
	}
	return bundle, nil
}

// Translator resolves message IDs for one language.
type Translator struct {
	tag       language.Tag
	localizer *goi18n.Localizer
	logger    *slog.Logger
}

// New returns a Translator for tag over the embedded catalogs.
func New(tag language.Tag, logger *slog.Logger) (*Translator, error) {
	bundle, err := NewBundle(embeddedLocales)
	if err != nil {
		return nil, err
	}
	return NewWithBundle(bundle, tag, logger), nil
}

// NewWithBundle returns a Translator for tag over bundle. Messages missing
// from tag's catalog fall back to English.
func NewWithBundle(bundle *goi18n.Bundle, tag language.Tag, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{
		tag:       tag,
		localizer: goi18n.NewLocalizer(bundle, tag.String(), DefaultLanguage.String()),
		logger:    logger.With(slog.String("component", "i18n")),
	}
}

// Language returns the requested language tag.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// T translates id. Unknown IDs are returned as is.
func (t *Translator) T(id string) string {
	return t.localize(&goi18n.LocalizeConfig{MessageID: id})
}

// Tf translates id with template data.
func (t *Translator) Tf(id string, data map[string]any) string {
	return t.localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Plural translates id choosing the plural form for count. Count is also
// available to the template as {{.Count}}.
func (t *Translator) Plural(id string, count int) string {
	return t.localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (t *Translator) localize(lc *goi18n.LocalizeConfig) string {
	msg, err := t.localizer.Localize(lc)
	if err != nil {
		t.logger.Debug("missing translation",
			slog.String("id", lc.MessageID),
			slog.String("lang", t.tag.String()),
			slog.String("error", err.Error()))
		if msg != "" {
			return msg
		}
		return lc.MessageID
	}
	return msg
}
