// Package narrative serves the static reading texts from go-i18n bundles.
// Embedded YAML locales are the baseline; a content directory may override any
// key and is re-read on Reload without restarting the process.
package narrative

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

//go:embed locales/*.yaml
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".yaml"
)

// snapshot is an immutable view of the loaded content.
type snapshot struct {
	bundle  *i18n.Bundle
	tags    []language.Tag
	matcher language.Matcher
}

// Catalog implements engine.Content. It is safe for concurrent use.
type Catalog struct {
	current atomic.Pointer[snapshot]
}

var _ engine.Content = (*Catalog)(nil)

// New loads the embedded locales, then the overrides in dir when dir is set.
func New(dir string) (*Catalog, error) {
	c := &Catalog{}
	if err := c.Reload(dir); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload rebuilds the bundle and swaps it in atomically. On failure the
// previous content stays active.
func (c *Catalog) Reload(dir string) error {
	bundle := i18n.NewBundle(language.Korean)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	if err := loadLocales(bundle, localeFS, localeDir); err != nil {
		return err
	}
	if dir != "" {
		if err := loadLocales(bundle, os.DirFS(dir), "."); err != nil {
			return err
		}
	}

	tags := bundle.LanguageTags()
	c.current.Store(&snapshot{
		bundle:  bundle,
		tags:    tags,
		matcher: language.NewMatcher(tags),
	})
	slog.Debug(config.MsgCatalogReload,
		config.LogKeyComponent, config.CompI18n,
		config.LogKeyDir, dir,
		config.LogKeyCount, len(tags),
	)
	return nil
}

func loadLocales(bundle *i18n.Bundle, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		path := filepath.ToSlash(filepath.Join(dir, name))
		if _, err := bundle.LoadMessageFileFS(fsys, path); err != nil {
			return fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}
	return nil
}

// Languages lists the base language codes currently loaded.
func (c *Catalog) Languages() []string {
	snap := c.current.Load()
	out := make([]string, 0, len(snap.tags))
	for _, t := range snap.tags {
		out = append(out, baseOf(t))
	}
	return out
}

// Match picks the best loaded language for the preferences. Entries may be
// plain codes or Accept-Language header values. Korean wins when nothing matches.
func (c *Catalog) Match(langs ...string) string {
	snap := c.current.Load()
	_, idx := language.MatchStrings(snap.matcher, langs...)
	return baseOf(snap.tags[idx])
}

// Localize returns a Narrative bound to the best matching language.
func (c *Catalog) Localize(langs ...string) engine.Narrative {
	snap := c.current.Load()
	_, idx := language.MatchStrings(snap.matcher, langs...)
	locale := baseOf(snap.tags[idx])

	l := &Localizer{
		localizer: i18n.NewLocalizer(snap.bundle, locale),
		locale:    locale,
	}
	l.version = l.Text(config.TKeyContentVersion, nil)
	return l
}

func baseOf(t language.Tag) string {
	base, _ := t.Base()
	return base.String()
}

// Localizer resolves keys for one locale.
type Localizer struct {
	localizer *i18n.Localizer
	locale    string
	version   string
}

var _ engine.Narrative = (*Localizer)(nil)

// Text translates key, falling back to the key itself when it is missing.
func (l *Localizer) Text(key string, data map[string]any) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		var notFound *i18n.MessageNotFoundErr
		if !errors.As(err, &notFound) || msg == "" {
			slog.Debug(config.MsgTransMissing,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyKey, key,
				config.LogKeyError, err,
			)
			return key
		}
	}
	return msg
}

// Locale is the base language code, e.g. "ko".
func (l *Localizer) Locale() string { return l.locale }

// Version is the content_version entry of the locale.
func (l *Localizer) Version() string { return l.version }
