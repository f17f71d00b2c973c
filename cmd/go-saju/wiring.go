package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-saju/internal/calendar"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
	"github.com/tartampluch/go-saju/internal/narrative"
	"github.com/tartampluch/go-saju/internal/store"
)

// newConverter builds the configured converter, wrapped in the SQLite cache when
// enabled. The returned closer is nil when nothing needs closing.
func (a *app) newConverter() (engine.Converter, io.Closer, error) {
	if err := a.settings.Validate(); err != nil {
		return nil, nil, err
	}

	var conv engine.Converter
	switch a.settings.ConverterMode {
	case config.ConverterModeRemote:
		token, err := config.LoadToken(a.settings.Account)
		if err != nil {
			// Headless hosts often have no keyring; the service may allow anonymous use.
			slog.Warn(config.MsgTokenMissing,
				config.LogKeyComponent, config.CompConfig,
				config.LogKeyError, err,
			)
		} else if token == "" {
			slog.Info(config.MsgTokenMissing, config.LogKeyComponent, config.CompConfig)
		}
		remote, err := calendar.NewHTTPConverter(a.settings.ConverterURL, token)
		if err != nil {
			return nil, nil, err
		}
		conv = remote
	default:
		conv = calendar.FixedTermConverter{}
	}

	if !a.settings.Cache {
		return conv, nil, nil
	}
	st, err := store.Open(a.settings.CachePath)
	if err != nil {
		slog.Warn(config.MsgCacheFailed,
			config.LogKeyComponent, config.CompCache,
			config.LogKeyError, err,
		)
		return conv, nil, nil
	}
	return &calendar.CachedConverter{Next: conv, Store: st, Namespace: a.cacheNamespace()}, st, nil
}

// cacheNamespace separates cached resolutions by converter: the local
// approximation and each remote service keep their own entries.
func (a *app) cacheNamespace() string {
	if a.settings.ConverterMode == config.ConverterModeRemote {
		return fmt.Sprintf(config.FormatRemoteNS, a.settings.ConverterMode, a.settings.ConverterURL)
	}
	return a.settings.ConverterMode
}

// newAssembler wires the converter and the narrative catalog.
func (a *app) newAssembler(contentDir string) (*engine.Assembler, *narrative.Catalog, io.Closer, error) {
	catalog, err := narrative.New(contentDir)
	if err != nil {
		return nil, nil, nil, err
	}
	conv, closer, err := a.newConverter()
	if err != nil {
		return nil, nil, nil, err
	}
	slog.Debug(config.MsgConverting,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyMode, a.settings.ConverterMode,
	)
	return engine.NewAssembler(conv, catalog), catalog, closer, nil
}

// languages puts the explicit choice before the configured default.
func (a *app) languages(explicit string) []string {
	if explicit == "" {
		return []string{a.settings.Language}
	}
	return []string{explicit, a.settings.Language}
}

// checkLanguage warns when an explicit language has no content of its own and
// the narrative falls back to another locale.
func checkLanguage(catalog *narrative.Catalog, lang string) {
	if lang == "" {
		return
	}
	if got := catalog.Match(lang); !strings.HasPrefix(strings.ToLower(lang), got) {
		slog.Warn(config.MsgLangFallback,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
			config.LogKeyFallback, got,
			config.LogKeyLangs, catalog.Languages(),
		)
	}
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close() // Best effort close
	}
}
