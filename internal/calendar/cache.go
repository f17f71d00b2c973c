package calendar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

// ResolutionStore persists resolutions by Moment.Key.
type ResolutionStore interface {
	Lookup(ctx context.Context, key string) (engine.Resolution, bool, error)
	Save(ctx context.Context, key string, res engine.Resolution) error
}

// CachedConverter answers from the store and falls through to Next on a miss.
// Store failures are logged and never fail a conversion.
type CachedConverter struct {
	Next  engine.Converter
	Store ResolutionStore
	// Namespace identifies Next. Converters sharing a store must use distinct
	// namespaces or they answer with each other's resolutions.
	Namespace string
}

var _ engine.Converter = (*CachedConverter)(nil)

// Convert implements engine.Converter. Only successful resolutions are saved.
func (c *CachedConverter) Convert(ctx context.Context, m engine.Moment) (engine.Resolution, error) {
	key := c.key(m)
	log := slog.With(config.LogKeyComponent, config.CompCache, config.LogKeyKey, key)

	res, ok, err := c.Store.Lookup(ctx, key)
	switch {
	case err != nil:
		log.Warn(config.MsgCacheFailed, config.LogKeyError, err)
	case ok:
		log.Debug(config.MsgCacheHit)
		return res, nil
	default:
		log.Debug(config.MsgCacheMiss)
	}

	res, err = c.Next.Convert(ctx, m)
	if err != nil {
		return engine.Resolution{}, err
	}
	if err := c.Store.Save(ctx, key, res); err != nil {
		log.Warn(config.MsgCacheFailed, config.LogKeyError, err)
	}
	return res, nil
}

func (c *CachedConverter) key(m engine.Moment) string {
	if c.Namespace == "" {
		return m.Key()
	}
	return fmt.Sprintf(config.FormatCacheNS, c.Namespace, m.Key())
}
