package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/models"
)

const viewKeyFormat = "console:client:%s:view"

// ViewCache stores serialized client views keyed by account id.
type ViewCache struct {
	kv     KVStore
	ttl    time.Duration
	logger *zap.Logger
}

func NewViewCache(kv KVStore, ttl time.Duration, logger *zap.Logger) *ViewCache {
	return &ViewCache{kv: kv, ttl: ttl, logger: logger}
}

func viewKey(accountID string) string {
	return fmt.Sprintf(viewKeyFormat, accountID)
}

// Get returns the cached view or ErrCacheMiss.
func (c *ViewCache) Get(ctx context.Context, accountID string) (*models.ClientView, error) {
	raw, err := c.kv.Get(ctx, viewKey(accountID))
	if err != nil {
		return nil, err
	}

	var view models.ClientView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, fmt.Errorf("failed to decode cached view: %w", err)
	}
	return &view, nil
}

// Put stores the view under its account key.
func (c *ViewCache) Put(ctx context.Context, accountID string, view *models.ClientView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}
	return c.kv.Set(ctx, viewKey(accountID), string(data), c.ttl)
}

// CachedClientLoader wraps ClientLoader with the view cache. Cache failures
// never surface: a broken cache degrades to loading fresh every time.
type CachedClientLoader struct {
	loader *ClientLoader
	cache  *ViewCache
	logger *zap.Logger
}

func NewCachedClientLoader(loader *ClientLoader, cache *ViewCache, logger *zap.Logger) *CachedClientLoader {
	return &CachedClientLoader{loader: loader, cache: cache, logger: logger}
}

func (c *CachedClientLoader) Load(ctx context.Context, accountID string) (*models.ClientView, error) {
	view, err := c.cache.Get(ctx, accountID)
	if err == nil {
		return view, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("View cache read failed, loading fresh",
			zap.String("account_id", accountID),
			zap.Error(err))
	}

	view, err = c.loader.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, accountID, view); err != nil {
		c.logger.Warn("View cache write failed",
			zap.String("account_id", accountID),
			zap.Error(err))
	}
	return view, nil
}
