package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/swa1245/course-market/internal/api/metrics"
	"github.com/swa1245/course-market/internal/core/domain"
)

const (
	previewKey = "catalog:preview"
	previewTTL = 5 * time.Minute
)

// CatalogCache caches the public course preview in Redis. Every mutation of
// the catalog invalidates the whole preview; it is small and rebuilt on the
// next read. Cache failures degrade to repository reads, never to errors.
type CatalogCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewCatalogCache(client *redis.Client, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{client: client, log: log}
}

func (c *CatalogCache) GetPreview(ctx context.Context) ([]*domain.Course, bool) {
	raw, err := c.client.Get(ctx, previewKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("catalog cache read failed")
		}
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var courses []*domain.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache entry corrupt, dropping")
		_ = c.client.Del(ctx, previewKey).Err()
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
	return courses, true
}

func (c *CatalogCache) SetPreview(ctx context.Context, courses []*domain.Course) {
	raw, err := json.Marshal(courses)
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, previewKey, raw, previewTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache write failed")
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, previewKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
