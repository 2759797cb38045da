package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"ppif-diagnostic/internal/domain"
)

// CatalogLoader fetches the question catalog from a backing store (Postgres).
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) (domain.Catalog, error)
}

// CatalogCache caches the serialized catalog in Redis and falls back to the
// loader on a miss. The catalog is a single JSON blob under one key: it is
// small, read-heavy, and always consumed whole.
type CatalogCache struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

const catalogKey = "ppif:catalog:v1"

func NewCatalogCache(client *redis.Client, loader CatalogLoader, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) GetCatalog(ctx context.Context) (domain.Catalog, error) {
	if catalog, ok := c.fromCache(ctx); ok {
		return catalog, nil
	}

	result, err, _ := c.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if catalog, ok := c.fromCache(ctx); ok {
			return catalog, nil
		}

		catalog, err := c.loader.LoadCatalog(ctx)
		if err != nil {
			return domain.Catalog{}, err
		}

		if payload, err := json.Marshal(catalog); err == nil {
			// Cache write is best-effort; the loader result still serves.
			_ = c.client.Set(ctx, catalogKey, payload, c.ttlWithJitter()).Err()
		}
		return catalog, nil
	})
	if err != nil {
		return domain.Catalog{}, err
	}
	return result.(domain.Catalog), nil
}

// Invalidate drops the cached catalog, forcing a reload on the next read.
// Called after seeding or editing questions.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}

func (c *CatalogCache) fromCache(ctx context.Context) (domain.Catalog, bool) {
	payload, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		return domain.Catalog{}, false
	}
	var catalog domain.Catalog
	if err := json.Unmarshal(payload, &catalog); err != nil {
		return domain.Catalog{}, false
	}
	if len(catalog.Questions) == 0 {
		return domain.Catalog{}, false
	}
	return catalog, true
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
