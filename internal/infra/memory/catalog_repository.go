package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ppif-diagnostic/internal/domain"
)

// CatalogLoader fetches the question catalog from a backing store.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) (domain.Catalog, error)
}

// CatalogRepository caches the catalog with TTL to avoid repeated DB hits.
type CatalogRepository struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    domain.Catalog
	hasCache  bool
	expiresAt time.Time
}

func NewCatalogRepository(loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context) (domain.Catalog, error) {
	now := r.clock()

	r.mu.RLock()
	if r.hasCache && r.expiresAt.After(now) {
		catalog := r.cached
		r.mu.RUnlock()
		return catalog, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("catalog", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.hasCache && r.expiresAt.After(now) {
			catalog := r.cached
			r.mu.RUnlock()
			return catalog, nil
		}
		r.mu.RUnlock()

		catalog, err := r.loader.LoadCatalog(ctx)
		if err != nil {
			return domain.Catalog{}, err
		}

		r.mu.Lock()
		r.cached = catalog
		r.hasCache = true
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return catalog, nil
	})
	if err != nil {
		return domain.Catalog{}, err
	}
	return result.(domain.Catalog), nil
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticCatalogLoader serves a fixed catalog (seed data, tests).
type StaticCatalogLoader struct {
	catalog domain.Catalog
}

func NewStaticCatalogLoader(catalog domain.Catalog) *StaticCatalogLoader {
	return &StaticCatalogLoader{catalog: catalog}
}

func (l *StaticCatalogLoader) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	if len(l.catalog.Questions) == 0 {
		return domain.Catalog{}, domain.ErrCatalogEmpty
	}
	return l.catalog, nil
}
