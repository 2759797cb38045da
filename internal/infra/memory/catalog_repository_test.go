package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"ppif-diagnostic/internal/domain"
)

type countingLoader struct {
	calls   int
	catalog domain.Catalog
	err     error
}

func (l *countingLoader) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	l.calls++
	if l.err != nil {
		return domain.Catalog{}, l.err
	}
	return l.catalog, nil
}

func smallCatalog() domain.Catalog {
	return domain.Catalog{Questions: []domain.Question{
		{ID: "q-1", Dimension: domain.DimensionPerformance, Type: domain.QuestionFreeText, Weight: 1},
	}}
}

func TestCatalogRepositoryServesFromCacheWithinTTL(t *testing.T) {
	loader := &countingLoader{catalog: smallCatalog()}
	repo := NewCatalogRepository(loader, time.Minute)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		catalog, err := repo.GetCatalog(ctx)
		if err != nil {
			t.Fatalf("GetCatalog: %v", err)
		}
		if len(catalog.Questions) != 1 {
			t.Fatalf("questions = %d, want 1", len(catalog.Questions))
		}
	}
	if loader.calls != 1 {
		t.Fatalf("loader calls = %d, want 1 within TTL", loader.calls)
	}
}

func TestCatalogRepositoryReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{catalog: smallCatalog()}
	repo := NewCatalogRepository(loader, time.Minute)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	ctx := context.Background()
	if _, err := repo.GetCatalog(ctx); err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}

	// Jitter stretches the TTL by at most 10%, so two minutes is past expiry.
	now = now.Add(2 * time.Minute)
	if _, err := repo.GetCatalog(ctx); err != nil {
		t.Fatalf("GetCatalog after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("loader calls = %d, want reload after TTL", loader.calls)
	}
}

func TestCatalogRepositoryPropagatesLoaderError(t *testing.T) {
	loader := &countingLoader{err: errors.New("backend down")}
	repo := NewCatalogRepository(loader, time.Minute)

	if _, err := repo.GetCatalog(context.Background()); err == nil {
		t.Fatal("expected loader error")
	}

	// Errors are not cached; the next call retries the loader.
	loader.err = nil
	loader.catalog = smallCatalog()
	if _, err := repo.GetCatalog(context.Background()); err != nil {
		t.Fatalf("GetCatalog after recovery: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("loader calls = %d, want retry after error", loader.calls)
	}
}

func TestStaticCatalogLoader(t *testing.T) {
	if _, err := NewStaticCatalogLoader(domain.Catalog{}).LoadCatalog(context.Background()); !errors.Is(err, domain.ErrCatalogEmpty) {
		t.Fatalf("err = %v, want ErrCatalogEmpty", err)
	}
	catalog, err := NewStaticCatalogLoader(smallCatalog()).LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(catalog.Questions))
	}
}

func TestSummaryCacheTTL(t *testing.T) {
	cache := NewSummaryCache(time.Minute)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	ctx := context.Background()
	summary := domain.Summary{Assessment: domain.Assessment{ID: "a-1"}}
	cache.Set(ctx, summary)

	if _, ok := cache.Get(ctx, "a-1"); !ok {
		t.Fatal("fresh entry missing")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get(ctx, "a-1"); ok {
		t.Fatal("expired entry still served")
	}

	now = now.Add(-2 * time.Minute)
	cache.Set(ctx, summary)
	cache.Invalidate(ctx, "a-1")
	if _, ok := cache.Get(ctx, "a-1"); ok {
		t.Fatal("invalidated entry still served")
	}
}
