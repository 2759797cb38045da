package memory

import (
	"context"
	"sync"
	"time"

	"ppif-diagnostic/internal/domain"
)

// SummaryCache holds rendered summaries in-process with a TTL.
type SummaryCache struct {
	ttl   time.Duration
	clock func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedSummary
}

type cachedSummary struct {
	summary   domain.Summary
	expiresAt time.Time
}

func NewSummaryCache(ttl time.Duration) *SummaryCache {
	return &SummaryCache{
		ttl:     ttl,
		clock:   time.Now,
		entries: make(map[string]cachedSummary),
	}
}

func (c *SummaryCache) Get(_ context.Context, assessmentID string) (domain.Summary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[assessmentID]
	if !ok || !entry.expiresAt.After(c.clock()) {
		return domain.Summary{}, false
	}
	return entry.summary, true
}

func (c *SummaryCache) Set(_ context.Context, summary domain.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[summary.Assessment.ID] = cachedSummary{
		summary:   summary,
		expiresAt: c.clock().Add(c.ttl),
	}
}

func (c *SummaryCache) Invalidate(_ context.Context, assessmentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, assessmentID)
}
