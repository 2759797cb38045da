package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"ppif-diagnostic/internal/domain"
)

// SummaryCache stores rendered assessment summaries in Redis so multiple
// instances share one cache. All operations are best-effort: a Redis outage
// degrades to recomputing summaries from Postgres, never to an error.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

func (c *SummaryCache) Get(ctx context.Context, assessmentID string) (domain.Summary, bool) {
	payload, err := c.client.Get(ctx, c.key(assessmentID)).Bytes()
	if err != nil {
		return domain.Summary{}, false
	}
	var summary domain.Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return domain.Summary{}, false
	}
	return summary, true
}

func (c *SummaryCache) Set(ctx context.Context, summary domain.Summary) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(summary.Assessment.ID), payload, c.ttl).Err()
}

func (c *SummaryCache) Invalidate(ctx context.Context, assessmentID string) {
	_ = c.client.Del(ctx, c.key(assessmentID)).Err()
}

func (c *SummaryCache) key(assessmentID string) string {
	return "ppif:summary:" + assessmentID
}
