// Package cache provides a redis-backed cache for the customer report,
// so dashboard reads do not recompute the summary between rebuilds.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kundekort_backend/internal/cards/domain"
)

const reportKey = "cards:report"

// Report is the cached payload: the summary plus when it was built.
type Report struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Summary     domain.ReportSummary `json:"summary"`
}

// ReportCache stores the latest report summary in redis.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a report cache. A nil client disables caching; both Get and
// Set become no-ops then.
func New(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

// NewFromURL creates a report cache from a redis URL. An empty URL yields a
// disabled cache rather than an error.
func NewFromURL(redisURL string, ttl time.Duration) (*ReportCache, error) {
	if redisURL == "" {
		return New(nil, ttl), nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return New(redis.NewClient(opt), ttl), nil
}

// Get returns the cached report, or ok=false on a miss or disabled cache.
func (c *ReportCache) Get(ctx context.Context) (Report, bool, error) {
	if c.client == nil {
		return Report{}, false, nil
	}

	payload, err := c.client.Get(ctx, reportKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Report{}, false, nil
		}
		return Report{}, false, fmt.Errorf("get cached report: %w", err)
	}

	var report Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return Report{}, false, fmt.Errorf("decode cached report: %w", err)
	}
	return report, true, nil
}

// Set stores the report with the configured TTL.
func (c *ReportCache) Set(ctx context.Context, report Report) error {
	if c.client == nil {
		return nil
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := c.client.Set(ctx, reportKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached report: %w", err)
	}
	return nil
}

// Invalidate drops the cached report.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, reportKey).Err()
}
