package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"kundekort_backend/internal/cards/domain"
)

func testCache(t *testing.T) *ReportCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, time.Hour)
}

func TestReportCacheRoundTrip(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	report := Report{
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Summary: domain.ReportSummary{
			TotalCards:    3,
			FastCustomers: 1,
			TotalRevenue:  4200,
			ServiceBreakdown: map[domain.ServiceType]int{
				domain.ServiceFast: 2,
			},
		},
	}

	if err := c.Set(ctx, report); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Summary.TotalCards != 3 || got.Summary.TotalRevenue != 4200 {
		t.Fatalf("unexpected cached summary: %+v", got.Summary)
	}
	if got.Summary.ServiceBreakdown[domain.ServiceFast] != 2 {
		t.Fatalf("unexpected breakdown: %v", got.Summary.ServiceBreakdown)
	}
}

func TestReportCacheMiss(t *testing.T) {
	c := testCache(t)

	_, ok, err := c.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestReportCacheInvalidate(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, Report{GeneratedAt: time.Now()}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	_, ok, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss after invalidate")
	}
}

func TestReportCacheDisabled(t *testing.T) {
	c := New(nil, time.Hour)
	ctx := context.Background()

	if err := c.Set(ctx, Report{}); err != nil {
		t.Fatalf("disabled set: %v", err)
	}
	_, ok, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("disabled get: %v", err)
	}
	if ok {
		t.Fatal("disabled cache cannot hit")
	}
}
