package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"AgriPulse/internal/domain/models"
	icache "AgriPulse/internal/service/cache"
)

type spyFeedSource struct {
	records []models.FeedRecord
	err     error
	calls   int
}

func (s *spyFeedSource) Fetch(_ context.Context, _ models.FeedRequest) ([]models.FeedRecord, error) {
	s.calls++
	return s.records, s.err
}

type tickingClock struct{ now time.Time }

func (c *tickingClock) Now() time.Time { return c.now }

func TestGetFeedCachesWithinTTL(t *testing.T) {
	clock := &tickingClock{now: testNow}
	source := &spyFeedSource{records: []models.FeedRecord{{Commodity: "Wheat", Market: "Indore", ModalPrice: 2000}}}
	cache := icache.NewFeedCache(icache.WithClock(clock))
	svc := NewFeedService(source, cache, nil, nil)

	req := models.FeedRequest{Commodity: "Wheat", State: "MP", Limit: 50}
	first, err := svc.GetFeed(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 || source.calls != 1 {
		t.Fatalf("first call: records %d, upstream calls %d", len(first), source.calls)
	}

	// A second call inside the TTL is served from cache.
	clock.now = clock.now.Add(9 * time.Minute)
	second, err := svc.GetFeed(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("upstream calls = %d, want 1 within TTL", source.calls)
	}
	if len(second) != 1 || second[0].Market != "Indore" {
		t.Fatalf("cached records = %+v", second)
	}

	// Past the TTL the upstream is consulted again.
	clock.now = clock.now.Add(2 * time.Minute)
	if _, err := svc.GetFeed(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("upstream calls = %d, want 2 after expiry", source.calls)
	}
}

func TestGetFeedKeySeparatesFilters(t *testing.T) {
	source := &spyFeedSource{records: []models.FeedRecord{{Commodity: "Wheat"}}}
	cache := icache.NewFeedCache(icache.WithClock(&tickingClock{now: testNow}))
	svc := NewFeedService(source, cache, nil, nil)

	if _, err := svc.GetFeed(context.Background(), models.FeedRequest{Commodity: "Wheat", State: "MP", Limit: 50}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetFeed(context.Background(), models.FeedRequest{Commodity: "Wheat", State: "Gujarat", Limit: 50}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("upstream calls = %d, want 2 for distinct filters", source.calls)
	}
}

func TestGetFeedUpstreamFailurePropagates(t *testing.T) {
	source := &spyFeedSource{err: errors.New("upstream 502")}
	cache := icache.NewFeedCache(icache.WithClock(&tickingClock{now: testNow}))
	svc := NewFeedService(source, cache, nil, nil)

	_, err := svc.GetFeed(context.Background(), models.FeedRequest{Commodity: "Wheat", Limit: 50})
	if err == nil {
		t.Fatal("expected upstream error to propagate")
	}
	// The failure must not be cached.
	source.err = nil
	source.records = []models.FeedRecord{{Commodity: "Wheat"}}
	records, err := svc.GetFeed(context.Background(), models.FeedRequest{Commodity: "Wheat", Limit: 50})
	if err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if len(records) != 1 || source.calls != 2 {
		t.Fatalf("recovery: records %d, calls %d", len(records), source.calls)
	}
}

func TestGetFeedDefaultsLimit(t *testing.T) {
	source := &spyFeedSource{records: []models.FeedRecord{}}
	cache := icache.NewFeedCache(icache.WithClock(&tickingClock{now: testNow}))
	svc := NewFeedService(source, cache, nil, nil)

	if _, err := svc.GetFeed(context.Background(), models.FeedRequest{Commodity: "Wheat"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Defaulted limit hits the same cache entry as an explicit 50.
	if _, err := svc.GetFeed(context.Background(), models.FeedRequest{Commodity: "Wheat", Limit: 50}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("upstream calls = %d, want 1", source.calls)
	}
}
