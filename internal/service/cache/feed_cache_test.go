package cache

import (
	"context"
	"testing"
	"time"

	"AgriPulse/internal/domain/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestFeedCacheExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	fc := NewFeedCache(WithClock(clock))
	ctx := context.Background()

	key := FeedKey(models.FeedRequest{State: "Gujarat", Commodity: "Cotton", Limit: 50})
	records := []models.FeedRecord{{State: "Gujarat", Commodity: "Cotton", ModalPrice: 6200}}

	if _, ok := fc.Get(ctx, key); ok {
		t.Fatal("expected miss on empty cache")
	}

	fc.Put(ctx, key, records)
	got, ok := fc.Get(ctx, key)
	if !ok || len(got) != 1 || got[0].ModalPrice != 6200 {
		t.Fatalf("expected hit with stored records, got ok=%v records=%v", ok, got)
	}

	// Just inside the TTL stays fresh, just past it expires.
	clock.advance(DefaultFeedTTL - time.Second)
	if _, ok := fc.Get(ctx, key); !ok {
		t.Fatal("expected hit inside TTL")
	}
	clock.advance(2 * time.Second)
	if _, ok := fc.Get(ctx, key); ok {
		t.Fatal("expected miss after TTL")
	}
}

func TestFeedKeyNormalization(t *testing.T) {
	a := FeedKey(models.FeedRequest{State: " Gujarat ", District: "Rajkot", Commodity: "Cotton", Limit: 50})
	b := FeedKey(models.FeedRequest{State: "gujarat", District: "RAJKOT", Commodity: "cotton", Limit: 50})
	if a != b {
		t.Fatalf("keys differ for equivalent filters: %q vs %q", a, b)
	}
	c := FeedKey(models.FeedRequest{State: "gujarat", District: "RAJKOT", Commodity: "cotton", Limit: 100})
	if a == c {
		t.Fatal("different limits must produce different keys")
	}
}

func TestFeedCachePurge(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	fc := NewFeedCache(WithClock(clock), WithTTL(time.Hour))
	ctx := context.Background()

	key := FeedKey(models.FeedRequest{Commodity: "Wheat", Limit: 10})
	fc.Put(ctx, key, []models.FeedRecord{{Commodity: "Wheat"}})
	fc.Purge()
	if _, ok := fc.Get(ctx, key); ok {
		t.Fatal("expected miss after purge")
	}
}
