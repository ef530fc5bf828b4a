package usecase

import (
	"context"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	icache "AgriPulse/internal/service/cache"
	applogger "AgriPulse/pkg/logger"
)

// FeedService serves government feed records through the TTL cache.
type FeedService struct {
	source  domrepo.FeedSource
	cache   *icache.FeedCache
	metrics domrepo.Metrics
	log     *applogger.Logger
}

func NewFeedService(source domrepo.FeedSource, cache *icache.FeedCache, metrics domrepo.Metrics, l *applogger.Logger) *FeedService {
	return &FeedService{source: source, cache: cache, metrics: metrics, log: l}
}

// GetFeed returns feed records for the filter tuple, fetching upstream
// only when the cache has nothing fresh. Upstream failures propagate as
// upstream errors; they are never flattened into an empty result.
func (s *FeedService) GetFeed(ctx context.Context, req models.FeedRequest) ([]models.FeedRecord, error) {
	if req.Limit <= 0 {
		req.Limit = 50
	}

	key := icache.FeedKey(req)
	if records, ok := s.cache.Get(ctx, key); ok {
		if s.metrics != nil {
			s.metrics.RecordFeedCache("hit")
		}
		return records, nil
	}
	if s.metrics != nil {
		s.metrics.RecordFeedCache("miss")
	}

	records, err := s.source.Fetch(ctx, req)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("feed_upstream")
		}
		return nil, err
	}

	s.cache.Put(ctx, key, records)
	if s.log != nil {
		s.log.Debug("feed fetched",
			applogger.String("commodity", req.Commodity),
			applogger.String("state", req.State),
			applogger.Int("records", len(records)))
	}
	return records, nil
}
