package repository

import (
	"context"
	"time"

	"AgriPulse/internal/domain/models"
)

// PriceFilter narrows price store queries. Commodity is matched as a
// case-insensitive substring; the remaining fields match exactly when set.
type PriceFilter struct {
	Commodity string
	Variety   string
	Market    string
	State     string
	District  string
	Markets   []string
	States    []string
}

type PriceStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, o *models.PriceObservation) error
	StoreBatch(ctx context.Context, obs []*models.PriceObservation) error
	Query(ctx context.Context, filter PriceFilter, from, to time.Time, limit int) ([]models.PriceObservation, error)
	Latest(ctx context.Context, filter PriceFilter) (*models.PriceObservation, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// FeedSource fetches live records from the government open-data feed.
type FeedSource interface {
	Fetch(ctx context.Context, req models.FeedRequest) ([]models.FeedRecord, error)
}

// AlertNotifier fans out trigger events to the notification pipeline.
type AlertNotifier interface {
	NotifyTriggered(ctx context.Context, ev models.AlertTriggerEvent) error
	Close() error
}

type Metrics interface {
	RecordRowsIngested(source, commodity string, n int)
	RecordError(kind string)
	RecordFeedCache(outcome string)
	RecordAlertEvaluation(status string)
	RecordLastModalPrice(commodity, market string, price float64)
	RecordLatency(op string, seconds float64)
	RecordSyntheticSeries(reason string)
}
