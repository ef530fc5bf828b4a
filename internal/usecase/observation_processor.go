package usecase

import (
	"context"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	applogger "AgriPulse/pkg/logger"
)

// ObservationProcessor validates and persists incoming price observations.
// Both ingestion paths (Kafka topic and the feed collector) funnel
// through it.
type ObservationProcessor struct {
	store   domrepo.PriceStore
	metrics domrepo.Metrics
	log     *applogger.Logger
}

func NewObservationProcessor(store domrepo.PriceStore, metrics domrepo.Metrics, l *applogger.Logger) *ObservationProcessor {
	return &ObservationProcessor{store: store, metrics: metrics, log: l}
}

// Process writes valid observations to the store. Invalid rows (no
// commodity, no positive modal price, zero date) are dropped and counted,
// not failed, so one bad record cannot poison a batch.
func (p *ObservationProcessor) Process(ctx context.Context, source string, obs []*models.PriceObservation) error {
	if len(obs) == 0 {
		return nil
	}

	valid := make([]*models.PriceObservation, 0, len(obs))
	dropped := 0
	for _, o := range obs {
		if o == nil || o.Commodity == "" || o.ModalPrice <= 0 || o.PriceDate.IsZero() {
			dropped++
			continue
		}
		valid = append(valid, o)
	}
	if dropped > 0 {
		if p.metrics != nil {
			p.metrics.RecordError("invalid_observation")
		}
		if p.log != nil {
			p.log.Warn("dropped invalid observations",
				applogger.String("source", source),
				applogger.Int("dropped", dropped))
		}
	}
	if len(valid) == 0 {
		return nil
	}

	if err := p.store.StoreBatch(ctx, valid); err != nil {
		if p.metrics != nil {
			p.metrics.RecordError("store_batch")
		}
		return err
	}

	if p.metrics != nil {
		byCommodity := make(map[string]int)
		for _, o := range valid {
			byCommodity[o.Commodity]++
			p.metrics.RecordLastModalPrice(o.Commodity, o.Market, o.ModalPrice)
		}
		for commodity, n := range byCommodity {
			p.metrics.RecordRowsIngested(source, commodity, n)
		}
	}
	if p.log != nil {
		p.log.Debug("observations stored",
			applogger.String("source", source),
			applogger.Int("rows", len(valid)))
	}
	return nil
}
