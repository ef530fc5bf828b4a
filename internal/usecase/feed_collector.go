package usecase

import (
	"context"
	"sync"
	"time"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	mid "AgriPulse/internal/middleware"
	"AgriPulse/internal/service/agmarknet"
	applogger "AgriPulse/pkg/logger"
)

// FeedCollectorConfig drives the background feed polling loop.
type FeedCollectorConfig struct {
	Interval    time.Duration
	Commodities []string
	States      []string
	FetchLimit  int
}

// FeedCollector periodically pulls the government feed for configured
// commodities and stores normalized observations, keeping the price store
// warm without waiting for marketplace traffic.
type FeedCollector struct {
	cfg     FeedCollectorConfig
	source  domrepo.FeedSource
	proc    *ObservationProcessor
	pipe    *mid.IngestPipeline
	metrics domrepo.Metrics
	log     *applogger.Logger

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup
}

func NewFeedCollector(cfg FeedCollectorConfig, source domrepo.FeedSource, proc *ObservationProcessor, pipe *mid.IngestPipeline, metrics domrepo.Metrics, l *applogger.Logger) *FeedCollector {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 200
	}
	return &FeedCollector{
		cfg:     cfg,
		source:  source,
		proc:    proc,
		pipe:    pipe,
		metrics: metrics,
		log:     l,
		stop:    make(chan struct{}),
	}
}

// Start launches the polling loop. The first sweep runs immediately.
func (c *FeedCollector) Start(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.collectOnce(ctx)

		ticker := time.NewTicker(c.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			case <-ticker.C:
				c.collectOnce(ctx)
			}
		}
	}()
	return nil
}

// Shutdown stops the loop and waits for an in-flight sweep to finish.
func (c *FeedCollector) Shutdown(ctx context.Context) error {
	c.stopOnce.Do(func() { close(c.stop) })
	if c.pipe != nil {
		c.pipe.Stop()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// collectOnce sweeps every configured commodity/state pair. One failing
// pair does not stop the sweep.
func (c *FeedCollector) collectOnce(ctx context.Context) {
	states := c.cfg.States
	if len(states) == 0 {
		states = []string{""}
	}

	for _, commodity := range c.cfg.Commodities {
		for _, state := range states {
			select {
			case <-c.stop:
				return
			case <-ctx.Done():
				return
			default:
			}

			records, err := c.source.Fetch(ctx, models.FeedRequest{
				Commodity: commodity,
				State:     state,
				Limit:     c.cfg.FetchLimit,
			})
			if err != nil {
				if c.metrics != nil {
					c.metrics.RecordError("collector_fetch")
				}
				if c.log != nil {
					c.log.Warn("feed collector fetch failed",
						applogger.String("commodity", commodity),
						applogger.String("state", state),
						applogger.Error(err))
				}
				continue
			}

			obs := make([]*models.PriceObservation, 0, len(records))
			for _, rec := range records {
				if o, ok := agmarknet.ToObservation(rec); ok {
					obs = append(obs, &o)
				}
			}
			if err := c.store(ctx, obs); err != nil {
				if c.log != nil {
					c.log.Error("feed collector store failed",
						applogger.String("commodity", commodity),
						applogger.Error(err))
				}
			}
		}
	}
}

// store routes through the ingest pipeline when one is attached.
func (c *FeedCollector) store(ctx context.Context, obs []*models.PriceObservation) error {
	if c.pipe != nil {
		return c.pipe.Process(ctx, "agmarknet", obs)
	}
	return c.proc.Process(ctx, "agmarknet", obs)
}
