package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
)

// Proc is the minimal processor interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, source string, obs []*models.PriceObservation) error
}

// IngestPipeline sits between the feed collector and the price store.
// It splits sweep results into bounded batches, throttles per source,
// and buffers batches when the store is unavailable so a ClickHouse
// hiccup does not lose a whole sweep.
type IngestPipeline struct {
	proc      Proc
	metrics   domrepo.Metrics
	maxRPS    int
	batchSize int
	bufSize   int
	bufCh     chan bufferedBatch
	stopCh    chan struct{}
	started   bool
	mu        sync.Mutex
	lastSeen  map[string]time.Time // per-source last accepted time
}

type bufferedBatch struct {
	source string
	obs    []*models.PriceObservation
}

type PipelineOption func(*IngestPipeline)

// WithMaxRPS sets the max batches per second per source.
func WithMaxRPS(n int) PipelineOption {
	return func(p *IngestPipeline) {
		if n > 0 {
			p.maxRPS = n
		}
	}
}

// WithBatchSize sets the max observations per store write.
func WithBatchSize(n int) PipelineOption {
	return func(p *IngestPipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *IngestPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// NewIngestPipeline creates a new pipeline.
func NewIngestPipeline(proc Proc, metrics domrepo.Metrics, opts ...PipelineOption) *IngestPipeline {
	p := &IngestPipeline{
		proc:      proc,
		metrics:   metrics,
		maxRPS:    20,
		batchSize: 500,
		bufSize:   64,
		bufCh:     make(chan bufferedBatch, 64),
		stopCh:    make(chan struct{}),
		lastSeen:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufSize != cap(p.bufCh) {
		p.bufCh = make(chan bufferedBatch, p.bufSize)
	}
	return p
}

// Start launches background flushing of buffered batches.
func (p *IngestPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case b := <-p.bufCh:
				if len(b.obs) == 0 {
					continue
				}
				if err := p.proc.Process(ctx, b.source, b.obs); err != nil {
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- b:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *IngestPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process throttles and forwards observations downstream in bounded
// batches, buffering failed batches for the background flusher.
func (p *IngestPipeline) Process(ctx context.Context, source string, obs []*models.PriceObservation) error {
	if len(obs) == 0 {
		return nil
	}
	start := time.Now()
	if !p.allow(source, start) {
		p.metrics.RecordError("pipeline_throttle")
		return nil
	}

	var firstErr error
	for offset := 0; offset < len(obs); offset += p.batchSize {
		end := offset + p.batchSize
		if end > len(obs) {
			end = len(obs)
		}
		chunk := obs[offset:end]
		if err := p.proc.Process(ctx, source, chunk); err != nil {
			p.metrics.RecordError("pipeline_process")
			select {
			case p.bufCh <- bufferedBatch{source: source, obs: chunk}:
				p.metrics.RecordLatency("pipeline_buffer_depth", float64(len(p.bufCh)))
			default:
				p.metrics.RecordError("pipeline_buffer_full")
			}
			if firstErr == nil {
				firstErr = fmt.Errorf("pipeline downstream: %w", err)
			}
		}
	}
	if firstErr != nil {
		return firstErr
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func (p *IngestPipeline) allow(source string, now time.Time) bool {
	if p.maxRPS <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	last := p.lastSeen[source]
	if last.IsZero() {
		p.lastSeen[source] = now
		return true
	}
	if now.Sub(last) < time.Second/time.Duration(p.maxRPS) {
		return false
	}
	p.lastSeen[source] = now
	return true
}
