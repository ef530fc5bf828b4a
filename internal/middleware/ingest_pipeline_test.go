package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"AgriPulse/internal/domain/models"
)

type fakeProc struct {
	mu      sync.Mutex
	batches [][]*models.PriceObservation
	failN   int
}

func (f *fakeProc) Process(_ context.Context, _ string, obs []*models.PriceObservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failN > 0 {
		f.failN--
		return errors.New("store down")
	}
	f.batches = append(f.batches, obs)
	return nil
}

func (f *fakeProc) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

type nopMetrics struct{}

func (nopMetrics) RecordRowsIngested(string, string, int) {}
func (nopMetrics) RecordError(string) {}
func (nopMetrics) RecordFeedCache(string) {}
func (nopMetrics) RecordAlertEvaluation(string) {}
func (nopMetrics) RecordLastModalPrice(string, string, float64) {}
func (nopMetrics) RecordLatency(string, float64) {}
func (nopMetrics) RecordSyntheticSeries(string) {}

func makeObs(n int) []*models.PriceObservation {
	obs := make([]*models.PriceObservation, n)
	for i := range obs {
		obs[i] = &models.PriceObservation{Commodity: "Wheat", ModalPrice: 2000, PriceDate: time.Now()}
	}
	return obs
}

func TestPipelineSplitsBatches(t *testing.T) {
	proc := &fakeProc{}
	p := NewIngestPipeline(proc, nopMetrics{}, WithBatchSize(100))

	if err := p.Process(context.Background(), "agmarknet", makeObs(250)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := proc.batchCount(); got != 3 {
		t.Fatalf("batches = %d, want 3", got)
	}
	if len(proc.batches[0]) != 100 || len(proc.batches[2]) != 50 {
		t.Fatalf("batch sizes = %d/%d/%d", len(proc.batches[0]), len(proc.batches[1]), len(proc.batches[2]))
	}
}

func TestPipelineBuffersFailedBatch(t *testing.T) {
	proc := &fakeProc{failN: 1}
	p := NewIngestPipeline(proc, nopMetrics{}, WithBatchSize(100))

	ctx := context.Background()
	if err := p.Process(ctx, "agmarknet", makeObs(50)); err == nil {
		t.Fatal("expected downstream error on first attempt")
	}

	// The background flusher retries the buffered batch.
	p.Start(ctx)
	defer p.Stop()

	deadline := time.After(2 * time.Second)
	for proc.batchCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("buffered batch never flushed")
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(proc.batches[0]) != 50 {
		t.Fatalf("flushed batch size = %d, want 50", len(proc.batches[0]))
	}
}

func TestPipelineThrottlesPerSource(t *testing.T) {
	proc := &fakeProc{}
	p := NewIngestPipeline(proc, nopMetrics{}, WithBatchSize(100), WithMaxRPS(1))

	now := context.Background()
	if err := p.Process(now, "agmarknet", makeObs(10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Immediate second call for the same source is throttled away.
	if err := p.Process(now, "agmarknet", makeObs(10)); err != nil {
		t.Fatalf("throttled call must not error: %v", err)
	}
	if got := proc.batchCount(); got != 1 {
		t.Fatalf("batches = %d, want 1 after throttle", got)
	}
	// A different source is not affected.
	if err := p.Process(now, "kafka", makeObs(10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := proc.batchCount(); got != 2 {
		t.Fatalf("batches = %d, want 2", got)
	}
}

func TestPipelineEmptyBatchIsNoop(t *testing.T) {
	proc := &fakeProc{}
	p := NewIngestPipeline(proc, nopMetrics{})
	if err := p.Process(context.Background(), "agmarknet", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proc.batchCount() != 0 {
		t.Fatal("empty batch must not reach the processor")
	}
}
