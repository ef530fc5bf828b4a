package usecase

import (
	"context"
	"math"
	"testing"

	"AgriPulse/internal/domain/models"
	"AgriPulse/internal/services/analytics"
	"AgriPulse/pkg/util"
)

func newPredictionEngine(store *fakeStore, rng analytics.RandomSource) *PredictionEngine {
	if rng == nil {
		rng = &analytics.FixedRandom{Values: []float64{0.5}}
	}
	return NewPredictionEngine(store, fixedClock{now: testNow}, rng, nil, nil)
}

func TestGetPredictionsRequiresCommodity(t *testing.T) {
	e := newPredictionEngine(&fakeStore{}, nil)
	if _, err := e.GetPredictions(context.Background(), models.PredictionRequest{}); err == nil {
		t.Fatal("expected error for missing commodity")
	}
}

func TestGetPredictionsHorizonAndDates(t *testing.T) {
	store := &fakeStore{obs: dailyObservations("Wheat", []float64{2000, 2010, 2020, 2030, 2040, 2050, 2060, 2070, 2080, 2090})}
	e := newPredictionEngine(store, nil)

	resp, err := e.GetPredictions(context.Background(), models.PredictionRequest{Commodity: "Wheat", Days: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Predictions) != 5 {
		t.Fatalf("predictions = %d, want 5", len(resp.Predictions))
	}
	today := util.DayKey(testNow)
	for i, p := range resp.Predictions {
		if p.Date <= today {
			t.Fatalf("prediction %d date %s not after today %s", i, p.Date, today)
		}
	}
	if resp.Disclaimer != PredictionDisclaimer {
		t.Fatal("missing disclaimer")
	}
}

func TestGetPredictionsBounds(t *testing.T) {
	// A steadily climbing series: slope is positive and each prediction
	// must stay inside the jitter band around its linear base.
	modals := []float64{2000, 2010, 2020, 2030, 2040, 2050, 2060, 2070, 2080, 2090}
	store := &fakeStore{obs: dailyObservations("Wheat", modals)}
	rng := &analytics.FixedRandom{Values: []float64{0.1, 0.9, 0.5, 0.25, 0.75}}
	e := newPredictionEngine(store, rng)

	resp, err := e.GetPredictions(context.Background(), models.PredictionRequest{Commodity: "Wheat", Days: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prices := make([]float64, len(modals))
	for i, m := range modals {
		prices[i] = m
	}
	ma := analytics.MovingAverage(prices, MovingAverageWindow)
	slope := trendSlope(ma)
	if slope <= 0 {
		t.Fatalf("slope = %v, want positive", slope)
	}
	last := modals[len(modals)-1]

	for i, p := range resp.Predictions {
		base := last + slope*float64(i+1)
		low, high := base*analytics.JitterLow, base*analytics.JitterHigh
		if p.PredictedPrice < low || p.PredictedPrice > high {
			t.Fatalf("prediction %d price %v outside [%v, %v]", i, p.PredictedPrice, low, high)
		}
		// confidenceRange derives from the predicted price, so the
		// ordering always holds; assert it as a sanity invariant.
		if p.ConfidenceRange.Low > p.PredictedPrice || p.ConfidenceRange.High < p.PredictedPrice {
			t.Fatalf("prediction %d confidence range broken: %+v", i, p)
		}
		if p.TrendDirection != "up" {
			t.Fatalf("prediction %d direction = %q, want up", i, p.TrendDirection)
		}
	}
}

func TestGetPredictionsBackfill(t *testing.T) {
	// Three real points get four synthetic leading days prepended.
	store := &fakeStore{obs: dailyObservations("Jeera", []float64{6000, 6100, 6200})}
	e := newPredictionEngine(store, nil)

	resp, err := e.GetPredictions(context.Background(), models.PredictionRequest{Commodity: "Jeera", Days: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	synthetic := 0
	for _, h := range resp.History {
		if h.IsSynthetic {
			synthetic++
		}
	}
	if synthetic != MinHistoryPoints-3 {
		t.Fatalf("synthetic history points = %d, want %d", synthetic, MinHistoryPoints-3)
	}
	// Backfill noise stays within its band around the earliest real price.
	for _, h := range resp.History {
		if !h.IsSynthetic {
			continue
		}
		low := 6000 * (1 - analytics.BackfillNoisePct)
		high := 6000 * (1 + analytics.BackfillNoisePct)
		if h.Price < low || h.Price > high {
			t.Fatalf("backfill price %v outside [%v, %v]", h.Price, low, high)
		}
	}
}

func TestGetPredictionsNoData(t *testing.T) {
	// With no real data at all the engine predicts from the default
	// anchor rather than failing.
	e := newPredictionEngine(&fakeStore{}, nil)
	resp, err := e.GetPredictions(context.Background(), models.PredictionRequest{Commodity: "Soybean", Days: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Predictions) != 7 {
		t.Fatalf("predictions = %d, want 7", len(resp.Predictions))
	}
	for i, p := range resp.Predictions {
		if math.Abs(p.PredictedPrice-DefaultAnchorPrice) > DefaultAnchorPrice*0.2 {
			t.Fatalf("prediction %d price %v implausibly far from default anchor", i, p.PredictedPrice)
		}
	}
	if len(resp.History) != MinHistoryPoints {
		t.Fatalf("history = %d, want %d", len(resp.History), MinHistoryPoints)
	}
}

func TestTrendSlope(t *testing.T) {
	if got := trendSlope([]float64{100}); got != 0 {
		t.Fatalf("slope of single point = %v, want 0", got)
	}
	ma := []float64{100, 101, 102, 103, 104, 105, 106}
	want := (106.0 - 100.0) / 7.0
	if got := trendSlope(ma); math.Abs(got-want) > 1e-9 {
		t.Fatalf("slope = %v, want %v", got, want)
	}
	// Shorter MA sequences use what they have but keep the /7 divisor.
	short := []float64{100, 103}
	wantShort := 3.0 / 7.0
	if got := trendSlope(short); math.Abs(got-wantShort) > 1e-9 {
		t.Fatalf("short slope = %v, want %v", got, wantShort)
	}
}
