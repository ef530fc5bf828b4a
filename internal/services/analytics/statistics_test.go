package analytics

import (
	"math"
	"testing"
)

func TestComputeStatisticsBasic(t *testing.T) {
	stats, ok := ComputeStatistics([]float64{2000, 1800, 2200, 1900})
	if !ok {
		t.Fatal("expected ok for non-empty input")
	}
	if stats.Min != 1800 || stats.Max != 2200 {
		t.Fatalf("min/max = %v/%v, want 1800/2200", stats.Min, stats.Max)
	}
	if stats.Average != 1975 {
		t.Fatalf("average = %v, want 1975", stats.Average)
	}
	// Lower-middle element of the sorted series, not the textbook median.
	if stats.Median != 1900 {
		t.Fatalf("median = %v, want 1900 (lower-middle)", stats.Median)
	}
	wantVol := (2200.0 - 1800.0) / 1800.0 * 100
	if math.Abs(stats.Volatility-wantVol) > 1e-9 {
		t.Fatalf("volatility = %v, want %v", stats.Volatility, wantVol)
	}
	if stats.StandardDeviation < 0 {
		t.Fatalf("stddev negative: %v", stats.StandardDeviation)
	}
}

func TestComputeStatisticsInvariants(t *testing.T) {
	inputs := [][]float64{
		{1},
		{5, 5, 5},
		{1, 2, 3, 4, 5, 6, 7},
		{100, 1, 50, 99, 2},
	}
	for _, prices := range inputs {
		stats, ok := ComputeStatistics(prices)
		if !ok {
			t.Fatalf("unexpected !ok for %v", prices)
		}
		if stats.Median < stats.Min || stats.Median > stats.Max {
			t.Fatalf("median %v outside [%v, %v]", stats.Median, stats.Min, stats.Max)
		}
		if stats.Average < stats.Min || stats.Average > stats.Max {
			t.Fatalf("average %v outside [%v, %v]", stats.Average, stats.Min, stats.Max)
		}
		if stats.StandardDeviation < 0 {
			t.Fatalf("stddev negative for %v", prices)
		}
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	if _, ok := ComputeStatistics(nil); ok {
		t.Fatal("expected !ok for empty input")
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4, 5}, 3)
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("ma[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMovingAverageShortInput(t *testing.T) {
	// A window larger than the input shrinks to the whole input.
	got := MovingAverage([]float64{4, 6}, 7)
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("got %v, want [5]", got)
	}
	if MovingAverage(nil, 7) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	stats := PriceStatistics{Average: 200, StandardDeviation: 10}
	if cv := CoefficientOfVariation(stats); cv != 5 {
		t.Fatalf("cv = %v, want 5", cv)
	}
	if cv := CoefficientOfVariation(PriceStatistics{}); cv != 0 {
		t.Fatalf("cv for zero mean = %v, want 0", cv)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(-50.0 / 2000.0 * 100.0); got != -2.5 {
		t.Fatalf("Round2 = %v, want -2.5", got)
	}
	if got := Round2(3.14159); got != 3.14 {
		t.Fatalf("Round2(3.14159) = %v, want 3.14", got)
	}
}
