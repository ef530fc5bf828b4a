package analytics

import (
	"testing"
	"time"
)

func TestCropBasePrice(t *testing.T) {
	cases := []struct {
		commodity string
		want      float64
	}{
		{"Cotton", BasePriceSpice},
		{"green mirch", BasePriceSpice},
		{"Jeera (Cumin)", BasePriceSpice},
		{"Wheat", BasePriceGrain},
		{"Basmati Rice", BasePriceGrain},
		{"Paddy(Dhan)", BasePriceGrain},
		{"Tomato", BasePriceVegetable},
		{"ONION", BasePriceVegetable},
		{"Potato", BasePriceVegetable},
		{"Soybean", BasePriceDefault},
		{"", BasePriceDefault},
	}
	for _, c := range cases {
		if got := CropBasePrice(c.commodity); got != c.want {
			t.Fatalf("CropBasePrice(%q) = %v, want %v", c.commodity, got, c.want)
		}
	}
}

func TestSyntheticSeriesShape(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rng := &FixedRandom{Values: []float64{0.5, 0.1, 0.9, 0.3, 0.7}}
	series := SyntheticSeries(2000, 7, start, rng)

	if len(series) != 7 {
		t.Fatalf("len = %d, want 7", len(series))
	}
	prev := ""
	for i, p := range series {
		if !p.IsSynthetic {
			t.Fatalf("point %d not flagged synthetic", i)
		}
		if p.Date <= prev {
			t.Fatalf("dates not strictly increasing at %d: %s <= %s", i, p.Date, prev)
		}
		prev = p.Date
		if p.Modal < 2000*syntheticFloorPct {
			t.Fatalf("point %d modal %v below floor", i, p.Modal)
		}
		if p.Min >= p.Modal || p.Max <= p.Modal {
			t.Fatalf("point %d spread broken: min=%v modal=%v max=%v", i, p.Min, p.Modal, p.Max)
		}
	}
	if series[0].Date != "2025-06-01" || series[6].Date != "2025-06-07" {
		t.Fatalf("date range %s..%s, want 2025-06-01..2025-06-07", series[0].Date, series[6].Date)
	}
}

func TestSyntheticSeriesFloor(t *testing.T) {
	// An always-minimal RNG drags the price down every day; the floor
	// clamp must hold it at half the base.
	rng := &FixedRandom{Values: []float64{0}}
	series := SyntheticSeries(1000, 30, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), rng)
	for i, p := range series {
		if p.Modal < 500 {
			t.Fatalf("point %d below floor: %v", i, p.Modal)
		}
	}
}

func TestBackfillPoints(t *testing.T) {
	anchor := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	rng := &FixedRandom{Values: []float64{0, 1, 0.5}}
	points := BackfillPoints(2000, 12, 3, anchor, rng)

	if len(points) != 3 {
		t.Fatalf("len = %d, want 3", len(points))
	}
	wantDates := []string{"2025-06-07", "2025-06-08", "2025-06-09"}
	for i, p := range points {
		if p.Date != wantDates[i] {
			t.Fatalf("point %d date = %s, want %s", i, p.Date, wantDates[i])
		}
		if !p.IsSynthetic {
			t.Fatalf("point %d not flagged synthetic", i)
		}
		low, high := 2000*(1-BackfillNoisePct), 2000*(1+BackfillNoisePct)
		if p.Price < low || p.Price > high {
			t.Fatalf("point %d price %v outside [%v, %v]", i, p.Price, low, high)
		}
		if p.ArrivalQuantity != 12 {
			t.Fatalf("point %d arrival = %v, want 12", i, p.ArrivalQuantity)
		}
	}
}

func TestJitterBounds(t *testing.T) {
	if got := Jitter(&FixedRandom{Values: []float64{0}}); got != JitterLow {
		t.Fatalf("Jitter(0) = %v, want %v", got, JitterLow)
	}
	if got := Jitter(&FixedRandom{Values: []float64{0.5}}); got != 1.0 {
		t.Fatalf("Jitter(0.5) = %v, want 1.0", got)
	}
	high := Jitter(&FixedRandom{Values: []float64{0.999999}})
	if high < JitterLow || high >= JitterHigh {
		t.Fatalf("Jitter near 1 = %v, want in [%v, %v)", high, JitterLow, JitterHigh)
	}
}
