package analytics

import (
	"math"
	"testing"
)

// seriesWithCV builds a two-value series whose coefficient of variation is
// exactly the requested percentage. For values m-d and m+d the mean is m
// and the population stddev is d, so cv = d/m*100.
func seriesWithCV(cv float64) []float64 {
	const mean = 1000.0
	d := cv / 100 * mean
	return []float64{mean - d, mean + d}
}

func TestAssessConfidenceTiers(t *testing.T) {
	cases := []struct {
		cv    float64
		level string
		score float64
	}{
		{5, "high", ScoreHigh},
		{9.999, "high", ScoreHigh},
		{10, "medium", ScoreMedium},
		{15, "medium", ScoreMedium},
		{19.999, "medium", ScoreMedium},
		{20, "low", ScoreLow},
		{25, "low", ScoreLow},
	}
	for _, c := range cases {
		got := AssessConfidence(seriesWithCV(c.cv))
		if got.Level != c.level || got.Score != c.score {
			t.Fatalf("cv=%v: got %s/%v, want %s/%v", c.cv, got.Level, got.Score, c.level, c.score)
		}
		if got.Message == "" {
			t.Fatalf("cv=%v: empty message", c.cv)
		}
	}
}

func TestSeriesWithCVSanity(t *testing.T) {
	stats, ok := ComputeStatistics(seriesWithCV(15))
	if !ok {
		t.Fatal("expected ok")
	}
	if cv := CoefficientOfVariation(stats); math.Abs(cv-15) > 1e-9 {
		t.Fatalf("cv = %v, want 15", cv)
	}
}

func TestAssessConfidenceEmpty(t *testing.T) {
	got := AssessConfidence(nil)
	if got.Level != "low" || got.Score != ScoreLow {
		t.Fatalf("empty series: got %s/%v, want low/%v", got.Level, got.Score, ScoreLow)
	}
}
