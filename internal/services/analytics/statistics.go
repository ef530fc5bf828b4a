package analytics

import (
	"math"
	"sort"
)

// PriceStatistics summarizes a non-empty price series.
type PriceStatistics struct {
	Average           float64
	Median            float64
	Min               float64
	Max               float64
	StandardDeviation float64
	Volatility        float64 // (max-min)/min*100
}

// ComputeStatistics returns summary statistics for prices. Callers must
// check for an empty slice first; an empty input is a precondition
// violation and returns ok=false rather than panicking.
func ComputeStatistics(prices []float64) (PriceStatistics, bool) {
	if len(prices) == 0 {
		return PriceStatistics{}, false
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	min := sorted[0]
	max := sorted[len(sorted)-1]
	// Lower-middle element for even lengths. Downstream consumers were
	// tuned against this tie-break; do not switch to a true median.
	median := sorted[(len(sorted)-1)/2]

	var sum float64
	for _, p := range prices {
		sum += p
	}
	avg := sum / float64(len(prices))

	var sqSum float64
	for _, p := range prices {
		d := p - avg
		sqSum += d * d
	}
	stddev := math.Sqrt(sqSum / float64(len(prices)))

	var volatility float64
	if min != 0 {
		volatility = (max - min) / min * 100
	}

	return PriceStatistics{
		Average:           avg,
		Median:            median,
		Min:               min,
		Max:               max,
		StandardDeviation: stddev,
		Volatility:        volatility,
	}, true
}

// MovingAverage returns the sliding-window mean of values. Windows larger
// than the input shrink to the full input. The result has
// len(values)-window+1 entries.
func MovingAverage(values []float64, window int) []float64 {
	if len(values) == 0 {
		return nil
	}
	if window <= 0 || window > len(values) {
		window = len(values)
	}

	out := make([]float64, 0, len(values)-window+1)
	var windowSum float64
	for i, v := range values {
		windowSum += v
		if i >= window {
			windowSum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, windowSum/float64(window))
		}
	}
	return out
}

// CoefficientOfVariation returns stddev/mean*100, or 0 for a zero mean.
func CoefficientOfVariation(stats PriceStatistics) float64 {
	if stats.Average == 0 {
		return 0
	}
	return stats.StandardDeviation / stats.Average * 100
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
