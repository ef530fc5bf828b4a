package analytics

import (
	"strings"
	"time"

	"AgriPulse/internal/domain/models"
	"AgriPulse/pkg/util"
)

// Crop-category base prices used to anchor fully synthetic series when no
// real observation exists for the commodity.
const (
	BasePriceSpice     = 6000.0 // cotton, mirch, jeera
	BasePriceGrain     = 2200.0 // wheat, rice, paddy
	BasePriceVegetable = 1500.0 // tomato, onion, potato
	BasePriceDefault   = 2000.0
)

// Synthesis tuning. The trend component is drawn once per series; daily
// noise is drawn per point.
const (
	syntheticTrendPct  = 0.02  // trend component amplitude, of base
	syntheticNoisePct  = 0.05  // daily noise amplitude, of base
	syntheticFloorPct  = 0.5   // floor clamp, of base
	syntheticSpreadPct = 0.10  // modal +/- spread yields min/max
	BackfillNoisePct   = 0.025 // prediction backfill noise, of price

	JitterLow  = 0.95
	JitterHigh = 1.05
)

// CropBasePrice infers an anchor price from keyword matching on the
// commodity name.
func CropBasePrice(commodity string) float64 {
	c := strings.ToLower(commodity)
	switch {
	case strings.Contains(c, "cotton"), strings.Contains(c, "mirch"), strings.Contains(c, "jeera"):
		return BasePriceSpice
	case strings.Contains(c, "wheat"), strings.Contains(c, "rice"), strings.Contains(c, "paddy"):
		return BasePriceGrain
	case strings.Contains(c, "tomato"), strings.Contains(c, "onion"), strings.Contains(c, "potato"):
		return BasePriceVegetable
	default:
		return BasePriceDefault
	}
}

// SyntheticSeries fabricates one trend point per day over [start, start+days),
// anchored at base. A single random trend component pushes the whole series
// up or down; independent daily noise keeps it from looking hand drawn.
// Prices never fall below half the base.
func SyntheticSeries(base float64, days int, start time.Time, rng RandomSource) []models.TrendPoint {
	if days <= 0 {
		return nil
	}

	trend := (rng.Next() - 0.5) * 2 * syntheticTrendPct * base
	floor := base * syntheticFloorPct

	series := make([]models.TrendPoint, 0, days)
	price := base
	for i := 0; i < days; i++ {
		noise := (rng.Next() - 0.5) * 2 * syntheticNoisePct * base
		price = price + trend + noise
		if price < floor {
			price = floor
		}

		series = append(series, models.TrendPoint{
			Date:            start.AddDate(0, 0, i).Format(util.DayFormat),
			Min:             price * (1 - syntheticSpreadPct),
			Modal:           price,
			Max:             price * (1 + syntheticSpreadPct),
			ArrivalQuantity: 0,
			IsSynthetic:     true,
		})
	}
	return series
}

// BackfillPoints fabricates count leading history points ending the day
// before anchorDate, each the anchor price plus bounded noise.
func BackfillPoints(anchorPrice, anchorArrival float64, count int, anchorDate time.Time, rng RandomSource) []models.HistoryPoint {
	if count <= 0 {
		return nil
	}

	points := make([]models.HistoryPoint, 0, count)
	for i := count; i >= 1; i-- {
		noise := (rng.Next() - 0.5) * 2 * BackfillNoisePct * anchorPrice
		points = append(points, models.HistoryPoint{
			Date:            anchorDate.AddDate(0, 0, -i).Format(util.DayFormat),
			Price:           anchorPrice + noise,
			ArrivalQuantity: anchorArrival,
			IsSynthetic:     true,
		})
	}
	return points
}

// Jitter draws a multiplier in [JitterLow, JitterHigh).
func Jitter(rng RandomSource) float64 {
	return JitterLow + rng.Next()*(JitterHigh-JitterLow)
}
