package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	"AgriPulse/internal/services/analytics"
	xhttp "AgriPulse/pkg/http"
	applogger "AgriPulse/pkg/logger"
	"AgriPulse/pkg/util"
)

// Thresholds the trend engine pivots on. Ports of this logic have drifted
// before when these were inlined; keep them named.
const (
	// MinRealDaysForTrend is the distinct-day count below which the real
	// aggregation is discarded in favor of a fully synthetic series.
	MinRealDaysForTrend = 3

	// TrendBoundaryPct separates rising/falling from stable.
	TrendBoundaryPct = 3.0

	// InsightConfidence is the fixed confidence attached to the advisory
	// block.
	InsightConfidence = 85.0
)

// TrendEngine buckets price observations into a daily series and derives
// direction, spread, and a qualitative advisory.
type TrendEngine struct {
	store   domrepo.PriceStore
	clock   util.Clock
	rng     analytics.RandomSource
	metrics domrepo.Metrics
	log     *applogger.Logger
}

func NewTrendEngine(store domrepo.PriceStore, clock util.Clock, rng analytics.RandomSource, metrics domrepo.Metrics, l *applogger.Logger) *TrendEngine {
	return &TrendEngine{store: store, clock: clock, rng: rng, metrics: metrics, log: l}
}

// GetTrends computes the trend payload for one commodity over the
// requested period.
func (e *TrendEngine) GetTrends(ctx context.Context, req models.TrendRequest) (*models.TrendResponse, error) {
	if req.Commodity == "" {
		return nil, xhttp.BadRequestError("commodity is required")
	}

	period := domrepo.NormalizePeriod(req.Period)
	days := period.Days()
	end := e.clock.Now()
	windowStart := util.StartOfDay(end).AddDate(0, 0, -(days - 1))

	obs, err := e.store.Query(ctx, domrepo.PriceFilter{
		Commodity: req.Commodity,
		Variety:   req.Variety,
		Market:    req.Market,
		State:     req.State,
	}, end.AddDate(0, 0, -days), end, 0)
	if err != nil {
		if e.metrics != nil {
			e.metrics.RecordError("trend_query")
		}
		return nil, err
	}

	series := bucketDaily(obs)
	if len(series) < MinRealDaysForTrend {
		base := e.anchorPrice(req.Commodity, obs)
		series = analytics.SyntheticSeries(base, days, windowStart, e.rng)
		if e.metrics != nil {
			e.metrics.RecordSyntheticSeries("sparse_trend")
		}
		if e.log != nil {
			e.log.Info("trend series synthesized",
				applogger.String("commodity", req.Commodity),
				applogger.Int("real_days", len(obs)),
				applogger.Float64("base", base))
		}
	}

	first, last := series[0], series[len(series)-1]

	var priceChange float64
	if first.Modal != 0 {
		priceChange = (last.Modal - first.Modal) / first.Modal * 100
	}
	trend := trendDirection(priceChange)

	var modalSum, totalArrival float64
	priceRange := models.PriceRange{Min: series[0].Min, Max: series[0].Max}
	for _, p := range series {
		modalSum += p.Modal
		totalArrival += p.ArrivalQuantity
		if p.Min < priceRange.Min {
			priceRange.Min = p.Min
		}
		if p.Max > priceRange.Max {
			priceRange.Max = p.Max
		}
	}

	return &models.TrendResponse{
		Commodity:    req.Commodity,
		Period:       string(period),
		AveragePrice: modalSum / float64(len(series)),
		PriceChange:  priceChange,
		Trend:        trend,
		PriceRange:   priceRange,
		TotalArrival: totalArrival,
		AIInsight:    buildInsight(req.Commodity, trend, first.ArrivalQuantity, last.ArrivalQuantity),
		Data:         series,
	}, nil
}

// anchorPrice picks the synthesis anchor: the most recent real modal
// price when one exists, else the crop-category base.
func (e *TrendEngine) anchorPrice(commodity string, obs []models.PriceObservation) float64 {
	for i := len(obs) - 1; i >= 0; i-- {
		if obs[i].ModalPrice > 0 {
			return obs[i].ModalPrice
		}
	}
	return analytics.CropBasePrice(commodity)
}

func trendDirection(priceChange float64) string {
	switch {
	case priceChange >= TrendBoundaryPct:
		return "rising"
	case priceChange <= -TrendBoundaryPct:
		return "falling"
	default:
		return "stable"
	}
}

// buildInsight applies the advisory decision table: rising prices on
// falling arrivals favor selling, falling prices on rising arrivals favor
// waiting, everything else is neutral.
func buildInsight(commodity, trend string, firstArrival, lastArrival float64) models.AIInsight {
	arrivals := "decreasing"
	if lastArrival > firstArrival {
		arrivals = "increasing"
	}

	insight := models.AIInsight{Advice: "neutral", Confidence: InsightConfidence}
	switch {
	case trend == "rising" && arrivals == "decreasing":
		insight.Advice = "sell"
		insight.Summary = fmt.Sprintf("%s prices are rising while arrivals shrink. Favorable window to sell.", commodity)
	case trend == "falling" && arrivals == "increasing":
		insight.Advice = "wait"
		insight.Summary = fmt.Sprintf("%s prices are falling as arrivals grow. Better to wait for the market to settle.", commodity)
	case trend == "stable":
		insight.Summary = fmt.Sprintf("%s prices are holding steady. No strong signal either way.", commodity)
	default:
		insight.Summary = fmt.Sprintf("Mixed signals for %s. Watch price and arrival movement before acting.", commodity)
	}
	return insight
}

// bucketDaily groups observations by calendar day, averaging prices and
// summing arrivals, sorted ascending by date.
func bucketDaily(obs []models.PriceObservation) []models.TrendPoint {
	type agg struct {
		minSum, maxSum, modalSum float64
		arrival                  float64
		count                    int
	}
	buckets := make(map[string]*agg)
	for _, o := range obs {
		key := util.DayKey(o.PriceDate)
		b, ok := buckets[key]
		if !ok {
			b = &agg{}
			buckets[key] = b
		}
		b.minSum += o.MinPrice
		b.maxSum += o.MaxPrice
		b.modalSum += o.ModalPrice
		b.arrival += o.ArrivalQuantity
		b.count++
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]models.TrendPoint, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		n := float64(b.count)
		series = append(series, models.TrendPoint{
			Date:            day,
			Min:             b.minSum / n,
			Modal:           b.modalSum / n,
			Max:             b.maxSum / n,
			ArrivalQuantity: b.arrival,
		})
	}
	return series
}

// windowFor is shared by the comparison engine: today spans the current
// day, longer periods reach back whole days.
func windowFor(period domrepo.ComparisonPeriod, now time.Time) (time.Time, time.Time) {
	if period == domrepo.CompareToday {
		return util.StartOfDay(now), now
	}
	return now.AddDate(0, 0, -period.Days()), now
}
