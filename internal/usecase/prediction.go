package usecase

import (
	"context"
	"time"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	"AgriPulse/internal/services/analytics"
	xhttp "AgriPulse/pkg/http"
	applogger "AgriPulse/pkg/logger"
	"AgriPulse/pkg/util"
)

const (
	// MinHistoryPoints is the floor after backfill; fewer real points get
	// synthetic leading days prepended.
	MinHistoryPoints = 7

	// PredictionLookbackDays bounds how much history feeds the model.
	PredictionLookbackDays = 90

	// MovingAverageWindow smooths the modal-price sequence.
	MovingAverageWindow = 7

	// HistoryChartDays is how much trailing history rides along in the
	// response for charting.
	HistoryChartDays = 30

	// DefaultPredictionDays is the horizon when the caller names none.
	DefaultPredictionDays = 7

	// DefaultAnchorPrice anchors backfill when no real data exists at all.
	DefaultAnchorPrice = 2000.0
)

// PredictionDisclaimer rides along on every prediction payload.
const PredictionDisclaimer = "Predictions are generated from a moving-average model over recent mandi prices and are indicative only. Actual prices depend on weather, demand, and local market conditions."

// PredictionEngine projects future daily prices from a moving-average
// trend with bounded jitter.
type PredictionEngine struct {
	store   domrepo.PriceStore
	clock   util.Clock
	rng     analytics.RandomSource
	metrics domrepo.Metrics
	log     *applogger.Logger
}

func NewPredictionEngine(store domrepo.PriceStore, clock util.Clock, rng analytics.RandomSource, metrics domrepo.Metrics, l *applogger.Logger) *PredictionEngine {
	return &PredictionEngine{store: store, clock: clock, rng: rng, metrics: metrics, log: l}
}

// GetPredictions projects req.Days future prices for one commodity.
func (e *PredictionEngine) GetPredictions(ctx context.Context, req models.PredictionRequest) (*models.PredictionResponse, error) {
	if req.Commodity == "" {
		return nil, xhttp.BadRequestError("commodity is required")
	}
	days := req.Days
	if days <= 0 {
		days = DefaultPredictionDays
	}

	now := e.clock.Now()
	obs, err := e.store.Query(ctx, domrepo.PriceFilter{
		Commodity: req.Commodity,
		Variety:   req.Variety,
		Market:    req.Market,
		State:     req.State,
	}, now.AddDate(0, 0, -PredictionLookbackDays), now, 0)
	if err != nil {
		if e.metrics != nil {
			e.metrics.RecordError("prediction_query")
		}
		return nil, err
	}

	history := make([]models.HistoryPoint, 0, len(obs))
	for _, o := range obs {
		history = append(history, models.HistoryPoint{
			Date:            util.DayKey(o.PriceDate),
			Price:           o.ModalPrice,
			ArrivalQuantity: o.ArrivalQuantity,
		})
	}

	// Too few real points: prepend synthetic leading days so the moving
	// average always has something to chew on. Not an error.
	if len(history) < MinHistoryPoints {
		anchorPrice, anchorArrival := DefaultAnchorPrice, 0.0
		anchorDate := util.StartOfDay(now)
		if len(history) > 0 {
			anchorPrice = history[0].Price
			anchorArrival = history[0].ArrivalQuantity
			anchorDate = obs[0].PriceDate
		}
		backfill := analytics.BackfillPoints(anchorPrice, anchorArrival, MinHistoryPoints-len(history), anchorDate, e.rng)
		history = append(backfill, history...)
		if e.metrics != nil {
			e.metrics.RecordSyntheticSeries("prediction_backfill")
		}
		if e.log != nil {
			e.log.Info("prediction history backfilled",
				applogger.String("commodity", req.Commodity),
				applogger.Int("real_points", len(obs)),
				applogger.Int("synthetic", len(backfill)))
		}
	}

	prices := make([]float64, len(history))
	for i, h := range history {
		prices[i] = h.Price
	}

	ma := analytics.MovingAverage(prices, MovingAverageWindow)
	slope := trendSlope(ma)
	lastPrice := prices[len(prices)-1]

	direction := "stable"
	if slope > 0 {
		direction = "up"
	} else if slope < 0 {
		direction = "down"
	}

	predictions := make([]models.PredictionPoint, 0, days)
	for i := 1; i <= days; i++ {
		base := lastPrice + slope*float64(i)
		predicted := base * analytics.Jitter(e.rng)
		predictions = append(predictions, models.PredictionPoint{
			Date:           util.DayKey(now.AddDate(0, 0, i)),
			PredictedPrice: predicted,
			ConfidenceRange: models.ConfidenceRange{
				Low:  predicted * analytics.JitterLow,
				High: predicted * analytics.JitterHigh,
			},
			TrendDirection: direction,
		})
	}

	return &models.PredictionResponse{
		Commodity:   req.Commodity,
		Predictions: predictions,
		History:     trailingHistory(history, now, HistoryChartDays),
		Confidence:  analytics.AssessConfidence(prices),
		Disclaimer:  PredictionDisclaimer,
	}, nil
}

// trendSlope approximates the per-day drift as the change over the most
// recent week of the moving average, divided by seven.
func trendSlope(ma []float64) float64 {
	if len(ma) < 2 {
		return 0
	}
	w := MovingAverageWindow
	if w > len(ma) {
		w = len(ma)
	}
	return (ma[len(ma)-1] - ma[len(ma)-w]) / float64(MovingAverageWindow)
}

// trailingHistory keeps only points within the trailing chart window.
// Dates are ISO day strings, so string comparison orders correctly.
func trailingHistory(history []models.HistoryPoint, now time.Time, days int) []models.HistoryPoint {
	cutoff := util.DayKey(now.AddDate(0, 0, -days))
	out := make([]models.HistoryPoint, 0, len(history))
	for _, h := range history {
		if h.Date >= cutoff {
			out = append(out, h)
		}
	}
	return out
}
