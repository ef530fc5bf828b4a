package usecase

import (
	"context"
	"sort"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	xhttp "AgriPulse/pkg/http"
	applogger "AgriPulse/pkg/logger"
	"AgriPulse/pkg/util"
)

// ComparisonEngine ranks markets by average modal price for one commodity.
type ComparisonEngine struct {
	store   domrepo.PriceStore
	clock   util.Clock
	metrics domrepo.Metrics
	log     *applogger.Logger
}

func NewComparisonEngine(store domrepo.PriceStore, clock util.Clock, metrics domrepo.Metrics, l *applogger.Logger) *ComparisonEngine {
	return &ComparisonEngine{store: store, clock: clock, metrics: metrics, log: l}
}

// CompareMarkets aggregates per-market averages over the window and
// recommends where to buy (cheapest) and sell (dearest). Zero matching
// observations yield a well-formed zeroed shape, never an error.
func (e *ComparisonEngine) CompareMarkets(ctx context.Context, req models.CompareRequest) (*models.ComparisonResponse, error) {
	if req.Commodity == "" {
		return nil, xhttp.BadRequestError("commodity is required")
	}

	period := domrepo.NormalizeComparisonPeriod(req.Period)
	from, to := windowFor(period, e.clock.Now())

	obs, err := e.store.Query(ctx, domrepo.PriceFilter{
		Commodity: req.Commodity,
		Markets:   util.SplitCSV(req.Markets),
		States:    util.SplitCSV(req.States),
	}, from, to, 0)
	if err != nil {
		if e.metrics != nil {
			e.metrics.RecordError("comparison_query")
		}
		return nil, err
	}

	resp := &models.ComparisonResponse{
		Commodity: req.Commodity,
		Period:    string(period),
		Markets:   []models.MarketComparisonRow{},
	}

	rows := groupByMarket(obs)
	if len(rows) == 0 {
		return resp, nil
	}

	// Rank dearest first for display.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].AvgModalPrice > rows[j].AvgModalPrice
	})
	resp.Markets = rows

	sell := rows[0]
	buy := rows[len(rows)-1]
	resp.BestMarketToSell = &sell
	resp.BestMarketToBuy = &buy

	var sum float64
	min, max := rows[0].AvgModalPrice, rows[0].AvgModalPrice
	for _, r := range rows {
		sum += r.AvgModalPrice
		if r.AvgModalPrice < min {
			min = r.AvgModalPrice
		}
		if r.AvgModalPrice > max {
			max = r.AvgModalPrice
		}
	}
	resp.Statistics = models.ComparisonStatistics{
		MinPrice:   min,
		MaxPrice:   max,
		AvgPrice:   sum / float64(len(rows)),
		PriceRange: max - min,
	}
	return resp, nil
}

// groupByMarket aggregates observations per (market, state, district).
func groupByMarket(obs []models.PriceObservation) []models.MarketComparisonRow {
	type key struct{ market, state, district string }
	type agg struct {
		minSum, maxSum, modalSum float64
		arrival                  float64
		count                    int
	}

	groups := make(map[key]*agg)
	order := make([]key, 0)
	for _, o := range obs {
		k := key{o.Market, o.State, o.District}
		g, ok := groups[k]
		if !ok {
			g = &agg{}
			groups[k] = g
			order = append(order, k)
		}
		g.minSum += o.MinPrice
		g.maxSum += o.MaxPrice
		g.modalSum += o.ModalPrice
		g.arrival += o.ArrivalQuantity
		g.count++
	}

	rows := make([]models.MarketComparisonRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		n := float64(g.count)
		rows = append(rows, models.MarketComparisonRow{
			Market:           k.market,
			State:            k.state,
			District:         k.district,
			AvgMinPrice:      g.minSum / n,
			AvgMaxPrice:      g.maxSum / n,
			AvgModalPrice:    g.modalSum / n,
			TotalArrival:     g.arrival,
			ObservationCount: g.count,
		})
	}
	return rows
}
