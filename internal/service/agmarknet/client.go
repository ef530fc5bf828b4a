package agmarknet

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"AgriPulse/internal/domain/models"
	drepo "AgriPulse/internal/domain/repository"
	"AgriPulse/internal/service/ratelimit"
	xhttp "AgriPulse/pkg/http"
	applogger "AgriPulse/pkg/logger"
	"AgriPulse/pkg/util"
)

// limiterKey buckets all Agmarknet calls together; the quota is per api
// key, not per filter.
const limiterKey = "agmarknet"

// arrivalDateFormat is the DD/MM/YYYY layout the feed serves.
const arrivalDateFormat = "02/01/2006"

// Config holds data.gov.in resource API settings.
type Config struct {
	BaseURL    string
	ResourceID string
	APIKey     string
	Timeout    time.Duration
	MaxRPS     float64
}

// Client implements a FeedSource backed by the data.gov.in Agmarknet
// resource API.
type Client struct {
	cfg     Config
	client  *xhttp.Client
	limiter *ratelimit.Limiter
	log     *applogger.Logger
}

// New creates a new Agmarknet feed client.
func New(cfg Config, limiter *ratelimit.Limiter, l *applogger.Logger) drepo.FeedSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if cfg.MaxRPS <= 0 {
		cfg.MaxRPS = 1
	}
	return &Client{
		cfg:     cfg,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: limiter,
		log:     l,
	}
}

// Upstream serves every field as a string, including prices.
type rawRecord struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Market      string `json:"market"`
	Commodity   string `json:"commodity"`
	Variety     string `json:"variety"`
	ArrivalDate string `json:"arrival_date"`
	MinPrice    string `json:"min_price"`
	MaxPrice    string `json:"max_price"`
	ModalPrice  string `json:"modal_price"`
}

type feedEnvelope struct {
	Total   int         `json:"total"`
	Count   int         `json:"count"`
	Records []rawRecord `json:"records"`
}

// Fetch pulls records matching the request filters. Failures surface as
// upstream errors, never as a silent empty result.
func (c *Client) Fetch(ctx context.Context, req models.FeedRequest) ([]models.FeedRecord, error) {
	if c.limiter != nil && !c.limiter.Allow(limiterKey, c.cfg.MaxRPS, c.cfg.MaxRPS) {
		return nil, xhttp.BadGatewayErrorf("government feed rate limit exhausted")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	params := map[string][]string{
		"api-key": {c.cfg.APIKey},
		"format":  {"json"},
		"limit":   {strconv.Itoa(limit)},
	}
	if req.State != "" {
		params["filters[state]"] = []string{req.State}
	}
	if req.District != "" {
		params["filters[district]"] = []string{req.District}
	}
	if req.Commodity != "" {
		params["filters[commodity]"] = []string{req.Commodity}
	}

	start := time.Now()
	var envelope feedEnvelope
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         fmt.Sprintf("%s/resource/%s", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.ResourceID),
		QueryParams: params,
	}, &envelope)
	if err != nil {
		if c.log != nil {
			c.log.Warn("agmarknet fetch failed",
				applogger.String("commodity", req.Commodity),
				applogger.String("state", req.State),
				applogger.Error(err))
		}
		return nil, xhttp.BadGatewayErrorf("agmarknet fetch: %v", err)
	}
	if c.log != nil {
		c.log.Debug("agmarknet fetch",
			applogger.String("commodity", req.Commodity),
			applogger.Int("records", len(envelope.Records)),
			applogger.Duration("took", time.Since(start)))
	}

	records := make([]models.FeedRecord, 0, len(envelope.Records))
	for _, r := range envelope.Records {
		records = append(records, models.FeedRecord{
			State:       r.State,
			District:    r.District,
			Market:      r.Market,
			Commodity:   r.Commodity,
			Variety:     r.Variety,
			ArrivalDate: r.ArrivalDate,
			MinPrice:    parsePrice(r.MinPrice),
			MaxPrice:    parsePrice(r.MaxPrice),
			ModalPrice:  parsePrice(r.ModalPrice),
		})
	}
	return records, nil
}

// parsePrice reads an upstream price string, tolerating blanks, "NR"
// markers, and thousands separators. Unparseable values become 0.
func parsePrice(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || strings.EqualFold(s, "nr") {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ToObservation converts a feed record to a price observation. Records
// without a usable modal price or arrival date are rejected.
func ToObservation(rec models.FeedRecord) (models.PriceObservation, bool) {
	if rec.ModalPrice <= 0 {
		return models.PriceObservation{}, false
	}
	date, err := time.Parse(arrivalDateFormat, strings.TrimSpace(rec.ArrivalDate))
	if err != nil {
		// Some resource variants serve ISO dates instead.
		date, err = time.Parse(util.DayFormat, strings.TrimSpace(rec.ArrivalDate))
		if err != nil {
			return models.PriceObservation{}, false
		}
	}
	return models.PriceObservation{
		Commodity:  rec.Commodity,
		Variety:    rec.Variety,
		Market:     rec.Market,
		State:      rec.State,
		District:   rec.District,
		PriceDate:  date,
		MinPrice:   rec.MinPrice,
		MaxPrice:   rec.MaxPrice,
		ModalPrice: rec.ModalPrice,
	}, true
}
