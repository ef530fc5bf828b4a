package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	pkgch "AgriPulse/pkg/clickhouse"
	applogger "AgriPulse/pkg/logger"
)

const (
	priceTable = "agripulse.mandi_prices"

	// maxQueryRows bounds any single range query; engine computations
	// operate on small in-memory slices.
	maxQueryRows = 2000
)

var priceSchema = []string{
	`CREATE DATABASE IF NOT EXISTS agripulse`,
	`CREATE TABLE IF NOT EXISTS agripulse.mandi_prices (
        price_date   Date,
        commodity    LowCardinality(String),
        variety      String,
        market       LowCardinality(String),
        state        LowCardinality(String),
        district     LowCardinality(String),
        min_price    Float64,
        max_price    Float64,
        modal_price  Float64,
        arrival_qty  Float64,
        inserted_at  DateTime DEFAULT now()
    ) ENGINE = MergeTree
    PARTITION BY toYYYYMM(price_date)
    ORDER BY (commodity, state, market, price_date)`,
}

// CHPriceStore implements PriceStore backed by ClickHouse.
type CHPriceStore struct {
	ch *pkgch.Client
	db *sql.DB
	l  *applogger.Logger
}

func NewCHPriceStore(ch *pkgch.Client) *CHPriceStore {
	return &CHPriceStore{ch: ch, db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHPriceStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHPriceStore) Init(ctx context.Context) error {
	return s.ch.InitSchema(ctx, priceSchema)
}

func (s *CHPriceStore) Store(ctx context.Context, o *models.PriceObservation) error {
	q := fmt.Sprintf(`INSERT INTO %s
        (price_date, commodity, variety, market, state, district, min_price, max_price, modal_price, arrival_qty)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, priceTable)
	_, err := s.db.ExecContext(ctx, q,
		o.PriceDate,
		o.Commodity,
		o.Variety,
		o.Market,
		o.State,
		o.District,
		o.MinPrice,
		o.MaxPrice,
		o.ModalPrice,
		o.ArrivalQuantity,
	)
	return err
}

func (s *CHPriceStore) StoreBatch(ctx context.Context, obs []*models.PriceObservation) error {
	if len(obs) == 0 {
		return nil
	}
	// Multi-row VALUES to reduce round-trips, chunked to keep statements
	// bounded.
	const chunkSize = 2000
	for start := 0; start < len(obs); start += chunkSize {
		end := start + chunkSize
		if end > len(obs) {
			end = len(obs)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*10)
		for _, o := range obs[start:end] {
			if o == nil || o.Commodity == "" || o.ModalPrice <= 0 {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				o.PriceDate,
				o.Commodity,
				o.Variety,
				o.Market,
				o.State,
				o.District,
				o.MinPrice,
				o.MaxPrice,
				o.ModalPrice,
				o.ArrivalQuantity,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf(`INSERT INTO %s
            (price_date, commodity, variety, market, state, district, min_price, max_price, modal_price, arrival_qty)
            VALUES %s`, priceTable, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *CHPriceStore) Query(ctx context.Context, filter domrepo.PriceFilter, from, to time.Time, limit int) ([]models.PriceObservation, error) {
	start := time.Now()
	if limit <= 0 || limit > maxQueryRows {
		limit = maxQueryRows
	}

	where, args := buildConditions(filter)
	where = append(where, "price_date >= ?", "price_date <= ?")
	args = append(args, from, to)

	q := fmt.Sprintf(`SELECT price_date, commodity, variety, market, state, district,
            min_price, max_price, modal_price, arrival_qty
        FROM %s
        WHERE %s
        ORDER BY price_date ASC
        LIMIT ?`, priceTable, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse price query error",
				applogger.String("commodity", filter.Commodity),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	out := make([]models.PriceObservation, 0, 256)
	for rows.Next() {
		var o models.PriceObservation
		if err := rows.Scan(&o.PriceDate, &o.Commodity, &o.Variety, &o.Market, &o.State, &o.District,
			&o.MinPrice, &o.MaxPrice, &o.ModalPrice, &o.ArrivalQuantity); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse price scan error",
					applogger.String("commodity", filter.Commodity),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan price: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse price query ok",
			applogger.String("commodity", filter.Commodity),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHPriceStore) Latest(ctx context.Context, filter domrepo.PriceFilter) (*models.PriceObservation, error) {
	where, args := buildConditions(filter)

	q := fmt.Sprintf(`SELECT price_date, commodity, variety, market, state, district,
            min_price, max_price, modal_price, arrival_qty
        FROM %s
        WHERE %s
        ORDER BY price_date DESC
        LIMIT 1`, priceTable, strings.Join(where, " AND "))

	var o models.PriceObservation
	err := s.db.QueryRowContext(ctx, q, args...).Scan(
		&o.PriceDate, &o.Commodity, &o.Variety, &o.Market, &o.State, &o.District,
		&o.MinPrice, &o.MaxPrice, &o.ModalPrice, &o.ArrivalQuantity)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest price: %w", err)
	}
	return &o, nil
}

func (s *CHPriceStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHPriceStore) Close() error {
	return nil // connection managed by pkg/clickhouse
}

// buildConditions translates a PriceFilter into WHERE clauses. Commodity
// matches as a case-insensitive substring, everything else exactly.
func buildConditions(filter domrepo.PriceFilter) ([]string, []interface{}) {
	where := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)

	if filter.Commodity != "" {
		where = append(where, "positionCaseInsensitive(commodity, ?) > 0")
		args = append(args, filter.Commodity)
	}
	if filter.Variety != "" {
		where = append(where, "variety = ?")
		args = append(args, filter.Variety)
	}
	if filter.Market != "" {
		where = append(where, "market = ?")
		args = append(args, filter.Market)
	}
	if filter.State != "" {
		where = append(where, "state = ?")
		args = append(args, filter.State)
	}
	if filter.District != "" {
		where = append(where, "district = ?")
		args = append(args, filter.District)
	}
	if len(filter.Markets) > 0 {
		where = append(where, "market IN ("+placeholders(len(filter.Markets))+")")
		for _, m := range filter.Markets {
			args = append(args, m)
		}
	}
	if len(filter.States) > 0 {
		where = append(where, "state IN ("+placeholders(len(filter.States))+")")
		for _, st := range filter.States {
			args = append(args, st)
		}
	}
	if len(where) == 0 {
		where = append(where, "1 = 1")
	}
	return where, args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
