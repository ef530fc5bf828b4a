package usecase

import (
	"context"
	"encoding/json"
	"time"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	pkgkafka "AgriPulse/pkg/kafka"
	"AgriPulse/pkg/util"
)

// KafkaPricesHandler consumes raw price records published by the
// marketplace and writes them to storage.
type KafkaPricesHandler struct {
	topic   string
	proc    *ObservationProcessor
	metrics domrepo.Metrics
}

func NewKafkaPricesHandler(topic string, proc *ObservationProcessor, metrics domrepo.Metrics) *KafkaPricesHandler {
	return &KafkaPricesHandler{topic: topic, proc: proc, metrics: metrics}
}

func (h *KafkaPricesHandler) Topic() string { return h.topic }

// incoming message schema mirrors PriceObservation with a string date
type pricesMessage struct {
	Commodity       string  `json:"commodity"`
	Variety         string  `json:"variety"`
	Market          string  `json:"market"`
	State           string  `json:"state"`
	District        string  `json:"district"`
	PriceDate       string  `json:"priceDate"`
	MinPrice        float64 `json:"minPrice"`
	MaxPrice        float64 `json:"maxPrice"`
	ModalPrice      float64 `json:"modalPrice"`
	ArrivalQuantity float64 `json:"arrivalQuantity"`
}

func (h *KafkaPricesHandler) Handle(ctx context.Context, b []byte) error {
	var m pricesMessage
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}

	date, ok := util.ParseTime(m.PriceDate)
	if !ok {
		date = time.Time{}
	}

	start := time.Now()
	err := h.proc.Process(ctx, "kafka", []*models.PriceObservation{{
		Commodity:       m.Commodity,
		Variety:         m.Variety,
		Market:          m.Market,
		State:           m.State,
		District:        m.District,
		PriceDate:       date,
		MinPrice:        m.MinPrice,
		MaxPrice:        m.MaxPrice,
		ModalPrice:      m.ModalPrice,
		ArrivalQuantity: m.ArrivalQuantity,
	}})
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaPricesHandler)(nil)
