package models

import "time"

// PriceObservation is a single mandi price record for a commodity at a market.
// minPrice <= modalPrice <= maxPrice is expected but not enforced; upstream
// data violates it often enough that consumers must tolerate it.
type PriceObservation struct {
	Commodity       string    `json:"commodity"`
	Variety         string    `json:"variety,omitempty"`
	Market          string    `json:"market"`
	State           string    `json:"state"`
	District        string    `json:"district"`
	PriceDate       time.Time `json:"priceDate"`
	MinPrice        float64   `json:"minPrice"`
	MaxPrice        float64   `json:"maxPrice"`
	ModalPrice      float64   `json:"modalPrice"`
	ArrivalQuantity float64   `json:"arrivalQuantity"`
	IsSynthetic     bool      `json:"isSynthetic,omitempty"`
}

// FeedRecord is a normalized government feed row. Upstream serves every
// field as a string; the feed client parses prices and dates during decode.
type FeedRecord struct {
	State       string  `json:"state"`
	District    string  `json:"district"`
	Market      string  `json:"market"`
	Commodity   string  `json:"commodity"`
	Variety     string  `json:"variety,omitempty"`
	ArrivalDate string  `json:"arrivalDate"`
	MinPrice    float64 `json:"minPrice"`
	MaxPrice    float64 `json:"maxPrice"`
	ModalPrice  float64 `json:"modalPrice"`
}
