package models

// TrendPoint is one daily bucket of a trend series.
type TrendPoint struct {
	Date            string  `json:"date"`
	Min             float64 `json:"min"`
	Modal           float64 `json:"modal"`
	Max             float64 `json:"max"`
	ArrivalQuantity float64 `json:"arrivalQuantity"`
	IsSynthetic     bool    `json:"isSynthetic,omitempty"`
}

// PriceRange spans the lowest min and highest max of a series.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// AIInsight is the advisory block attached to a trend response.
type AIInsight struct {
	Summary    string  `json:"summary"`
	Advice     string  `json:"advice"` // "sell", "wait", "neutral"
	Confidence float64 `json:"confidence"`
}

// TrendResponse is the payload of GET /api/market/trends.
type TrendResponse struct {
	Commodity    string       `json:"commodity"`
	Period       string       `json:"period"`
	AveragePrice float64      `json:"averagePrice"`
	PriceChange  float64      `json:"priceChange"`
	Trend        string       `json:"trend"` // "rising", "falling", "stable"
	PriceRange   PriceRange   `json:"priceRange"`
	TotalArrival float64      `json:"totalArrival"`
	AIInsight    AIInsight    `json:"aiInsight"`
	Data         []TrendPoint `json:"data"`
}
