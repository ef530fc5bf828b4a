package models

// ConfidenceRange bounds a predicted price.
type ConfidenceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// PredictionPoint is one projected future daily price.
type PredictionPoint struct {
	Date            string          `json:"date"`
	PredictedPrice  float64         `json:"predictedPrice"`
	ConfidenceRange ConfidenceRange `json:"confidenceRange"`
	TrendDirection  string          `json:"trendDirection"` // "up", "down", "stable"
}

// ConfidenceAssessment grades prediction reliability from historical
// volatility. Recomputed per request, never persisted.
type ConfidenceAssessment struct {
	Level   string  `json:"level"` // "high", "medium", "low"
	Score   float64 `json:"score"`
	Message string  `json:"message"`
}

// HistoryPoint is one historical modal price entry returned for charting.
type HistoryPoint struct {
	Date            string  `json:"date"`
	Price           float64 `json:"price"`
	ArrivalQuantity float64 `json:"arrivalQuantity"`
	IsSynthetic     bool    `json:"isSynthetic,omitempty"`
}

// PredictionResponse is the payload of GET /api/market/predictions.
type PredictionResponse struct {
	Commodity   string               `json:"commodity"`
	Predictions []PredictionPoint    `json:"predictions"`
	History     []HistoryPoint       `json:"history"`
	Confidence  ConfidenceAssessment `json:"confidence"`
	Disclaimer  string               `json:"disclaimer"`
}
