package models

// Requests for market HTTP endpoints. Defined in domain for consistency and reuse.

type TrendRequest struct {
	Commodity string `query:"commodity" json:"commodity" validate:"required"`
	Variety   string `query:"variety" json:"variety"`
	Market    string `query:"market" json:"market"`
	State     string `query:"state" json:"state"`
	Period    string `query:"period" json:"period" default:"7d" validate:"oneof=7d 30d 90d 1y 365d"`
}

type PredictionRequest struct {
	Commodity string `query:"commodity" json:"commodity" validate:"required"`
	Variety   string `query:"variety" json:"variety"`
	Market    string `query:"market" json:"market"`
	State     string `query:"state" json:"state"`
	Days      int    `query:"days" json:"days" default:"7" validate:"gte=1,lte=30"`
}

type CompareRequest struct {
	Commodity string `query:"commodity" json:"commodity" validate:"required"`
	Markets   string `query:"markets" json:"markets"` // comma-separated market names
	States    string `query:"states" json:"states"`   // comma-separated state names
	Period    string `query:"period" json:"period" default:"today" validate:"oneof=today 7d 30d"`
}

type FeedRequest struct {
	State     string `query:"state" json:"state"`
	District  string `query:"district" json:"district"`
	Commodity string `query:"commodity" json:"commodity"`
	Limit     int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
}

type AlertEvaluateRequest struct {
	Alert PriceAlert `json:"alert" validate:"required"`
	// Observation overrides the store lookup when supplied, useful for
	// replaying a known record.
	Observation *PriceObservation `json:"observation"`
}

type TickerRequest struct {
	Commodity string `query:"commodity" json:"commodity" validate:"required"`
	Market    string `query:"market" json:"market"`
	State     string `query:"state" json:"state"`
}
