package models

// MarketComparisonRow is one market's aggregate over the comparison window.
type MarketComparisonRow struct {
	Market           string  `json:"market"`
	State            string  `json:"state"`
	District         string  `json:"district"`
	AvgMinPrice      float64 `json:"avgMinPrice"`
	AvgMaxPrice      float64 `json:"avgMaxPrice"`
	AvgModalPrice    float64 `json:"avgModalPrice"`
	TotalArrival     float64 `json:"totalArrival"`
	ObservationCount int     `json:"observationCount"`
}

// ComparisonStatistics summarizes the spread across market averages.
type ComparisonStatistics struct {
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
	AvgPrice   float64 `json:"avgPrice"`
	PriceRange float64 `json:"priceRange"`
}

// ComparisonResponse is the payload of GET /api/market/compare. When no
// observations match, Markets is empty and both recommendations are nil;
// the shape itself is always well formed.
type ComparisonResponse struct {
	Commodity        string                `json:"commodity"`
	Period           string                `json:"period"`
	Markets          []MarketComparisonRow `json:"markets"`
	BestMarketToBuy  *MarketComparisonRow  `json:"bestMarketToBuy"`
	BestMarketToSell *MarketComparisonRow  `json:"bestMarketToSell"`
	Statistics       ComparisonStatistics  `json:"statistics"`
}
