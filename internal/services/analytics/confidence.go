package analytics

import "AgriPulse/internal/domain/models"

// CV breakpoints separating the confidence tiers.
const (
	CVHighBelow   = 10.0
	CVMediumBelow = 20.0

	ScoreHigh   = 85.0
	ScoreMedium = 65.0
	ScoreLow    = 45.0
)

const (
	msgHigh   = "Price predictions are highly reliable based on stable historical trends."
	msgMedium = "Price predictions are moderately reliable. Market shows some volatility."
	msgLow    = "Price predictions have lower reliability due to high market volatility."
)

// AssessConfidence grades prediction reliability from the coefficient of
// variation of the historical modal-price series.
func AssessConfidence(prices []float64) models.ConfidenceAssessment {
	stats, ok := ComputeStatistics(prices)
	if !ok {
		return models.ConfidenceAssessment{Level: "low", Score: ScoreLow, Message: msgLow}
	}

	cv := CoefficientOfVariation(stats)
	switch {
	case cv < CVHighBelow:
		return models.ConfidenceAssessment{Level: "high", Score: ScoreHigh, Message: msgHigh}
	case cv < CVMediumBelow:
		return models.ConfidenceAssessment{Level: "medium", Score: ScoreMedium, Message: msgMedium}
	default:
		return models.ConfidenceAssessment{Level: "low", Score: ScoreLow, Message: msgLow}
	}
}
