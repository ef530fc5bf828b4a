package models

import "time"

// AlertCondition compares an observed price against the target.
type AlertCondition string

const (
	ConditionAbove  AlertCondition = "above"
	ConditionBelow  AlertCondition = "below"
	ConditionEquals AlertCondition = "equals"
)

// PriceField selects which price of an observation an alert watches.
type PriceField string

const (
	FieldModal PriceField = "modal"
	FieldMin   PriceField = "min"
	FieldMax   PriceField = "max"
)

// Select reads the configured price from an observation. Unknown values
// fall back to the modal price.
func (f PriceField) Select(o PriceObservation) float64 {
	switch f {
	case FieldMin:
		return o.MinPrice
	case FieldMax:
		return o.MaxPrice
	default:
		return o.ModalPrice
	}
}

// Alert evaluation outcomes.
const (
	AlertStatusTriggered = "triggered"
	AlertStatusPending   = "pending"
)

// PriceAlert is a user-defined price watch. The engine only evaluates it;
// persistence and notification delivery belong to the marketplace layer.
type PriceAlert struct {
	ID             string         `json:"id,omitempty"`
	UserID         string         `json:"userId"`
	Crop           string         `json:"crop" validate:"required"`
	Variety        string         `json:"variety,omitempty"`
	Market         string         `json:"market,omitempty"`
	State          string         `json:"state,omitempty"`
	Condition      AlertCondition `json:"condition" validate:"required,oneof=above below equals"`
	TargetPrice    float64        `json:"targetPrice" validate:"required,gt=0"`
	PriceField     PriceField     `json:"priceType" default:"modal" validate:"omitempty,oneof=modal min max"`
	NotifyChannels []string       `json:"notifyChannels,omitempty"`
	ExpiresAt      *time.Time     `json:"expiresAt,omitempty"`
	IsActive       bool           `json:"isActive"`
	TriggeredAt    *time.Time     `json:"triggeredAt,omitempty"`
	TriggeredPrice *float64       `json:"triggeredPrice,omitempty"`
}

// ResetTrigger clears trigger state. Called when the target price is edited
// so the alert must trigger again against the new target.
func (a *PriceAlert) ResetTrigger() {
	a.TriggeredAt = nil
	a.TriggeredPrice = nil
}

// AlertEvaluation is the outcome of matching one alert against one
// observation.
type AlertEvaluation struct {
	CurrentPrice float64 `json:"currentPrice"`
	TargetPrice  float64 `json:"targetPrice"`
	Difference   float64 `json:"difference"`
	Percentage   float64 `json:"percentage"`
	Status       string  `json:"status"` // "triggered", "pending"
}

// AlertTriggerEvent is published to Kafka when an evaluation reports
// triggered, for the notification pipeline downstream.
type AlertTriggerEvent struct {
	AlertID      string    `json:"alertId,omitempty"`
	UserID       string    `json:"userId"`
	Crop         string    `json:"crop"`
	Market       string    `json:"market,omitempty"`
	State        string    `json:"state,omitempty"`
	CurrentPrice float64   `json:"currentPrice"`
	TargetPrice  float64   `json:"targetPrice"`
	TriggeredAt  time.Time `json:"triggeredAt"`
}
