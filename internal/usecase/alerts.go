package usecase

import (
	"context"
	"strings"

	"AgriPulse/internal/domain/models"
	domrepo "AgriPulse/internal/domain/repository"
	"AgriPulse/internal/services/analytics"
	xhttp "AgriPulse/pkg/http"
	applogger "AgriPulse/pkg/logger"
	"AgriPulse/pkg/util"
)

// MaxActiveAlertsPerUser caps how many active alerts one user may hold.
const MaxActiveAlertsPerUser = 20

// AlertService evaluates price alerts against live observations and fans
// out trigger events. Evaluation itself is stateless; persisting the
// transition belongs to the marketplace layer.
type AlertService struct {
	store    domrepo.PriceStore
	notifier domrepo.AlertNotifier
	metrics  domrepo.Metrics
	clock    util.Clock
	log      *applogger.Logger
}

func NewAlertService(store domrepo.PriceStore, notifier domrepo.AlertNotifier, metrics domrepo.Metrics, clock util.Clock, l *applogger.Logger) *AlertService {
	return &AlertService{store: store, notifier: notifier, metrics: metrics, clock: clock, log: l}
}

// EvaluateAlert matches one alert against one observation.
//
// The equals condition compares floats exactly. That almost never fires
// for fractional prices and looks like a latent bug upstream, but fixing
// it silently would change alert behavior for existing users; keep it
// until the product owner decides otherwise.
func EvaluateAlert(alert models.PriceAlert, obs models.PriceObservation) models.AlertEvaluation {
	price := alert.PriceField.Select(obs)

	triggered := false
	switch alert.Condition {
	case models.ConditionAbove:
		triggered = price >= alert.TargetPrice
	case models.ConditionBelow:
		triggered = price <= alert.TargetPrice
	case models.ConditionEquals:
		triggered = price == alert.TargetPrice
	}

	status := models.AlertStatusPending
	if triggered {
		status = models.AlertStatusTriggered
	}

	difference := price - alert.TargetPrice
	var percentage float64
	if alert.TargetPrice != 0 {
		percentage = analytics.Round2(difference / alert.TargetPrice * 100)
	}

	return models.AlertEvaluation{
		CurrentPrice: price,
		TargetPrice:  alert.TargetPrice,
		Difference:   difference,
		Percentage:   percentage,
		Status:       status,
	}
}

// EvaluateLive evaluates an alert against the supplied observation, or
// against the latest matching store row when none is given. A trigger
// publishes a notification event; publish failures are logged, not
// surfaced, since the evaluation result itself is still valid.
func (s *AlertService) EvaluateLive(ctx context.Context, req models.AlertEvaluateRequest) (*models.AlertEvaluation, error) {
	if req.Alert.Crop == "" {
		return nil, xhttp.BadRequestError("alert crop is required")
	}

	obs := req.Observation
	if obs == nil {
		latest, err := s.store.Latest(ctx, domrepo.PriceFilter{
			Commodity: req.Alert.Crop,
			Variety:   req.Alert.Variety,
			Market:    req.Alert.Market,
			State:     req.Alert.State,
		})
		if err != nil {
			if s.metrics != nil {
				s.metrics.RecordError("alert_lookup")
			}
			return nil, err
		}
		if latest == nil {
			return nil, xhttp.NotFoundError("no price observations match the alert scope")
		}
		obs = latest
	}

	eval := EvaluateAlert(req.Alert, *obs)
	if s.metrics != nil {
		s.metrics.RecordAlertEvaluation(eval.Status)
	}

	if eval.Status == models.AlertStatusTriggered && s.notifier != nil {
		ev := models.AlertTriggerEvent{
			AlertID:      req.Alert.ID,
			UserID:       req.Alert.UserID,
			Crop:         req.Alert.Crop,
			Market:       req.Alert.Market,
			State:        req.Alert.State,
			CurrentPrice: eval.CurrentPrice,
			TargetPrice:  eval.TargetPrice,
			TriggeredAt:  s.clock.Now(),
		}
		if err := s.notifier.NotifyTriggered(ctx, ev); err != nil {
			if s.log != nil {
				s.log.Warn("alert trigger publish failed",
					applogger.String("user", req.Alert.UserID),
					applogger.String("crop", req.Alert.Crop),
					applogger.Error(err))
			}
			if s.metrics != nil {
				s.metrics.RecordError("alert_publish")
			}
		}
	}

	return &eval, nil
}

// ValidateCreate enforces creation invariants for the collaborator layer:
// at most MaxActiveAlertsPerUser active alerts, and no active duplicate of
// the same crop, condition, and target price.
func ValidateCreate(existing []models.PriceAlert, candidate models.PriceAlert) error {
	active := 0
	for _, a := range existing {
		if !a.IsActive {
			continue
		}
		active++
		if strings.EqualFold(a.Crop, candidate.Crop) &&
			a.Condition == candidate.Condition &&
			a.TargetPrice == candidate.TargetPrice {
			return xhttp.BadRequestError("an identical active alert already exists")
		}
	}
	if active >= MaxActiveAlertsPerUser {
		return xhttp.BadRequestErrorf("active alert limit of %d reached", MaxActiveAlertsPerUser)
	}
	return nil
}

// UpdateTarget changes the target price and resets trigger state so the
// alert must fire again against the new target.
func UpdateTarget(alert *models.PriceAlert, target float64) {
	alert.TargetPrice = target
	alert.ResetTrigger()
}
