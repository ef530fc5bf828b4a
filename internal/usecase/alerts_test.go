package usecase

import (
	"context"
	"errors"
	"testing"

	"AgriPulse/internal/domain/models"
)

type spyNotifier struct {
	events []models.AlertTriggerEvent
	err    error
}

func (n *spyNotifier) NotifyTriggered(_ context.Context, ev models.AlertTriggerEvent) error {
	n.events = append(n.events, ev)
	return n.err
}

func (n *spyNotifier) Close() error { return nil }

func TestEvaluateAlertConditions(t *testing.T) {
	obs := models.PriceObservation{Commodity: "Wheat", ModalPrice: 1950, MinPrice: 1800, MaxPrice: 2100}

	tests := []struct {
		name       string
		condition  models.AlertCondition
		field      models.PriceField
		target     float64
		wantStatus string
		wantDiff   float64
		wantPct    float64
	}{
		{"below triggered", models.ConditionBelow, models.FieldModal, 2000, models.AlertStatusTriggered, -50, -2.5},
		{"above pending", models.ConditionAbove, models.FieldModal, 2000, models.AlertStatusPending, -50, -2.5},
		{"above triggered at target", models.ConditionAbove, models.FieldModal, 1950, models.AlertStatusTriggered, 0, 0},
		{"below triggered at target", models.ConditionBelow, models.FieldModal, 1950, models.AlertStatusTriggered, 0, 0},
		{"equals exact", models.ConditionEquals, models.FieldModal, 1950, models.AlertStatusTriggered, 0, 0},
		{"equals near miss", models.ConditionEquals, models.FieldModal, 1950.5, models.AlertStatusPending, -0.5, -0.03},
		{"min field", models.ConditionBelow, models.FieldMin, 1850, models.AlertStatusTriggered, -50, -2.7},
		{"max field", models.ConditionAbove, models.FieldMax, 2050, models.AlertStatusTriggered, 50, 2.44},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eval := EvaluateAlert(models.PriceAlert{
				Crop: "Wheat", Condition: tc.condition, PriceField: tc.field, TargetPrice: tc.target,
			}, obs)
			if eval.Status != tc.wantStatus {
				t.Fatalf("status = %q, want %q", eval.Status, tc.wantStatus)
			}
			if eval.Difference != tc.wantDiff {
				t.Fatalf("difference = %v, want %v", eval.Difference, tc.wantDiff)
			}
			if eval.Percentage != tc.wantPct {
				t.Fatalf("percentage = %v, want %v", eval.Percentage, tc.wantPct)
			}
		})
	}
}

func TestEvaluateAlertZeroTarget(t *testing.T) {
	eval := EvaluateAlert(models.PriceAlert{Condition: models.ConditionAbove}, models.PriceObservation{ModalPrice: 100})
	if eval.Percentage != 0 {
		t.Fatalf("percentage with zero target = %v, want 0", eval.Percentage)
	}
	if eval.Status != models.AlertStatusTriggered {
		t.Fatalf("status = %q, want triggered", eval.Status)
	}
}

func TestEvaluateLiveUsesLatest(t *testing.T) {
	store := &fakeStore{latest: &models.PriceObservation{Commodity: "Wheat", ModalPrice: 1950}}
	notifier := &spyNotifier{}
	svc := NewAlertService(store, notifier, nil, fixedClock{now: testNow}, nil)

	eval, err := svc.EvaluateLive(context.Background(), models.AlertEvaluateRequest{
		Alert: models.PriceAlert{ID: "a1", UserID: "u1", Crop: "Wheat", Condition: models.ConditionBelow, TargetPrice: 2000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Status != models.AlertStatusTriggered {
		t.Fatalf("status = %q, want triggered", eval.Status)
	}
	if len(notifier.events) != 1 {
		t.Fatalf("published events = %d, want 1", len(notifier.events))
	}
	ev := notifier.events[0]
	if ev.UserID != "u1" || ev.CurrentPrice != 1950 || !ev.TriggeredAt.Equal(testNow) {
		t.Fatalf("unexpected trigger event: %+v", ev)
	}
}

func TestEvaluateLiveNoMatch(t *testing.T) {
	svc := NewAlertService(&fakeStore{}, nil, nil, fixedClock{now: testNow}, nil)
	_, err := svc.EvaluateLive(context.Background(), models.AlertEvaluateRequest{
		Alert: models.PriceAlert{Crop: "Saffron", Condition: models.ConditionAbove, TargetPrice: 100},
	})
	if err == nil {
		t.Fatal("expected not-found error when no observation matches")
	}
}

func TestEvaluateLivePublishFailureIsSwallowed(t *testing.T) {
	store := &fakeStore{latest: &models.PriceObservation{Commodity: "Wheat", ModalPrice: 1950}}
	notifier := &spyNotifier{err: errors.New("broker down")}
	svc := NewAlertService(store, notifier, nil, fixedClock{now: testNow}, nil)

	eval, err := svc.EvaluateLive(context.Background(), models.AlertEvaluateRequest{
		Alert: models.PriceAlert{Crop: "Wheat", Condition: models.ConditionBelow, TargetPrice: 2000},
	})
	if err != nil {
		t.Fatalf("publish failure must not surface: %v", err)
	}
	if eval.Status != models.AlertStatusTriggered {
		t.Fatalf("status = %q, want triggered", eval.Status)
	}
}

func TestEvaluateLivePendingSkipsNotify(t *testing.T) {
	store := &fakeStore{latest: &models.PriceObservation{Commodity: "Wheat", ModalPrice: 2050}}
	notifier := &spyNotifier{}
	svc := NewAlertService(store, notifier, nil, fixedClock{now: testNow}, nil)

	eval, err := svc.EvaluateLive(context.Background(), models.AlertEvaluateRequest{
		Alert: models.PriceAlert{Crop: "Wheat", Condition: models.ConditionBelow, TargetPrice: 2000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Status != models.AlertStatusPending {
		t.Fatalf("status = %q, want pending", eval.Status)
	}
	if len(notifier.events) != 0 {
		t.Fatalf("published events = %d, want 0", len(notifier.events))
	}
}

func TestValidateCreateDuplicate(t *testing.T) {
	existing := []models.PriceAlert{
		{Crop: "Wheat", Condition: models.ConditionAbove, TargetPrice: 2200, IsActive: true},
		{Crop: "wheat", Condition: models.ConditionBelow, TargetPrice: 1800, IsActive: false},
	}
	// Same crop in a different case counts as a duplicate.
	err := ValidateCreate(existing, models.PriceAlert{Crop: "WHEAT", Condition: models.ConditionAbove, TargetPrice: 2200})
	if err == nil {
		t.Fatal("expected duplicate rejection")
	}
	// The inactive alert does not block re-creation.
	if err := ValidateCreate(existing, models.PriceAlert{Crop: "Wheat", Condition: models.ConditionBelow, TargetPrice: 1800}); err != nil {
		t.Fatalf("inactive duplicate blocked creation: %v", err)
	}
}

func TestValidateCreateCap(t *testing.T) {
	existing := make([]models.PriceAlert, 0, MaxActiveAlertsPerUser)
	for i := 0; i < MaxActiveAlertsPerUser; i++ {
		existing = append(existing, models.PriceAlert{
			Crop: "Wheat", Condition: models.ConditionAbove, TargetPrice: float64(2000 + i), IsActive: true,
		})
	}
	err := ValidateCreate(existing, models.PriceAlert{Crop: "Rice", Condition: models.ConditionAbove, TargetPrice: 3000})
	if err == nil {
		t.Fatal("expected cap rejection at limit")
	}
}

func TestUpdateTargetResetsTrigger(t *testing.T) {
	at := testNow
	price := 1950.0
	alert := models.PriceAlert{TargetPrice: 2000, TriggeredAt: &at, TriggeredPrice: &price}
	UpdateTarget(&alert, 2100)
	if alert.TargetPrice != 2100 {
		t.Fatalf("target = %v, want 2100", alert.TargetPrice)
	}
	if alert.TriggeredAt != nil || alert.TriggeredPrice != nil {
		t.Fatal("trigger state not reset")
	}
}
