package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"AgriPulse/internal/domain/models"
)

func TestProcessDropsInvalidRows(t *testing.T) {
	store := &fakeStore{}
	p := NewObservationProcessor(store, nil, nil)

	obs := []*models.PriceObservation{
		{Commodity: "Wheat", ModalPrice: 2000, PriceDate: testNow},
		nil,
		{Commodity: "", ModalPrice: 2000, PriceDate: testNow},
		{Commodity: "Rice", ModalPrice: 0, PriceDate: testNow},
		{Commodity: "Rice", ModalPrice: 1800},
		{Commodity: "Onion", ModalPrice: 1500, PriceDate: testNow.AddDate(0, 0, -1)},
	}
	if err := p.Process(context.Background(), "test", obs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.obs) != 2 {
		t.Fatalf("stored rows = %d, want 2", len(store.obs))
	}
	if store.obs[0].Commodity != "Wheat" || store.obs[1].Commodity != "Onion" {
		t.Fatalf("unexpected stored rows: %+v", store.obs)
	}
}

func TestProcessEmptyAndAllInvalid(t *testing.T) {
	store := &fakeStore{err: errors.New("must not be called")}
	p := NewObservationProcessor(store, nil, nil)

	if err := p.Process(context.Background(), "test", nil); err != nil {
		t.Fatalf("empty batch must be a no-op: %v", err)
	}
	if err := p.Process(context.Background(), "test", []*models.PriceObservation{
		{Commodity: "", ModalPrice: 100, PriceDate: time.Now()},
	}); err != nil {
		t.Fatalf("all-invalid batch must be a no-op: %v", err)
	}
}

func TestProcessPropagatesStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("insert failed")}
	p := NewObservationProcessor(store, nil, nil)

	err := p.Process(context.Background(), "test", []*models.PriceObservation{
		{Commodity: "Wheat", ModalPrice: 2000, PriceDate: testNow},
	})
	if err == nil {
		t.Fatal("expected store error to propagate")
	}
}
