package agmarknet

import (
	"testing"

	"AgriPulse/internal/domain/models"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"6200", 6200},
		{"6,200", 6200},
		{" 1850.50 ", 1850.5},
		{"", 0},
		{"NR", 0},
		{"n/a", 0},
	}
	for _, c := range cases {
		if got := parsePrice(c.in); got != c.want {
			t.Fatalf("parsePrice(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestToObservation(t *testing.T) {
	rec := models.FeedRecord{
		State:       "Gujarat",
		District:    "Rajkot",
		Market:      "Rajkot",
		Commodity:   "Cotton",
		Variety:     "Shankar 6",
		ArrivalDate: "15/06/2025",
		MinPrice:    5800,
		MaxPrice:    6400,
		ModalPrice:  6200,
	}
	obs, ok := ToObservation(rec)
	if !ok {
		t.Fatal("expected conversion to succeed")
	}
	if obs.PriceDate.Format("2006-01-02") != "2025-06-15" {
		t.Fatalf("date = %s, want 2025-06-15", obs.PriceDate.Format("2006-01-02"))
	}
	if obs.ModalPrice != 6200 || obs.Market != "Rajkot" {
		t.Fatalf("unexpected observation: %+v", obs)
	}
}

func TestToObservationISODate(t *testing.T) {
	rec := models.FeedRecord{Commodity: "Wheat", ArrivalDate: "2025-06-15", ModalPrice: 2200}
	obs, ok := ToObservation(rec)
	if !ok {
		t.Fatal("expected ISO date to parse")
	}
	if obs.PriceDate.Day() != 15 {
		t.Fatalf("day = %d, want 15", obs.PriceDate.Day())
	}
}

func TestToObservationRejects(t *testing.T) {
	if _, ok := ToObservation(models.FeedRecord{ArrivalDate: "15/06/2025", ModalPrice: 0}); ok {
		t.Fatal("expected rejection for zero modal price")
	}
	if _, ok := ToObservation(models.FeedRecord{ArrivalDate: "garbage", ModalPrice: 100}); ok {
		t.Fatal("expected rejection for bad date")
	}
}
