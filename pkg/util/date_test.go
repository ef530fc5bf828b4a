package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2026-08-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeDay(t *testing.T) {
	got, ok := ParseTime("2026-08-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if DayKey(got) != "2026-08-10" {
		t.Fatalf("unexpected day %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2026, 8, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2026, 8, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 8, 10, 17, 45, 3, 0, time.UTC)
	got := StartOfDay(in)
	if got.Hour() != 0 || got.Minute() != 0 || !got.Equal(time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start of day %v", got)
	}
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV(" Azadpur , , Pune ")
	if len(got) != 2 || got[0] != "Azadpur" || got[1] != "Pune" {
		t.Fatalf("unexpected split %v", got)
	}
	if SplitCSV("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
