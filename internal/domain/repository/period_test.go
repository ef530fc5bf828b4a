package repository

import "testing"

func TestNormalizePeriod(t *testing.T) {
	cases := []struct {
		in   string
		want Period
		days int
	}{
		{"", Period7d, 7},
		{"7d", Period7d, 7},
		{"30d", Period30d, 30},
		{"90d", Period90d, 90},
		{"1y", Period1y, 365},
		{"365d", Period365d, 365},
		{"2w", Period7d, 7},
		{"garbage", Period7d, 7},
	}
	for _, c := range cases {
		got := NormalizePeriod(c.in)
		if got != c.want {
			t.Fatalf("NormalizePeriod(%q) = %q, want %q", c.in, got, c.want)
		}
		if got.Days() != c.days {
			t.Fatalf("Period(%q).Days() = %d, want %d", got, got.Days(), c.days)
		}
	}
}

func TestNormalizeComparisonPeriod(t *testing.T) {
	cases := []struct {
		in   string
		want ComparisonPeriod
		days int
	}{
		{"", CompareToday, 0},
		{"today", CompareToday, 0},
		{"7d", Compare7d, 7},
		{"30d", Compare30d, 30},
		{"90d", CompareToday, 0},
	}
	for _, c := range cases {
		got := NormalizeComparisonPeriod(c.in)
		if got != c.want {
			t.Fatalf("NormalizeComparisonPeriod(%q) = %q, want %q", c.in, got, c.want)
		}
		if got.Days() != c.days {
			t.Fatalf("ComparisonPeriod(%q).Days() = %d, want %d", got, got.Days(), c.days)
		}
	}
}
