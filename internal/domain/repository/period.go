package repository

// Period represents a trend/prediction lookback window token.
type Period string

const (
	Period7d   Period = "7d"
	Period30d  Period = "30d"
	Period90d  Period = "90d"
	Period1y   Period = "1y"
	Period365d Period = "365d"
)

// IsValidPeriod returns true if p is a supported period.
func IsValidPeriod(p Period) bool {
	switch p {
	case Period7d, Period30d, Period90d, Period1y, Period365d:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default lookback window.
func DefaultPeriod() Period { return Period7d }

// NormalizePeriod converts raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// Days returns the calendar-day span of the period.
func (p Period) Days() int {
	switch p {
	case Period30d:
		return 30
	case Period90d:
		return 90
	case Period1y, Period365d:
		return 365
	default:
		return 7
	}
}

// ComparisonPeriod represents a market comparison window token.
type ComparisonPeriod string

const (
	CompareToday ComparisonPeriod = "today"
	Compare7d    ComparisonPeriod = "7d"
	Compare30d   ComparisonPeriod = "30d"
)

// NormalizeComparisonPeriod converts raw string to a valid comparison
// period (or the default, today).
func NormalizeComparisonPeriod(s string) ComparisonPeriod {
	switch ComparisonPeriod(s) {
	case Compare7d, Compare30d, CompareToday:
		return ComparisonPeriod(s)
	default:
		return CompareToday
	}
}

// Days returns the lookback span; today spans zero whole days (the window
// starts at the beginning of the current day).
func (p ComparisonPeriod) Days() int {
	switch p {
	case Compare7d:
		return 7
	case Compare30d:
		return 30
	default:
		return 0
	}
}
