package db

import (
	"time"
)

// Period selects the time window for workout statistics.
type Period string

// Recognized statistics periods
const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod maps a raw query value to a Period. Unrecognized values
// fall back to PeriodAll (unfiltered); the permissive default is kept
// from the original behavior, made explicit here.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s)
	default:
		return PeriodAll
	}
}

// Cutoff returns the window start relative to now, and whether the
// period filters at all. PeriodAll reports ok=false.
func (p Period) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return now.AddDate(0, 0, -30), true
	case PeriodYear:
		return now.AddDate(0, 0, -365), true
	default:
		return time.Time{}, false
	}
}
