package analytics

import (
	"time"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
)

// Range is a named look-back window
type Range string

const (
	RangeHour  Range = "1h"
	RangeDay   Range = "24h"
	RangeWeek  Range = "7d"
	RangeMonth Range = "30d"

	DefaultRange = RangeDay
)

// ParseRange maps a raw value to a Range. Unknown values fall back to
// DefaultRange.
func ParseRange(s string) Range {
	switch r := Range(s); r {
	case RangeHour, RangeDay, RangeWeek, RangeMonth:
		return r
	}
	return DefaultRange
}

func (r Range) Duration() time.Duration {
	switch r {
	case RangeHour:
		return time.Hour
	case RangeWeek:
		return 7 * 24 * time.Hour
	case RangeMonth:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Cutoff returns the earliest timestamp still inside the window ending at now
func (r Range) Cutoff(now time.Time) time.Time {
	return now.Add(-r.Duration())
}

// WindowFilter keeps events with a timestamp at or after cutoff
func WindowFilter(events []domain.Event, cutoff time.Time) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if !e.Timestamp.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
