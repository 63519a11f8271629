package analytics

import (
	"time"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
)

const (
	// RecentLinkEvents is the recent-events size of a single link view
	RecentLinkEvents = 10
	// RecentGlobalEvents is the recent-events size of the system-wide view
	RecentGlobalEvents = 20

	SummaryReferrers = 5
)

// Snapshot aggregates a scoped event set. Country and device breakdowns only
// contain categories present in events.
func Snapshot(totalLinks int, events []domain.Event, recent int) *domain.AnalyticsSnapshot {
	return &domain.AnalyticsSnapshot{
		TotalLinks:   totalLinks,
		TotalClicks:  len(events),
		RecentEvents: Recent(events, recent),
		TopCountries: ClicksByCountry(events),
		ClicksByHour: ClicksByHour(events),
		DeviceStats:  DeviceStats(events),
	}
}

// Summarize windows events by r relative to now and aggregates the rest
func Summarize(events []domain.Event, r Range, now time.Time) *domain.Summary {
	since := r.Cutoff(now)
	windowed := WindowFilter(events, since)

	return &domain.Summary{
		TimeRange:          string(r),
		Since:              since,
		TotalClicks:        len(windowed),
		UniqueCountries:    UniqueCountries(windowed),
		TopReferrers:       TopReferrers(windowed, SummaryReferrers),
		HourlyDistribution: NonEmptyHours(ClicksByHour(windowed)),
	}
}
