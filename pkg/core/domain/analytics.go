package domain

import "time"

type CountryClicks struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

type DeviceClicks struct {
	DeviceType string `json:"type"`
	Count      int64  `json:"count"`
}

type ReferrerClicks struct {
	Referrer string `json:"referrer"`
	Count    int64  `json:"count"`
}

type HourClicks struct {
	Hour  int   `json:"hour"` // 0-23, UTC
	Count int64 `json:"count"`
}

// AnalyticsSnapshot is the dashboard view over a link or the whole system
type AnalyticsSnapshot struct {
	TotalLinks   int             `json:"total_links"`
	TotalClicks  int             `json:"total_clicks"`
	RecentEvents []Event         `json:"recent_events"` // Newest first
	TopCountries []CountryClicks `json:"top_countries"`
	ClicksByHour []HourClicks    `json:"clicks_by_hour"`
	DeviceStats  []DeviceClicks  `json:"device_stats"`
}

// Summary aggregates all events newer than a named time range
type Summary struct {
	TimeRange          string           `json:"time_range"`
	Since              time.Time        `json:"since"`
	TotalClicks        int              `json:"total_clicks"`
	UniqueCountries    int              `json:"unique_countries"`
	TopReferrers       []ReferrerClicks `json:"top_referrers"`
	HourlyDistribution []HourClicks     `json:"hourly_distribution"` // Non-empty hours only
}
