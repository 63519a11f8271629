package analytics

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
)

var base = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func withCountries(countries ...string) []domain.Event {
	events := make([]domain.Event, len(countries))
	for i, c := range countries {
		events[i] = domain.Event{ID: string(rune('a' + i)), Country: c, Timestamp: base}
	}
	return events
}

func TestClicksByCountry(t *testing.T) {
	tests := []struct {
		name      string
		countries []string
		want      []domain.CountryClicks
	}{
		{
			name:      "Counts Descending",
			countries: []string{"US", "US", "FR"},
			want:      []domain.CountryClicks{{Country: "US", Count: 2}, {Country: "FR", Count: 1}},
		},
		{
			name:      "Ties Keep First Seen",
			countries: []string{"DE", "FR", "FR", "DE", "JP"},
			want: []domain.CountryClicks{
				{Country: "DE", Count: 2}, {Country: "FR", Count: 2}, {Country: "JP", Count: 1},
			},
		},
		{
			name:      "Missing Country Skipped",
			countries: []string{"", "US", " "},
			want:      []domain.CountryClicks{{Country: "US", Count: 1}},
		},
		{
			name: "Empty",
			want: []domain.CountryClicks{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClicksByCountry(withCountries(tt.countries...)))
		})
	}
}

func TestDeviceStats(t *testing.T) {
	events := []domain.Event{
		{DeviceType: "mobile"},
		{DeviceType: "desktop"},
		{},
		{DeviceType: "desktop"},
	}

	assert.Equal(t, []domain.DeviceClicks{
		{DeviceType: "desktop", Count: 2},
		{DeviceType: "mobile", Count: 1},
	}, DeviceStats(events))
}

func TestClicksByHour(t *testing.T) {
	t.Run("Single Bucket", func(t *testing.T) {
		hours := ClicksByHour([]domain.Event{{Timestamp: base}})
		require.Len(t, hours, HoursPerDay)
		for _, h := range hours {
			if h.Hour == 14 {
				assert.EqualValues(t, 1, h.Count)
			} else {
				assert.Zero(t, h.Count, "hour %d", h.Hour)
			}
		}
	})

	t.Run("Buckets Use UTC", func(t *testing.T) {
		zone := time.FixedZone("UTC+7", 7*60*60)
		local := time.Date(2025, 3, 10, 21, 0, 0, 0, zone) // 14:00 UTC
		hours := ClicksByHour([]domain.Event{{Timestamp: local}})
		assert.EqualValues(t, 1, hours[14].Count)
		assert.Zero(t, hours[21].Count)
	})

	t.Run("Summed Across Days", func(t *testing.T) {
		hours := ClicksByHour([]domain.Event{
			{Timestamp: base},
			{Timestamp: base.AddDate(0, 0, -3)},
		})
		assert.EqualValues(t, 2, hours[14].Count)
	})

	t.Run("Empty", func(t *testing.T) {
		hours := ClicksByHour(nil)
		require.Len(t, hours, HoursPerDay)
		assert.Empty(t, NonEmptyHours(hours))
	})
}

func TestTopReferrers(t *testing.T) {
	var events []domain.Event
	add := func(ref string, n int) {
		for i := 0; i < n; i++ {
			events = append(events, domain.Event{Referrer: ref})
		}
	}
	add("a", 5)
	add("b", 3)
	add("", 4)
	add("c", 3)
	add("d", 1)

	got := TopReferrers(events, 3)
	assert.Equal(t, []domain.ReferrerClicks{
		{Referrer: "a", Count: 5},
		{Referrer: "b", Count: 3},
		{Referrer: "c", Count: 3},
	}, got)

	assert.Len(t, TopReferrers(events, 10), 4)
	assert.Empty(t, TopReferrers(events, 0))
	assert.Empty(t, TopReferrers(nil, 5))
}

func TestUniqueCountries(t *testing.T) {
	assert.Equal(t, 2, UniqueCountries(withCountries("US", "", "FR", "US")))
	assert.Zero(t, UniqueCountries(nil))
}

func TestRecent(t *testing.T) {
	events := withCountries("A", "B", "C")

	got := Recent(events, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].Country)
	assert.Equal(t, "B", got[1].Country)

	assert.Len(t, Recent(events, 10), 3)
	assert.Empty(t, Recent(nil, 10))
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		raw  string
		want Range
		dur  time.Duration
	}{
		{"1h", RangeHour, time.Hour},
		{"24h", RangeDay, 24 * time.Hour},
		{"7d", RangeWeek, 7 * 24 * time.Hour},
		{"30d", RangeMonth, 30 * 24 * time.Hour},
		{"", RangeDay, 24 * time.Hour},
		{"forever", RangeDay, 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := ParseRange(tt.raw)
			assert.Equal(t, tt.want, r)
			assert.Equal(t, base.Add(-tt.dur), r.Cutoff(base))
		})
	}
}

func TestWindowFilter(t *testing.T) {
	old := domain.Event{ID: "old", Timestamp: base.Add(-2 * time.Hour)}
	fresh := domain.Event{ID: "fresh", Timestamp: base.Add(-30 * time.Minute)}
	edge := domain.Event{ID: "edge", Timestamp: base.Add(-time.Hour)}

	got := WindowFilter([]domain.Event{old, fresh, edge}, RangeHour.Cutoff(base))
	assert.Equal(t, []domain.Event{fresh, edge}, got)
	assert.Empty(t, WindowFilter(nil, base))
}

func TestSnapshot(t *testing.T) {
	events := []domain.Event{
		{ID: "1", Country: "US", DeviceType: "mobile", Timestamp: base},
		{ID: "2", Country: "US", Timestamp: base.Add(time.Hour)},
		{ID: "3", Country: "FR", DeviceType: "desktop", Timestamp: base.Add(2 * time.Hour)},
	}

	snap := Snapshot(1, events, 2)
	assert.Equal(t, 1, snap.TotalLinks)
	assert.Equal(t, 3, snap.TotalClicks)
	require.Len(t, snap.RecentEvents, 2)
	assert.Equal(t, "3", snap.RecentEvents[0].ID)
	assert.Equal(t, []domain.CountryClicks{{Country: "US", Count: 2}, {Country: "FR", Count: 1}}, snap.TopCountries)
	assert.Len(t, snap.DeviceStats, 2)
	assert.EqualValues(t, 1, snap.ClicksByHour[15].Count)

	empty := Snapshot(0, nil, RecentGlobalEvents)
	assert.Zero(t, empty.TotalClicks)
	assert.NotNil(t, empty.RecentEvents)
	assert.Empty(t, empty.TopCountries)
	assert.Empty(t, empty.DeviceStats)
	assert.Len(t, empty.ClicksByHour, HoursPerDay)
}

func TestSummarize(t *testing.T) {
	now := base
	events := []domain.Event{
		{Country: "US", Referrer: "google.com", Timestamp: now.Add(-48 * time.Hour)},
		{Country: "US", Referrer: "x.com", Timestamp: now.Add(-2 * time.Hour)},
		{Country: "FR", Referrer: "x.com", Timestamp: now.Add(-10 * time.Minute)},
		{Timestamp: now.Add(-5 * time.Minute)},
	}

	s := Summarize(events, RangeDay, now)
	assert.Equal(t, "24h", s.TimeRange)
	assert.Equal(t, now.Add(-24*time.Hour), s.Since)
	assert.Equal(t, 3, s.TotalClicks)
	assert.Equal(t, 2, s.UniqueCountries)
	assert.Equal(t, []domain.ReferrerClicks{{Referrer: "x.com", Count: 2}}, s.TopReferrers)
	assert.Equal(t, []domain.HourClicks{{Hour: 12, Count: 1}, {Hour: 14, Count: 2}}, s.HourlyDistribution)

	hour := Summarize(events, RangeHour, now)
	assert.Equal(t, 2, hour.TotalClicks)
}

func TestWriteCSV(t *testing.T) {
	lat := 13.75
	events := []domain.Event{
		{
			ID:        "e1",
			LinkID:    "l1",
			Timestamp: base,
			Country:   "TH",
			Referrer:  "t.co",
			Client:    domain.ClientInfo{UserAgent: "curl/8.0", ScreenWidth: 390, Latitude: &lat},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, events))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, csvHeader, records[0])

	row := records[1]
	assert.Equal(t, "e1", row[0])
	assert.Equal(t, "2025-03-10T14:30:00Z", row[2])
	assert.Equal(t, "TH", row[3])
	assert.Equal(t, "390", row[12])
	assert.Equal(t, "", row[13])
	assert.Equal(t, "13.75", row[14])
	assert.Equal(t, "", row[15])
}
