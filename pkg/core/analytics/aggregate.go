// Package analytics computes click statistics over a slice of events.
//
// Every function is a pure read: callers hand in an event set that was
// already resolved and scoped, and nothing here touches storage. Grouped
// results are ordered by count descending, ties keep the order in which each
// key was first seen. Events missing the grouped field are skipped.
package analytics

import (
	"sort"
	"strings"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
)

// HoursPerDay is the number of buckets returned by ClicksByHour
const HoursPerDay = 24

type bucket struct {
	key   string
	count int64
}

func group(events []domain.Event, key func(domain.Event) string) []bucket {
	index := make(map[string]int)
	var buckets []bucket
	for _, e := range events {
		k := key(e)
		if strings.TrimSpace(k) == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, bucket{key: k})
		}
		buckets[i].count++
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].count > buckets[j].count
	})
	return buckets
}

func ClicksByCountry(events []domain.Event) []domain.CountryClicks {
	buckets := group(events, func(e domain.Event) string { return e.Country })
	out := make([]domain.CountryClicks, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.CountryClicks{Country: b.key, Count: b.count})
	}
	return out
}

func DeviceStats(events []domain.Event) []domain.DeviceClicks {
	buckets := group(events, func(e domain.Event) string { return e.DeviceType })
	out := make([]domain.DeviceClicks, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.DeviceClicks{DeviceType: b.key, Count: b.count})
	}
	return out
}

// TopReferrers returns at most k referrers. A k below 1 yields an empty result.
func TopReferrers(events []domain.Event, k int) []domain.ReferrerClicks {
	buckets := group(events, func(e domain.Event) string { return e.Referrer })
	if k < 0 {
		k = 0
	}
	if len(buckets) > k {
		buckets = buckets[:k]
	}
	out := make([]domain.ReferrerClicks, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.ReferrerClicks{Referrer: b.key, Count: b.count})
	}
	return out
}

// ClicksByHour counts events per UTC hour of day, summed across all days.
// The result always has HoursPerDay entries.
func ClicksByHour(events []domain.Event) []domain.HourClicks {
	out := make([]domain.HourClicks, HoursPerDay)
	for h := range out {
		out[h].Hour = h
	}
	for _, e := range events {
		out[e.Timestamp.UTC().Hour()].Count++
	}
	return out
}

// NonEmptyHours drops the buckets without clicks
func NonEmptyHours(hours []domain.HourClicks) []domain.HourClicks {
	out := make([]domain.HourClicks, 0, len(hours))
	for _, h := range hours {
		if h.Count > 0 {
			out = append(out, h)
		}
	}
	return out
}

func UniqueCountries(events []domain.Event) int {
	return len(group(events, func(e domain.Event) string { return e.Country }))
}

// Recent returns up to n of the latest events, newest first.
func Recent(events []domain.Event, n int) []domain.Event {
	if n > len(events) {
		n = len(events)
	}
	if n < 0 {
		n = 0
	}
	out := make([]domain.Event, 0, n)
	for i := len(events) - 1; i >= len(events)-n; i-- {
		out = append(out, events[i])
	}
	return out
}
