package services

import (
	"context"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/analytics"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/ports"
)

type AnalyticsService struct {
	links  ports.LinkRepository
	events ports.EventRepository
	opts   options
}

func NewAnalyticsService(links ports.LinkRepository, events ports.EventRepository, opts ...Option) *AnalyticsService {
	return &AnalyticsService{links: links, events: events, opts: newOptions(opts)}
}

// GetAnalytics builds the snapshot for one link, or for every link when
// linkID is empty. A non-empty timeRange windows the events first.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, linkID, timeRange string) (*domain.AnalyticsSnapshot, error) {
	var (
		totalLinks int
		recent     int
		err        error
	)

	if linkID != "" {
		if _, err = s.links.GetByID(ctx, linkID); err != nil {
			return nil, err
		}
		totalLinks = 1
		recent = analytics.RecentLinkEvents
	} else {
		if totalLinks, err = s.links.Count(ctx); err != nil {
			return nil, err
		}
		recent = analytics.RecentGlobalEvents
	}

	events, err := s.events.ListEvents(ctx, linkID)
	if err != nil {
		return nil, err
	}

	if timeRange != "" {
		cutoff := analytics.ParseRange(timeRange).Cutoff(s.opts.now())
		events = analytics.WindowFilter(events, cutoff)
	}

	return analytics.Snapshot(totalLinks, events, recent), nil
}

// GetSummary aggregates every event inside timeRange. Unknown ranges mean 24h.
func (s *AnalyticsService) GetSummary(ctx context.Context, timeRange string) (*domain.Summary, error) {
	events, err := s.events.ListEvents(ctx, "")
	if err != nil {
		return nil, err
	}
	return analytics.Summarize(events, analytics.ParseRange(timeRange), s.opts.now()), nil
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)
