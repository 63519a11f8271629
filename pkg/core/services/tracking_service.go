package services

import (
	"context"
	"errors"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/logger"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/ports"
)

// TrackingService records clicks. It is the only path that appends events.
type TrackingService struct {
	links  ports.LinkRepository
	events ports.EventRepository
	opts   options
}

func NewTrackingService(links ports.LinkRepository, events ports.EventRepository, opts ...Option) *TrackingService {
	return &TrackingService{links: links, events: events, opts: newOptions(opts)}
}

func (s *TrackingService) RecordClick(ctx context.Context, linkID string, payload domain.EventPayload) (*domain.ClickResult, error) {
	link, err := s.links.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, link, payload)
}

// RecordShortCodeClick resolves code and records a click against its link
func (s *TrackingService) RecordShortCodeClick(ctx context.Context, code string, payload domain.EventPayload) (*domain.ClickResult, error) {
	link, err := s.links.GetByShortCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, link, payload)
}

func (s *TrackingService) record(ctx context.Context, link *domain.Link, payload domain.EventPayload) (*domain.ClickResult, error) {
	if !link.IsActive {
		logger.Warn().Str("link_id", link.ID).Msg("click rejected, link inactive")
		return nil, domain.ErrLinkInactive
	}

	event := &domain.Event{
		ID:         s.opts.newID(),
		LinkID:     link.ID,
		Timestamp:  s.opts.now().UTC(),
		Country:    payload.Country,
		DeviceType: payload.DeviceType,
		Referrer:   payload.Referrer,
		Client:     payload.Client,
	}

	// Append re-checks the link under the store lock
	if err := s.events.Append(ctx, event); err != nil {
		if errors.Is(err, domain.ErrLinkInactive) {
			logger.Warn().Str("link_id", link.ID).Msg("click rejected, link inactive")
		}
		return nil, err
	}

	return &domain.ClickResult{EventID: event.ID, RedirectURL: link.OriginalURL}, nil
}

// ListEvents returns events in insertion order; an empty linkID lists all of them.
func (s *TrackingService) ListEvents(ctx context.Context, linkID string) ([]domain.Event, error) {
	if linkID != "" {
		if _, err := s.links.GetByID(ctx, linkID); err != nil {
			return nil, err
		}
	}
	return s.events.ListEvents(ctx, linkID)
}

var _ ports.TrackingService = (*TrackingService)(nil)
