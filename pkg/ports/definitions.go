package ports

import (
	"context"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
)

// LinkRepository defines storage operations for tracking links
type LinkRepository interface {
	// Create inserts the link, reserving its short code atomically.
	// Returns domain.ErrDuplicateCode if the code is taken and
	// domain.ErrDuplicateID if the id is.
	Create(ctx context.Context, link *domain.Link) error
	GetByID(ctx context.Context, id string) (*domain.Link, error)
	GetByShortCode(ctx context.Context, code string) (*domain.Link, error)
	List(ctx context.Context) ([]domain.Link, error) // Creation order
	SetActive(ctx context.Context, id string, active bool) error
	Count(ctx context.Context) (int, error)
}

// EventRepository defines the append-only click log
type EventRepository interface {
	// Append stores the event and increments the owning link's click count
	// in one step. Fails with domain.ErrNotFound or domain.ErrLinkInactive.
	Append(ctx context.Context, event *domain.Event) error
	// ListEvents returns events in insertion order. An empty linkID lists
	// the global log.
	ListEvents(ctx context.Context, linkID string) ([]domain.Event, error)
}

// Store is implemented by every backend
type Store interface {
	LinkRepository
	EventRepository
	Close() error
}

// LinkService defines link registry operations
type LinkService interface {
	CreateLink(ctx context.Context, in domain.NewLink) (*domain.Link, error)
	ImportLink(ctx context.Context, link domain.Link) (*domain.Link, error)
	GetLink(ctx context.Context, id string) (*domain.Link, error)
	GetLinkByShortCode(ctx context.Context, code string) (*domain.Link, error)
	ListLinks(ctx context.Context) ([]domain.Link, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Link, error)
}

// TrackingService is the single write path for clicks
type TrackingService interface {
	RecordClick(ctx context.Context, linkID string, payload domain.EventPayload) (*domain.ClickResult, error)
	RecordShortCodeClick(ctx context.Context, code string, payload domain.EventPayload) (*domain.ClickResult, error)
	ListEvents(ctx context.Context, linkID string) ([]domain.Event, error)
}

// AnalyticsService defines read-only statistics
type AnalyticsService interface {
	GetAnalytics(ctx context.Context, linkID, timeRange string) (*domain.AnalyticsSnapshot, error)
	GetSummary(ctx context.Context, timeRange string) (*domain.Summary, error)
}
