// Package memory is the in-process store backing the tracker.
//
// Links and the click log live in one Repository guarded by a single
// RWMutex. Events are kept in one append-only slice; the per-link index holds
// positions into that slice, so both views are updated by the same append.
// Every getter returns copies.
package memory

import (
	"context"
	"sync"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/ports"
)

type Repository struct {
	mu sync.RWMutex

	links  []*domain.Link // creation order
	byID   map[string]*domain.Link
	byCode map[string]*domain.Link

	events []domain.Event
	byLink map[string][]int // link id -> positions in events
}

func NewRepository() *Repository {
	return &Repository{
		byID:   make(map[string]*domain.Link),
		byCode: make(map[string]*domain.Link),
		byLink: make(map[string][]int),
	}
}

func (r *Repository) Create(ctx context.Context, link *domain.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[link.ID]; exists {
		return domain.ErrDuplicateID
	}
	if _, exists := r.byCode[link.ShortCode]; exists {
		return domain.ErrDuplicateCode
	}

	stored := *link
	r.links = append(r.links, &stored)
	r.byID[stored.ID] = &stored
	r.byCode[stored.ShortCode] = &stored
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	linkCopy := *link
	return &linkCopy, nil
}

func (r *Repository) GetByShortCode(ctx context.Context, code string) (*domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.byCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	linkCopy := *link
	return &linkCopy, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	links := make([]domain.Link, 0, len(r.links))
	for _, l := range r.links {
		links = append(links, *l)
	}
	return links, nil
}

func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	link.IsActive = active
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.links), nil
}

// Append checks the link under the write lock, so a concurrent SetActive
// cannot let an event through for a link that was just deactivated.
func (r *Repository) Append(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.byID[event.LinkID]
	if !ok {
		return domain.ErrNotFound
	}
	if !link.IsActive {
		return domain.ErrLinkInactive
	}

	r.events = append(r.events, *event)
	r.byLink[link.ID] = append(r.byLink[link.ID], len(r.events)-1)
	link.ClickCount++
	return nil
}

func (r *Repository) ListEvents(ctx context.Context, linkID string) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if linkID == "" {
		events := make([]domain.Event, len(r.events))
		copy(events, r.events)
		return events, nil
	}

	positions := r.byLink[linkID]
	events := make([]domain.Event, 0, len(positions))
	for _, i := range positions {
		events = append(events, r.events[i])
	}
	return events, nil
}

func (r *Repository) Close() error {
	return nil
}

// Ensure interface compliance
var _ ports.Store = (*Repository)(nil)
