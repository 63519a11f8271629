package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"net/url"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/logger"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/ports"
)

const maxCustomCodeLength = 32

type LinkService struct {
	repo ports.LinkRepository
	opts options
}

func NewLinkService(repo ports.LinkRepository, opts ...Option) *LinkService {
	return &LinkService{repo: repo, opts: newOptions(opts)}
}

func (s *LinkService) CreateLink(ctx context.Context, in domain.NewLink) (*domain.Link, error) {
	if !isValidURL(in.OriginalURL) {
		return nil, domain.ErrInvalidURL
	}

	link := &domain.Link{
		ID:          s.opts.newID(),
		OriginalURL: in.OriginalURL,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   s.opts.now().UTC(),
		IsActive:    true,
	}

	if in.ShortCode != "" {
		if !isValidCode(in.ShortCode) {
			return nil, domain.ErrInvalidCode
		}
		// The repository reserves the code atomically; a taken custom code is
		// reported, never replaced.
		link.ShortCode = in.ShortCode
		if err := s.repo.Create(ctx, link); err != nil {
			return nil, err
		}
		logger.Info().Str("id", link.ID).Str("short_code", link.ShortCode).Msg("link created")
		return link, nil
	}

	for attempt := 1; attempt <= s.opts.maxAttempts; attempt++ {
		code, err := s.opts.generate(s.opts.codeLength)
		if err != nil {
			return nil, err
		}
		link.ShortCode = code

		err = s.repo.Create(ctx, link)
		if err == nil {
			logger.Info().Str("id", link.ID).Str("short_code", link.ShortCode).Msg("link created")
			return link, nil
		}
		if !errors.Is(err, domain.ErrDuplicateCode) {
			return nil, err
		}
		logger.Debug().Str("short_code", code).Int("attempt", attempt).Msg("short code collision, retrying")
	}

	logger.Error().Int("attempts", s.opts.maxAttempts).Msg("short code space exhausted")
	return nil, domain.ErrCapacity
}

// ImportLink stores a link from a dump, keeping its id and short code. Both
// are validated like user input; a missing id or creation time is filled in
// and the click count starts at zero since events are not imported.
func (s *LinkService) ImportLink(ctx context.Context, in domain.Link) (*domain.Link, error) {
	if !isValidURL(in.OriginalURL) {
		return nil, domain.ErrInvalidURL
	}
	if in.ShortCode == "" || !isValidCode(in.ShortCode) {
		return nil, domain.ErrInvalidCode
	}

	link := in
	if link.ID == "" {
		link.ID = s.opts.newID()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = s.opts.now()
	}
	link.CreatedAt = link.CreatedAt.UTC()
	link.ClickCount = 0

	if err := s.repo.Create(ctx, &link); err != nil {
		return nil, err
	}
	logger.Debug().Str("id", link.ID).Str("short_code", link.ShortCode).Msg("link imported")
	return &link, nil
}

func (s *LinkService) GetLink(ctx context.Context, id string) (*domain.Link, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LinkService) GetLinkByShortCode(ctx context.Context, code string) (*domain.Link, error) {
	return s.repo.GetByShortCode(ctx, code)
}

// ListLinks returns links in creation order
func (s *LinkService) ListLinks(ctx context.Context) ([]domain.Link, error) {
	return s.repo.List(ctx)
}

func (s *LinkService) SetActive(ctx context.Context, id string, active bool) (*domain.Link, error) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	logger.Info().Str("id", id).Bool("is_active", active).Msg("link state changed")
	return s.repo.GetByID(ctx, id)
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

func isValidCode(code string) bool {
	if len(code) > maxCustomCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateShortCode(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[num.Int64()]
	}
	return string(b), nil
}

var _ ports.LinkService = (*LinkService)(nil)
