package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Shiki0x/nymph/internal/domain"
)

// LinkService handles public link CRUD and ordering.
type LinkService struct {
	links domain.PublicLinkRepository
}

// NewLinkService creates a new LinkService.
func NewLinkService(links domain.PublicLinkRepository) *LinkService {
	return &LinkService{links: links}
}

// Create validates and inserts a link at the end of the user's display
// order.
func (s *LinkService) Create(ctx context.Context, userID int64, label, rawURL string) (*domain.PublicLink, error) {
	if err := validateLink(label, rawURL); err != nil {
		return nil, err
	}

	link := &domain.PublicLink{UserID: userID, Label: strings.TrimSpace(label), URL: rawURL}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return link, nil
}

// ListByUser returns the user's links in display order.
func (s *LinkService) ListByUser(ctx context.Context, userID int64) ([]domain.PublicLink, error) {
	return s.links.ListByUser(ctx, userID)
}

// Update replaces a link's label and URL after an ownership check.
func (s *LinkService) Update(ctx context.Context, userID, linkID int64, label, rawURL string) (*domain.PublicLink, error) {
	existing, err := s.links.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, domain.ErrNotFound
	}

	if err := validateLink(label, rawURL); err != nil {
		return nil, err
	}

	existing.Label = strings.TrimSpace(label)
	existing.URL = rawURL
	if err := s.links.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}
	return existing, nil
}

// Reorder reassigns display positions with the same permutation rules
// as cards.
func (s *LinkService) Reorder(ctx context.Context, userID int64, orderedIDs []int64) error {
	return s.links.Reorder(ctx, userID, orderedIDs)
}

// Delete removes a link without renumbering the rest.
func (s *LinkService) Delete(ctx context.Context, userID, linkID int64) error {
	existing, err := s.links.GetByID(ctx, linkID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrNotFound
	}

	return s.links.Delete(ctx, linkID)
}

func validateLink(label, rawURL string) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("%w: link label is required", domain.ErrInvalidInput)
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: link URL must be an absolute http(s) URL", domain.ErrInvalidInput)
	}
	return nil
}
