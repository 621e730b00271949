package service

import (
	"context"
	"fmt"

	"github.com/Shiki0x/nymph/internal/domain"
)

// CardService handles profile card CRUD and ordering.
type CardService struct {
	cards domain.ProfileCardRepository
}

// NewCardService creates a new CardService.
func NewCardService(cards domain.ProfileCardRepository) *CardService {
	return &CardService{cards: cards}
}

// Create validates the payload and inserts a card at the end of the
// user's display order.
func (s *CardService) Create(ctx context.Context, userID int64, payload domain.CardPayload) (*domain.ProfileCard, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	card := &domain.ProfileCard{UserID: userID, Payload: payload}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}
	return card, nil
}

// Get returns a single card after an ownership check. Cards owned by
// other users fail with ErrNotFound.
func (s *CardService) Get(ctx context.Context, userID, cardID int64) (*domain.ProfileCard, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return card, nil
}

// ListByUser returns the user's cards in display order.
func (s *CardService) ListByUser(ctx context.Context, userID int64) ([]domain.ProfileCard, error) {
	return s.cards.ListByUser(ctx, userID)
}

// Update replaces a card's payload in place. The kind is immutable
// post-creation; a payload of a different kind fails with
// ErrInvalidPayload. Cards owned by other users fail with ErrNotFound.
func (s *CardService) Update(ctx context.Context, userID, cardID int64, payload domain.CardPayload) (*domain.ProfileCard, error) {
	existing, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, domain.ErrNotFound
	}

	if payload.Kind() != existing.Kind() {
		return nil, fmt.Errorf("%w: card kind is immutable (%s)", domain.ErrInvalidPayload, existing.Kind())
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	existing.Payload = payload
	if err := s.cards.UpdatePayload(ctx, existing); err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}
	return existing, nil
}

// Reorder reassigns display positions 0..n-1 following orderedIDs. The
// list must be a permutation of exactly the user's card ids; otherwise
// it fails with ErrInvalidOrder and the prior order is unchanged.
// Concurrent reorders resolve last-commit-wins.
func (s *CardService) Reorder(ctx context.Context, userID int64, orderedIDs []int64) error {
	return s.cards.Reorder(ctx, userID, orderedIDs)
}

// Delete removes a card. Remaining positions are not renumbered; gaps
// are fine because ordering is relative.
func (s *CardService) Delete(ctx context.Context, userID, cardID int64) error {
	existing, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrNotFound
	}

	return s.cards.Delete(ctx, cardID)
}
