package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Shiki0x/nymph/internal/domain"
)

// ProfileService assembles a user's public profile from the store. It
// is a pure read: nothing is cached and nothing is mutated, so every
// call reflects the latest committed state.
type ProfileService struct {
	users  domain.UserRepository
	habits domain.HabitRepository
	cards  domain.ProfileCardRepository
	links  domain.PublicLinkRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users domain.UserRepository, habits domain.HabitRepository, cards domain.ProfileCardRepository, links domain.PublicLinkRepository) *ProfileService {
	return &ProfileService{users: users, habits: habits, cards: cards, links: links}
}

// Compose builds the renderable profile document for a username:
// display name, the day's habit statuses, and cards and links in
// ascending position order. Fails with ErrNotFound for an unknown
// username.
func (s *ProfileService) Compose(ctx context.Context, username string, day time.Time) (*domain.Profile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	habits, err := s.habits.ListWithStatus(ctx, user.ID, day)
	if err != nil {
		return nil, fmt.Errorf("compose habits: %w", err)
	}

	cards, err := s.cards.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("compose cards: %w", err)
	}

	links, err := s.links.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("compose links: %w", err)
	}

	return &domain.Profile{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Habits:      habits,
		Cards:       cards,
		Links:       links,
	}, nil
}
