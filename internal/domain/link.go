package domain

import (
	"context"
	"time"
)

// PublicLink is an outbound link displayed on a public profile.
// Position semantics match profile cards.
type PublicLink struct {
	ID        int64
	UserID    int64
	Label     string
	URL       string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicLinkRepository defines persistence operations for public links.
type PublicLinkRepository interface {
	// Create inserts the link, atomically assigning the next position
	// for its user.
	Create(ctx context.Context, link *PublicLink) error
	GetByID(ctx context.Context, id int64) (*PublicLink, error)
	// ListByUser returns the user's links ordered ascending by position.
	ListByUser(ctx context.Context, userID int64) ([]PublicLink, error)
	Update(ctx context.Context, link *PublicLink) error
	// Reorder reassigns positions 0..n-1; orderedIDs must be a
	// permutation of exactly the user's link ids.
	Reorder(ctx context.Context, userID int64, orderedIDs []int64) error
	Delete(ctx context.Context, id int64) error
}
