package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type CardKind string

const (
	CardKindQuote CardKind = "quote"
	CardKindList  CardKind = "list"
	CardKindText  CardKind = "text"
)

// CardPayload is the tagged variant holding a card's kind-specific
// content. Exactly one concrete type exists per kind; code consuming a
// payload switches exhaustively over the variants.
type CardPayload interface {
	Kind() CardKind
	Validate() error
}

// QuotePayload is a short quotation with an optional attribution.
type QuotePayload struct {
	Text        string `json:"text"`
	Attribution string `json:"attribution,omitempty"`
}

func (QuotePayload) Kind() CardKind { return CardKindQuote }

func (p QuotePayload) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return fmt.Errorf("%w: quote text is required", ErrInvalidPayload)
	}
	return nil
}

// ListPayload is a titled, ordered list of string items.
type ListPayload struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

func (ListPayload) Kind() CardKind { return CardKindList }

func (p ListPayload) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: list title is required", ErrInvalidPayload)
	}
	return nil
}

// TextPayload is a titled free-form text block.
type TextPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (TextPayload) Kind() CardKind { return CardKindText }

func (p TextPayload) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: text title is required", ErrInvalidPayload)
	}
	return nil
}

// ProfileCard is a user-authored content block displayed on a public
// profile. Position defines display order relative to the user's other
// cards; positions need not be contiguous.
type ProfileCard struct {
	ID        int64
	UserID    int64
	Position  int
	Payload   CardPayload
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *ProfileCard) Kind() CardKind { return c.Payload.Kind() }

// DecodeCardPayload unmarshals raw JSON into the variant matching kind.
// An unknown kind or malformed JSON yields ErrInvalidPayload.
func DecodeCardPayload(kind CardKind, data []byte) (CardPayload, error) {
	switch kind {
	case CardKindQuote:
		var p QuotePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return p, nil
	case CardKindList:
		var p ListPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return p, nil
	case CardKindText:
		var p TextPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidPayload, kind)
	}
}

// EncodeCardPayload marshals a payload variant for storage.
func EncodeCardPayload(p CardPayload) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode card payload: %w", err)
	}
	return data, nil
}

// ProfileCardRepository defines persistence operations for profile
// cards.
type ProfileCardRepository interface {
	// Create inserts the card, atomically assigning the next position
	// for its user (max existing + 1, or 0).
	Create(ctx context.Context, card *ProfileCard) error
	GetByID(ctx context.Context, id int64) (*ProfileCard, error)
	// ListByUser returns the user's cards ordered ascending by position.
	ListByUser(ctx context.Context, userID int64) ([]ProfileCard, error)
	// UpdatePayload replaces the payload in place; kind is immutable.
	UpdatePayload(ctx context.Context, card *ProfileCard) error
	// Reorder reassigns positions 0..n-1 following orderedIDs, which
	// must be a permutation of exactly the user's card ids. On
	// ErrInvalidOrder the prior order is left unchanged.
	Reorder(ctx context.Context, userID int64, orderedIDs []int64) error
	Delete(ctx context.Context, id int64) error
}
