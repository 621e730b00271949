package handler

import (
	"time"

	"github.com/Shiki0x/nymph/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash is
// never serialized.
type UserDTO struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// HabitDTO is the JSON representation of a habit.
type HabitDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

func toHabitDTO(h *domain.Habit) HabitDTO {
	return HabitDTO{
		ID:        h.ID,
		Name:      h.Name,
		CreatedAt: h.CreatedAt.Format(time.RFC3339),
	}
}

// HabitStatusDTO pairs a habit with its completion state for one day.
type HabitStatusDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

func toHabitStatusDTOs(statuses []domain.HabitStatus) []HabitStatusDTO {
	dtos := make([]HabitStatusDTO, len(statuses))
	for i, s := range statuses {
		dtos[i] = HabitStatusDTO{ID: s.Habit.ID, Name: s.Habit.Name, Completed: s.Completed}
	}
	return dtos
}

// HabitLogDTO is the JSON representation of a habit log.
type HabitLogDTO struct {
	HabitID   int64  `json:"habitId"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

func toHabitLogDTO(l *domain.HabitLog) HabitLogDTO {
	return HabitLogDTO{
		HabitID:   l.HabitID,
		Date:      l.Day.UTC().Format(time.DateOnly),
		Completed: l.Completed,
	}
}

// CardDTO is the JSON representation of a profile card. Payload
// serializes the kind's variant directly, e.g. {"text": "...",
// "attribution": "..."} for a quote.
type CardDTO struct {
	ID        int64           `json:"id"`
	Kind      domain.CardKind `json:"kind"`
	Position  int             `json:"position"`
	Payload   any             `json:"payload"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

func toCardDTO(c *domain.ProfileCard) CardDTO {
	return CardDTO{
		ID:        c.ID,
		Kind:      c.Kind(),
		Position:  c.Position,
		Payload:   c.Payload,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func toCardDTOs(cards []domain.ProfileCard) []CardDTO {
	dtos := make([]CardDTO, len(cards))
	for i := range cards {
		dtos[i] = toCardDTO(&cards[i])
	}
	return dtos
}

// LinkDTO is the JSON representation of a public link.
type LinkDTO struct {
	ID       int64  `json:"id"`
	Label    string `json:"label"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

func toLinkDTO(l *domain.PublicLink) LinkDTO {
	return LinkDTO{ID: l.ID, Label: l.Label, URL: l.URL, Position: l.Position}
}

func toLinkDTOs(links []domain.PublicLink) []LinkDTO {
	dtos := make([]LinkDTO, len(links))
	for i := range links {
		dtos[i] = toLinkDTO(&links[i])
	}
	return dtos
}

// ProfileDTO is the JSON representation of a composed public profile.
type ProfileDTO struct {
	Username    string           `json:"username"`
	DisplayName string           `json:"displayName"`
	Habits      []HabitStatusDTO `json:"habits"`
	Cards       []CardDTO        `json:"cards"`
	Links       []LinkDTO        `json:"links"`
}

func toProfileDTO(p *domain.Profile) ProfileDTO {
	return ProfileDTO{
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Habits:      toHabitStatusDTOs(p.Habits),
		Cards:       toCardDTOs(p.Cards),
		Links:       toLinkDTOs(p.Links),
	}
}
