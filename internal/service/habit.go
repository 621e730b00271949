package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Shiki0x/nymph/internal/domain"
)

// HabitService handles habit CRUD and daily completion logging.
type HabitService struct {
	habits domain.HabitRepository
}

// NewHabitService creates a new HabitService.
func NewHabitService(habits domain.HabitRepository) *HabitService {
	return &HabitService{habits: habits}
}

// Create creates a habit for the user. Names are unique per user;
// creating a second habit with the same name fails with
// ErrDuplicateName.
func (s *HabitService) Create(ctx context.Context, userID int64, name string) (*domain.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: habit name is required", domain.ErrInvalidInput)
	}

	habit := &domain.Habit{UserID: userID, Name: name}
	if err := s.habits.Create(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// LogCompletion upserts the completion log for (habit, day). A habit
// that does not exist or belongs to another user fails with
// ErrNotFound; ownership is never revealed.
func (s *HabitService) LogCompletion(ctx context.Context, userID, habitID int64, day time.Time, completed bool) (*domain.HabitLog, error) {
	habit, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrNotFound
	}

	log := &domain.HabitLog{HabitID: habitID, Day: day, Completed: completed}
	if err := s.habits.UpsertLog(ctx, log); err != nil {
		return nil, fmt.Errorf("log completion: %w", err)
	}
	return log, nil
}

// ListWithStatus returns the user's habits with completion status for
// the given day, ordered by creation time.
func (s *HabitService) ListWithStatus(ctx context.Context, userID int64, day time.Time) ([]domain.HabitStatus, error) {
	return s.habits.ListWithStatus(ctx, userID, day)
}

// Delete removes a habit and its logs after an ownership check.
func (s *HabitService) Delete(ctx context.Context, userID, habitID int64) error {
	habit, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return err
	}
	if habit.UserID != userID {
		return domain.ErrNotFound
	}

	return s.habits.Delete(ctx, habitID)
}
