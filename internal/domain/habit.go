package domain

import (
	"context"
	"time"
)

// Habit is a recurring activity a user tracks. Names are unique per
// user.
type Habit struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// HabitLog records whether a habit was completed on a calendar day.
// At most one log exists per (habit, day); repeated logging for the
// same day overwrites the completed flag.
type HabitLog struct {
	ID        int64
	HabitID   int64
	Day       time.Time // UTC midnight; no time component
	Completed bool
	CreatedAt time.Time
}

// HabitStatus pairs a habit with its completion state for one day. An
// absent log means not completed.
type HabitStatus struct {
	Habit     Habit
	Completed bool
}

// HabitRepository defines persistence operations for habits and their
// logs.
type HabitRepository interface {
	Create(ctx context.Context, habit *Habit) error
	GetByID(ctx context.Context, id int64) (*Habit, error)
	ListByUser(ctx context.Context, userID int64) ([]Habit, error)
	// ListWithStatus returns each of the user's habits paired with its
	// completion status for the given day, ordered by creation time.
	ListWithStatus(ctx context.Context, userID int64, day time.Time) ([]HabitStatus, error)
	// UpsertLog inserts or replaces the log for (habit, day).
	UpsertLog(ctx context.Context, log *HabitLog) error
	// Delete removes a habit and cascades to its logs.
	Delete(ctx context.Context, id int64) error
}
