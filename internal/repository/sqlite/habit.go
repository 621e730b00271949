package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Shiki0x/nymph/internal/domain"
)

// dayFormat is the storage format for calendar days. Days carry no
// time component.
const dayFormat = time.DateOnly

// HabitRepository implements domain.HabitRepository using SQLite.
type HabitRepository struct {
	db *sql.DB
}

// NewHabitRepository creates a new SQLite-backed HabitRepository.
func NewHabitRepository(db *DB) *HabitRepository {
	return &HabitRepository{db: db.SqlDB}
}

func (r *HabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO habits (user_id, name, created_at) VALUES (?, ?, ?)`,
		habit.UserID, habit.Name, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert habit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get habit id: %w", err)
	}

	habit.ID = id
	habit.CreatedAt = now
	return nil
}

func (r *HabitRepository) GetByID(ctx context.Context, id int64) (*domain.Habit, error) {
	habit := &domain.Habit{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM habits WHERE id = ?`, id,
	).Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query habit by id: %w", err)
	}
	return habit, nil
}

func (r *HabitRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Habit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, created_at FROM habits
		 WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		var h domain.Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (r *HabitRepository) ListWithStatus(ctx context.Context, userID int64, day time.Time) ([]domain.HabitStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT h.id, h.user_id, h.name, h.created_at, COALESCE(l.completed, 0)
		 FROM habits h
		 LEFT JOIN habit_logs l ON l.habit_id = h.id AND l.day = ?
		 WHERE h.user_id = ?
		 ORDER BY h.created_at, h.id`,
		day.UTC().Format(dayFormat), userID)
	if err != nil {
		return nil, fmt.Errorf("list habits with status: %w", err)
	}
	defer rows.Close()

	var statuses []domain.HabitStatus
	for rows.Next() {
		var s domain.HabitStatus
		if err := rows.Scan(&s.Habit.ID, &s.Habit.UserID, &s.Habit.Name, &s.Habit.CreatedAt, &s.Completed); err != nil {
			return nil, fmt.Errorf("scan habit status: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

func (r *HabitRepository) UpsertLog(ctx context.Context, log *domain.HabitLog) error {
	day := log.Day.UTC().Format(dayFormat)
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO habit_logs (habit_id, day, completed, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (habit_id, day) DO UPDATE SET completed = excluded.completed`,
		log.HabitID, day, log.Completed, now,
	); err != nil {
		return fmt.Errorf("upsert habit log: %w", err)
	}

	// LastInsertId is not meaningful when the conflict branch fires, so
	// read the row back inside the same transaction.
	err = tx.QueryRowContext(ctx,
		`SELECT id, created_at FROM habit_logs WHERE habit_id = ? AND day = ?`,
		log.HabitID, day,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("read back habit log: %w", err)
	}

	return tx.Commit()
}

func (r *HabitRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
