package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Shiki0x/nymph/internal/domain"
)

// ProfileCardRepository implements domain.ProfileCardRepository using
// SQLite.
type ProfileCardRepository struct {
	db *sql.DB
}

// NewProfileCardRepository creates a new SQLite-backed
// ProfileCardRepository.
func NewProfileCardRepository(db *DB) *ProfileCardRepository {
	return &ProfileCardRepository{db: db.SqlDB}
}

func (r *ProfileCardRepository) Create(ctx context.Context, card *domain.ProfileCard) error {
	payload, err := domain.EncodeCardPayload(card.Payload)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Next position is max existing + 1, or 0 for the first card.
	var position int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM profile_cards WHERE user_id = ?`,
		card.UserID,
	).Scan(&position)
	if err != nil {
		return fmt.Errorf("next card position: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO profile_cards (user_id, kind, position, payload, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		card.UserID, card.Kind(), position, string(payload), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert profile card: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get card id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	card.ID = id
	card.Position = position
	card.CreatedAt = now
	card.UpdatedAt = now
	return nil
}

func (r *ProfileCardRepository) GetByID(ctx context.Context, id int64) (*domain.ProfileCard, error) {
	var (
		card    domain.ProfileCard
		kind    domain.CardKind
		payload []byte
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, kind, position, payload, created_at, updated_at
		 FROM profile_cards WHERE id = ?`, id,
	).Scan(&card.ID, &card.UserID, &kind, &card.Position, &payload, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query card by id: %w", err)
	}

	card.Payload, err = domain.DecodeCardPayload(kind, payload)
	if err != nil {
		return nil, fmt.Errorf("decode stored payload for card %d: %w", card.ID, err)
	}
	return &card, nil
}

func (r *ProfileCardRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ProfileCard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, kind, position, payload, created_at, updated_at
		 FROM profile_cards WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.ProfileCard
	for rows.Next() {
		var (
			card    domain.ProfileCard
			kind    domain.CardKind
			payload []byte
		)
		if err := rows.Scan(&card.ID, &card.UserID, &kind, &card.Position, &payload, &card.CreatedAt, &card.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		card.Payload, err = domain.DecodeCardPayload(kind, payload)
		if err != nil {
			return nil, fmt.Errorf("decode stored payload for card %d: %w", card.ID, err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *ProfileCardRepository) UpdatePayload(ctx context.Context, card *domain.ProfileCard) error {
	payload, err := domain.EncodeCardPayload(card.Payload)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE profile_cards SET payload = ?, updated_at = ? WHERE id = ?`,
		string(payload), now, card.ID,
	)
	if err != nil {
		return fmt.Errorf("update card payload: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	card.UpdatedAt = now
	return nil
}

func (r *ProfileCardRepository) Reorder(ctx context.Context, userID int64, orderedIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := reorderPositions(ctx, tx, "profile_cards", userID, orderedIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ProfileCardRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM profile_cards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
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

// reorderPositions validates that orderedIDs is a permutation of
// exactly the user's rows in table, then reassigns positions 0..n-1 by
// list order. Remaining positions are deliberately left untouched on
// validation failure; the caller's rollback discards the staging pass.
func reorderPositions(ctx context.Context, tx *sql.Tx, table string, userID int64, orderedIDs []int64) error {
	rows, err := tx.QueryContext(ctx,
		fmt.Sprintf("SELECT id FROM %s WHERE user_id = ?", table), userID)
	if err != nil {
		return fmt.Errorf("list ids for reorder: %w", err)
	}
	defer rows.Close()

	existing := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan id: %w", err)
		}
		existing[id] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(orderedIDs) != len(existing) {
		return fmt.Errorf("%w: expected %d ids, got %d", domain.ErrInvalidOrder, len(existing), len(orderedIDs))
	}
	seen := make(map[int64]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !existing[id] {
			return fmt.Errorf("%w: id %d does not belong to the user", domain.ErrInvalidOrder, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: id %d appears more than once", domain.ErrInvalidOrder, id)
		}
		seen[id] = true
	}

	// Stage all positions negative first so the (user_id, position)
	// unique constraint never fires mid-reassignment.
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET position = -position - 1 WHERE user_id = ?", table), userID,
	); err != nil {
		return fmt.Errorf("stage positions: %w", err)
	}

	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("UPDATE %s SET position = ? WHERE id = ? AND user_id = ?", table),
			i, id, userID,
		); err != nil {
			return fmt.Errorf("assign position %d: %w", i, err)
		}
	}

	return nil
}
