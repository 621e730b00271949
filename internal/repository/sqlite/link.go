package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Shiki0x/nymph/internal/domain"
)

// PublicLinkRepository implements domain.PublicLinkRepository using
// SQLite.
type PublicLinkRepository struct {
	db *sql.DB
}

// NewPublicLinkRepository creates a new SQLite-backed
// PublicLinkRepository.
func NewPublicLinkRepository(db *DB) *PublicLinkRepository {
	return &PublicLinkRepository{db: db.SqlDB}
}

func (r *PublicLinkRepository) Create(ctx context.Context, link *domain.PublicLink) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM public_links WHERE user_id = ?`,
		link.UserID,
	).Scan(&position)
	if err != nil {
		return fmt.Errorf("next link position: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO public_links (user_id, label, url, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		link.UserID, link.Label, link.URL, position, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert public link: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get link id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	link.ID = id
	link.Position = position
	link.CreatedAt = now
	link.UpdatedAt = now
	return nil
}

func (r *PublicLinkRepository) GetByID(ctx context.Context, id int64) (*domain.PublicLink, error) {
	link := &domain.PublicLink{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, label, url, position, created_at, updated_at
		 FROM public_links WHERE id = ?`, id,
	).Scan(&link.ID, &link.UserID, &link.Label, &link.URL, &link.Position, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query link by id: %w", err)
	}
	return link, nil
}

func (r *PublicLinkRepository) ListByUser(ctx context.Context, userID int64) ([]domain.PublicLink, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, label, url, position, created_at, updated_at
		 FROM public_links WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var links []domain.PublicLink
	for rows.Next() {
		var l domain.PublicLink
		if err := rows.Scan(&l.ID, &l.UserID, &l.Label, &l.URL, &l.Position, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *PublicLinkRepository) Update(ctx context.Context, link *domain.PublicLink) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE public_links SET label = ?, url = ?, updated_at = ? WHERE id = ?`,
		link.Label, link.URL, now, link.ID,
	)
	if err != nil {
		return fmt.Errorf("update link: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	link.UpdatedAt = now
	return nil
}

func (r *PublicLinkRepository) Reorder(ctx context.Context, userID int64, orderedIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := reorderPositions(ctx, tx, "public_links", userID, orderedIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PublicLinkRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM public_links WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
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
