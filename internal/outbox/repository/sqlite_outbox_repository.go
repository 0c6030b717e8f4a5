package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/outbox/domain"
)

// SQLiteOutboxEventRepository handles outbox event persistence for SQLite.
// SQLite serializes writers, so pending events are selected without row locks.
type SQLiteOutboxEventRepository struct {
	db *sql.DB
}

// NewSQLiteOutboxEventRepository creates a new SQLiteOutboxEventRepository.
func NewSQLiteOutboxEventRepository(db *sql.DB) *SQLiteOutboxEventRepository {
	return &SQLiteOutboxEventRepository{db: db}
}

// Create inserts a new outbox event.
func (r *SQLiteOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO outbox_events (` + outboxColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, event.ID.String(), event.EventType, event.Payload,
		string(event.Status), event.Retries, event.LastError, event.ProcessedAt, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}

// GetPendingEvents returns up to limit pending events, oldest first.
func (r *SQLiteOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + outboxColumns + `
			  FROM outbox_events
			  WHERE status = ?
			  ORDER BY created_at ASC
			  LIMIT ?`

	rows, err := querier.QueryContext(ctx, query, string(domain.OutboxEventStatusPending), limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending outbox events")
	}
	defer rows.Close() //nolint:errcheck

	return scanOutboxEvents(rows)
}

// Update persists the delivery state of an outbox event.
func (r *SQLiteOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE outbox_events
			  SET status = ?, retries = ?, last_error = ?, processed_at = ?, updated_at = ?
			  WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, string(event.Status), event.Retries, event.LastError,
		event.ProcessedAt, event.UpdatedAt, event.ID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to update outbox event")
	}
	return nil
}
