package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

type QueueRepository interface {
	// Creates a pending record. Duplicate visitor+template pairs are
	// allowed; broadcast scheduling intentionally creates many.
	Enqueue(ctx context.Context, item *domain.QueuedMessage) error
	// Returns pending items with scheduled_for <= now, earliest first.
	ListDue(ctx context.Context, now time.Time) ([]domain.QueuedMessage, error)
	ListPending(ctx context.Context) ([]domain.QueuedMessage, error)
	// Transitions a record to a terminal state. Only the processor calls
	// this; it never moves an item out of sent or failed.
	UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) error
	CountByStatus(ctx context.Context) (map[domain.MessageStatus]int64, error)
	// Retention hook: deletes terminal rows older than the cutoff.
	PurgeTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type queueRepository struct {
	db *pgxpool.Pool
}

func NewQueueRepository(db *pgxpool.Pool) QueueRepository {
	return &queueRepository{db: db}
}

const queueColumns = `id, visitor_id, template_id, phone, message, scheduled_for, status, batch_id, created_at`

func (r *queueRepository) Enqueue(ctx context.Context, item *domain.QueuedMessage) error {
	sql := `
        INSERT INTO message_queue (visitor_id, template_id, phone, message, scheduled_for, status, batch_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`

	if item.Status == "" {
		item.Status = domain.StatusPending
	}

	return r.db.QueryRow(ctx, sql,
		item.VisitorID, item.TemplateID, item.Phone, item.Message,
		item.ScheduledFor, item.Status, item.BatchID,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *queueRepository) ListDue(ctx context.Context, now time.Time) ([]domain.QueuedMessage, error) {
	sql := `SELECT ` + queueColumns + ` FROM message_queue
			WHERE status = $1 AND scheduled_for <= $2
			ORDER BY scheduled_for ASC`
	return r.queryItems(ctx, sql, domain.StatusPending, now)
}

func (r *queueRepository) ListPending(ctx context.Context) ([]domain.QueuedMessage, error) {
	sql := `SELECT ` + queueColumns + ` FROM message_queue
			WHERE status = $1
			ORDER BY scheduled_for ASC`
	return r.queryItems(ctx, sql, domain.StatusPending)
}

func (r *queueRepository) queryItems(ctx context.Context, sql string, args ...any) ([]domain.QueuedMessage, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.QueuedMessage, 0)
	for rows.Next() {
		var item domain.QueuedMessage
		if err := rows.Scan(
			&item.ID, &item.VisitorID, &item.TemplateID, &item.Phone, &item.Message,
			&item.ScheduledFor, &item.Status, &item.BatchID, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *queueRepository) UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) error {
	// The status guard keeps terminal rows terminal even if two processes
	// ever race on the same item.
	sql := `UPDATE message_queue
			SET status = $1
			WHERE id = $2 AND status = $3`

	cmdTag, err := r.db.Exec(ctx, sql, status, id, domain.StatusPending)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *queueRepository) CountByStatus(ctx context.Context) (map[domain.MessageStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM message_queue GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.MessageStatus]int64)
	for rows.Next() {
		var status domain.MessageStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *queueRepository) PurgeTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	sql := `DELETE FROM message_queue
			WHERE status IN ($1, $2) AND created_at < $3`

	cmdTag, err := r.db.Exec(ctx, sql, domain.StatusSent, domain.StatusFailed, cutoff)
	if err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}
