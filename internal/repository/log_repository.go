package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
)

type LogRepository interface {
	Create(ctx context.Context, entry *domain.MessageLog) error
	// Recent-first page straight from the table; used when the cache is cold.
	List(ctx context.Context, limit, offset int) ([]domain.MessageLog, int64, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.MessageLog, error)
}

type logRepository struct {
	db *pgxpool.Pool
}

func NewLogRepository(db *pgxpool.Pool) LogRepository {
	return &logRepository{db: db}
}

const logColumns = `id, visitor_id, visitor_name, phone, message, status, provider_response, sent_at`

func (r *logRepository) Create(ctx context.Context, entry *domain.MessageLog) error {
	sql := `
        INSERT INTO message_logs (visitor_id, visitor_name, phone, message, status, provider_response)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, sent_at`

	return r.db.QueryRow(ctx, sql,
		entry.VisitorID, entry.VisitorName, entry.Phone, entry.Message,
		entry.Status, entry.ProviderResponse,
	).Scan(&entry.ID, &entry.SentAt)
}

func (r *logRepository) List(ctx context.Context, limit, offset int) ([]domain.MessageLog, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM message_logs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := `SELECT ` + logColumns + ` FROM message_logs
			ORDER BY sent_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	logs, err := scanLogs(rows)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *logRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.MessageLog, error) {
	if len(ids) == 0 {
		return []domain.MessageLog{}, nil
	}

	sql := `SELECT ` + logColumns + ` FROM message_logs WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, sql, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs, err := scanLogs(rows)
	if err != nil {
		return nil, err
	}

	// Preserve the ID ordering the cache handed us.
	logsByID := make(map[int64]domain.MessageLog, len(logs))
	for _, entry := range logs {
		logsByID[entry.ID] = entry
	}
	result := make([]domain.MessageLog, 0, len(ids))
	for _, id := range ids {
		if entry, ok := logsByID[id]; ok {
			result = append(result, entry)
		}
	}
	return result, nil
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanLogs(rows pgxRows) ([]domain.MessageLog, error) {
	logs := make([]domain.MessageLog, 0)
	for rows.Next() {
		var entry domain.MessageLog
		if err := rows.Scan(
			&entry.ID, &entry.VisitorID, &entry.VisitorName, &entry.Phone,
			&entry.Message, &entry.Status, &entry.ProviderResponse, &entry.SentAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
