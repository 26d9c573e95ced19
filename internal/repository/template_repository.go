package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *domain.Template) error
	GetByID(ctx context.Context, id int64) (*domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
	ListByTrigger(ctx context.Context, trigger domain.TriggerType) ([]domain.Template, error)
	// Returns the oldest template with the given trigger type; first match
	// wins when several exist.
	FirstByTrigger(ctx context.Context, trigger domain.TriggerType) (*domain.Template, error)
	Update(ctx context.Context, template *domain.Template) error
	Delete(ctx context.Context, id int64) error
}

type templateRepository struct {
	db *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, template *domain.Template) error {
	sql := `
        INSERT INTO templates (name, message, trigger_type, delay_days)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, sql,
		template.Name, template.Message, template.TriggerType, template.DelayDays,
	).Scan(&template.ID, &template.CreatedAt)
}

func (r *templateRepository) GetByID(ctx context.Context, id int64) (*domain.Template, error) {
	sql := `SELECT id, name, message, trigger_type, delay_days, created_at
			FROM templates WHERE id = $1`

	var t domain.Template
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&t.ID, &t.Name, &t.Message, &t.TriggerType, &t.DelayDays, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *templateRepository) List(ctx context.Context) ([]domain.Template, error) {
	sql := `SELECT id, name, message, trigger_type, delay_days, created_at
			FROM templates ORDER BY created_at DESC`
	return r.queryTemplates(ctx, sql)
}

func (r *templateRepository) ListByTrigger(ctx context.Context, trigger domain.TriggerType) ([]domain.Template, error) {
	sql := `SELECT id, name, message, trigger_type, delay_days, created_at
			FROM templates WHERE trigger_type = $1 ORDER BY created_at ASC`
	return r.queryTemplates(ctx, sql, trigger)
}

func (r *templateRepository) FirstByTrigger(ctx context.Context, trigger domain.TriggerType) (*domain.Template, error) {
	sql := `SELECT id, name, message, trigger_type, delay_days, created_at
			FROM templates WHERE trigger_type = $1 ORDER BY created_at ASC LIMIT 1`

	var t domain.Template
	err := r.db.QueryRow(ctx, sql, trigger).Scan(
		&t.ID, &t.Name, &t.Message, &t.TriggerType, &t.DelayDays, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *templateRepository) queryTemplates(ctx context.Context, sql string, args ...any) ([]domain.Template, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]domain.Template, 0)
	for rows.Next() {
		var t domain.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Message, &t.TriggerType, &t.DelayDays, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *templateRepository) Update(ctx context.Context, template *domain.Template) error {
	sql := `UPDATE templates
			SET name = $1, message = $2, trigger_type = $3, delay_days = $4
			WHERE id = $5`

	cmdTag, err := r.db.Exec(ctx, sql,
		template.Name, template.Message, template.TriggerType, template.DelayDays, template.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
