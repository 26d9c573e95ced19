package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

// ServiceRepository stores the service-time names offered on the visitor form.
type ServiceRepository interface {
	ListNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name string) error
	DeleteByName(ctx context.Context, name string) error
}

type serviceRepository struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM services ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *serviceRepository) Create(ctx context.Context, name string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO services (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	return err
}

func (r *serviceRepository) DeleteByName(ctx context.Context, name string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM services WHERE name = $1`, name)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
