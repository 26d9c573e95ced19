package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

type VisitorRepository interface {
	Create(ctx context.Context, visitor *domain.Visitor) error
	GetByID(ctx context.Context, id int64) (*domain.Visitor, error)
	List(ctx context.Context) ([]domain.Visitor, error)
	// Returns visitors whose intake time falls inside [start, end].
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]domain.Visitor, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type visitorRepository struct {
	db *pgxpool.Pool
}

func NewVisitorRepository(db *pgxpool.Pool) VisitorRepository {
	return &visitorRepository{db: db}
}

const visitorColumns = `id, name, phone, gender, service, birth_month, birth_day,
	marital_status, anniversary_month, anniversary_day, notes, created_at`

func (r *visitorRepository) Create(ctx context.Context, visitor *domain.Visitor) error {
	sql := `
        INSERT INTO visitors (name, phone, gender, service, birth_month, birth_day,
			marital_status, anniversary_month, anniversary_day, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, sql,
		visitor.Name, visitor.Phone, visitor.Gender, visitor.Service,
		visitor.BirthMonth, visitor.BirthDay, visitor.MaritalStatus,
		visitor.AnniversaryMonth, visitor.AnniversaryDay, visitor.Notes,
	).Scan(&visitor.ID, &visitor.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return types.ErrDuplicatePhone
	}
	return err
}

func (r *visitorRepository) GetByID(ctx context.Context, id int64) (*domain.Visitor, error) {
	sql := `SELECT ` + visitorColumns + ` FROM visitors WHERE id = $1`

	var v domain.Visitor
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&v.ID, &v.Name, &v.Phone, &v.Gender, &v.Service,
		&v.BirthMonth, &v.BirthDay, &v.MaritalStatus,
		&v.AnniversaryMonth, &v.AnniversaryDay, &v.Notes, &v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *visitorRepository) List(ctx context.Context) ([]domain.Visitor, error) {
	sql := `SELECT ` + visitorColumns + ` FROM visitors ORDER BY created_at DESC`
	return r.queryVisitors(ctx, sql)
}

func (r *visitorRepository) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]domain.Visitor, error) {
	sql := `SELECT ` + visitorColumns + ` FROM visitors
			WHERE created_at >= $1 AND created_at <= $2
			ORDER BY created_at DESC`
	return r.queryVisitors(ctx, sql, start, end)
}

func (r *visitorRepository) queryVisitors(ctx context.Context, sql string, args ...any) ([]domain.Visitor, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visitors := make([]domain.Visitor, 0)
	for rows.Next() {
		var v domain.Visitor
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Phone, &v.Gender, &v.Service,
			&v.BirthMonth, &v.BirthDay, &v.MaritalStatus,
			&v.AnniversaryMonth, &v.AnniversaryDay, &v.Notes, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (r *visitorRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM visitors WHERE phone = $1)`, phone).Scan(&exists)
	return exists, err
}

func (r *visitorRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM visitors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
