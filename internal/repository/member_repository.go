package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	// Returns members whose birthday falls on the given month and day.
	ListByBirthday(ctx context.Context, month, day int) ([]domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type memberRepository struct {
	db *pgxpool.Pool
}

func NewMemberRepository(db *pgxpool.Pool) MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, name, phone, email, gender, category, membership_status,
	birth_month, birth_day, marital_status, anniversary_month, anniversary_day,
	address, notes, join_date, created_at`

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	sql := `
        INSERT INTO members (name, phone, email, gender, category, membership_status,
			birth_month, birth_day, marital_status, anniversary_month, anniversary_day,
			address, notes, join_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, sql,
		member.Name, member.Phone, member.Email, member.Gender,
		member.Category, member.MembershipStatus,
		member.BirthMonth, member.BirthDay, member.MaritalStatus,
		member.AnniversaryMonth, member.AnniversaryDay,
		member.Address, member.Notes, member.JoinDate,
	).Scan(&member.ID, &member.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return types.ErrDuplicatePhone
	}
	return err
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	sql := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	var m domain.Member
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&m.ID, &m.Name, &m.Phone, &m.Email, &m.Gender, &m.Category, &m.MembershipStatus,
		&m.BirthMonth, &m.BirthDay, &m.MaritalStatus, &m.AnniversaryMonth, &m.AnniversaryDay,
		&m.Address, &m.Notes, &m.JoinDate, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	sql := `SELECT ` + memberColumns + ` FROM members ORDER BY created_at DESC`
	return r.queryMembers(ctx, sql)
}

func (r *memberRepository) ListByBirthday(ctx context.Context, month, day int) ([]domain.Member, error) {
	sql := `SELECT ` + memberColumns + ` FROM members
			WHERE birth_month = $1 AND birth_day = $2`
	return r.queryMembers(ctx, sql, month, day)
}

func (r *memberRepository) queryMembers(ctx context.Context, sql string, args ...any) ([]domain.Member, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]domain.Member, 0)
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Phone, &m.Email, &m.Gender, &m.Category, &m.MembershipStatus,
			&m.BirthMonth, &m.BirthDay, &m.MaritalStatus, &m.AnniversaryMonth, &m.AnniversaryDay,
			&m.Address, &m.Notes, &m.JoinDate, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	sql := `UPDATE members
			SET name = $1, phone = $2, email = $3, gender = $4, category = $5,
				membership_status = $6, birth_month = $7, birth_day = $8,
				marital_status = $9, anniversary_month = $10, anniversary_day = $11,
				address = $12, notes = $13, join_date = $14
			WHERE id = $15`

	cmdTag, err := r.db.Exec(ctx, sql,
		member.Name, member.Phone, member.Email, member.Gender, member.Category,
		member.MembershipStatus, member.BirthMonth, member.BirthDay,
		member.MaritalStatus, member.AnniversaryMonth, member.AnniversaryDay,
		member.Address, member.Notes, member.JoinDate, member.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *memberRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM members WHERE phone = $1)`, phone).Scan(&exists)
	return exists, err
}

func (r *memberRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
