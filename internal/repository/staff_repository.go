package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/school-service/internal/domain"
)

// StaffRepository defines persistence access for non-teaching staff profiles.
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository returns a Postgres-backed implementation.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	const query = `
        SELECT id, user_id, school_id, first_name, last_name, position, created_at, updated_at
        FROM staff_members WHERE id=$1`

	var member domain.StaffMember
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.UserID,
		&member.SchoolID,
		&member.FirstName,
		&member.LastName,
		&member.Position,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}
