package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/school-service/internal/domain"
)

// SchoolRepository defines persistence access for school tenants.
type SchoolRepository interface {
	GetByID(ctx context.Context, id string) (*domain.School, error)
	GetBySubdomain(ctx context.Context, subdomain string, statuses ...domain.SchoolStatus) (*domain.School, error)
}

type schoolRepository struct {
	pool *pgxpool.Pool
}

// NewSchoolRepository returns a Postgres-backed implementation.
func NewSchoolRepository(pool *pgxpool.Pool) SchoolRepository {
	return &schoolRepository{pool: pool}
}

func (r *schoolRepository) GetByID(ctx context.Context, id string) (*domain.School, error) {
	const query = `
        SELECT id, name, subdomain, status, created_at, updated_at
        FROM schools WHERE id=$1`

	var school domain.School
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&school.ID,
		&school.Name,
		&school.Subdomain,
		&school.Status,
		&school.CreatedAt,
		&school.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepository) GetBySubdomain(ctx context.Context, subdomain string, statuses ...domain.SchoolStatus) (*domain.School, error) {
	const query = `
        SELECT id, name, subdomain, status, created_at, updated_at
        FROM schools WHERE subdomain=$1 AND status = ANY($2)`

	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	var school domain.School
	if err := r.pool.QueryRow(ctx, query, subdomain, values).Scan(
		&school.ID,
		&school.Name,
		&school.Subdomain,
		&school.Status,
		&school.CreatedAt,
		&school.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &school, nil
}
