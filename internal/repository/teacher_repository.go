package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/school-service/internal/domain"
)

// TeacherRepository defines persistence access for teacher profiles.
type TeacherRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Teacher, error)
}

type teacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository returns a Postgres-backed implementation.
func NewTeacherRepository(pool *pgxpool.Pool) TeacherRepository {
	return &teacherRepository{pool: pool}
}

func (r *teacherRepository) GetByID(ctx context.Context, id string) (*domain.Teacher, error) {
	const query = `
        SELECT id, user_id, school_id, first_name, last_name, subject, created_at, updated_at
        FROM teachers WHERE id=$1`

	var teacher domain.Teacher
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&teacher.ID,
		&teacher.UserID,
		&teacher.SchoolID,
		&teacher.FirstName,
		&teacher.LastName,
		&teacher.Subject,
		&teacher.CreatedAt,
		&teacher.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &teacher, nil
}
