package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/school-service/internal/domain"
)

// StudentRepository defines persistence access for student records.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	List(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (user_id, school_id, first_name, last_name, admission_number, class_name)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		student.UserID,
		student.SchoolID,
		student.FirstName,
		student.LastName,
		student.AdmissionNumber,
		student.ClassName,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	const query = `
        SELECT id, user_id, school_id, first_name, last_name, admission_number, class_name,
               created_at, updated_at
        FROM students WHERE id=$1`

	var student domain.Student
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.UserID,
		&student.SchoolID,
		&student.FirstName,
		&student.LastName,
		&student.AdmissionNumber,
		&student.ClassName,
		&student.CreatedAt,
		&student.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) List(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.SchoolID != "" {
		add("school_id=$%d", filter.SchoolID)
	}
	if filter.ClassName != "" {
		add("class_name=$%d", filter.ClassName)
	}
	if filter.Search != "" {
		add("(first_name ILIKE '%%' || $%d || '%%' OR last_name ILIKE '%%' || $%[1]d || '%%')", filter.Search)
	}

	query := `
        SELECT id, user_id, school_id, first_name, last_name, admission_number, class_name,
               created_at, updated_at
        FROM students`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY last_name, first_name"

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		var student domain.Student
		if err := rows.Scan(
			&student.ID,
			&student.UserID,
			&student.SchoolID,
			&student.FirstName,
			&student.LastName,
			&student.AdmissionNumber,
			&student.ClassName,
			&student.CreatedAt,
			&student.UpdatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}
