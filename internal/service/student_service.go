package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/repository"
	apperrors "github.com/spec-kit/school-service/pkg/util"
)

// StudentService exposes the student records behind the authorization
// pipeline. Tenant scoping is applied by the handlers before calling in.
type StudentService struct {
	students repository.StudentRepository
}

// NewStudentService builds the service.
func NewStudentService(students repository.StudentRepository) *StudentService {
	return &StudentService{students: students}
}

// List returns students matching the (already scoped) filter.
func (s *StudentService) List(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error) {
	students, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return students, nil
}

// Get fetches one student record.
func (s *StudentService) Get(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("student")
		}
		return nil, apperrors.NewInternal(err)
	}
	return student, nil
}

// Create persists a new (already scoped) student record.
func (s *StudentService) Create(ctx context.Context, student *domain.Student) error {
	if student.SchoolID == "" {
		return apperrors.NewForbidden("no school is associated with this request", nil)
	}
	if err := s.students.Create(ctx, student); err != nil {
		return apperrors.NewInternal(err)
	}
	return nil
}

// OwnerLookup resolves the owning account of a student record for the
// owner-or-role gate.
func (s *StudentService) OwnerLookup() func(ctx context.Context, id string) (string, error) {
	return func(ctx context.Context, id string) (string, error) {
		student, err := s.students.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return student.UserID, nil
	}
}
