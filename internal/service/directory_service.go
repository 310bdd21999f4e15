package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/repository"
	apperrors "github.com/spec-kit/school-service/pkg/util"
)

// DirectoryService exposes the per-person records behind the owner-or-role
// gates: teacher profiles, staff profiles and accounts.
type DirectoryService struct {
	users    repository.UserRepository
	teachers repository.TeacherRepository
	staff    repository.StaffRepository
}

// NewDirectoryService builds the service.
func NewDirectoryService(users repository.UserRepository, teachers repository.TeacherRepository, staff repository.StaffRepository) *DirectoryService {
	return &DirectoryService{users: users, teachers: teachers, staff: staff}
}

// Teacher fetches one teacher profile.
func (s *DirectoryService) Teacher(ctx context.Context, id string) (*domain.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("teacher")
		}
		return nil, apperrors.NewInternal(err)
	}
	return teacher, nil
}

// Staff fetches one staff profile.
func (s *DirectoryService) Staff(ctx context.Context, id string) (*domain.StaffMember, error) {
	member, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff member")
		}
		return nil, apperrors.NewInternal(err)
	}
	return member, nil
}

// User fetches one account.
func (s *DirectoryService) User(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.NewInternal(err)
	}
	return user, nil
}

// TeacherOwnerLookup resolves the account owning a teacher profile.
func (s *DirectoryService) TeacherOwnerLookup() func(ctx context.Context, id string) (string, error) {
	return func(ctx context.Context, id string) (string, error) {
		teacher, err := s.teachers.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return teacher.UserID, nil
	}
}

// StaffOwnerLookup resolves the account owning a staff profile.
func (s *DirectoryService) StaffOwnerLookup() func(ctx context.Context, id string) (string, error) {
	return func(ctx context.Context, id string) (string, error) {
		member, err := s.staff.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return member.UserID, nil
	}
}

// UserOwnerLookup resolves ownership of a user-type resource: an account is
// owned by itself. The lookup still verifies the account exists so the gate
// fails closed on unknown ids.
func (s *DirectoryService) UserOwnerLookup() func(ctx context.Context, id string) (string, error) {
	return func(ctx context.Context, id string) (string, error) {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return user.ID, nil
	}
}
