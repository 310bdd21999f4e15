package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-service/internal/api/dto"
	"github.com/spec-kit/school-service/internal/service"
)

// DirectoryHandler exposes the per-person lookups behind owner-or-role gates.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs the handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// GetTeacher handles GET /teachers/:id.
func (h *DirectoryHandler) GetTeacher(c *fiber.Ctx) error {
	teacher, err := h.directory.Teacher(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.TeacherResponse{
		ID:        teacher.ID,
		UserID:    teacher.UserID,
		SchoolID:  teacher.SchoolID,
		FirstName: teacher.FirstName,
		LastName:  teacher.LastName,
		Subject:   teacher.Subject,
	}})
}

// GetStaff handles GET /staff/:id.
func (h *DirectoryHandler) GetStaff(c *fiber.Ctx) error {
	member, err := h.directory.Staff(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.StaffResponse{
		ID:        member.ID,
		UserID:    member.UserID,
		SchoolID:  member.SchoolID,
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Position:  string(member.Position),
	}})
}

// GetUser handles GET /users/:id.
func (h *DirectoryHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.directory.User(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          string(user.Role),
		SchoolID:      user.SchoolIDValue(),
		EmailVerified: user.EmailVerified,
		IsActive:      user.IsActive,
	}})
}
