package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-service/internal/api/dto"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/service"
	"github.com/spec-kit/school-service/internal/tenant"
	apperrors "github.com/spec-kit/school-service/pkg/util"
)

// StudentsHandler exposes tenant-scoped student records.
type StudentsHandler struct {
	students *service.StudentService
}

// NewStudentsHandler constructs the handler.
func NewStudentsHandler(students *service.StudentService) *StudentsHandler {
	return &StudentsHandler{students: students}
}

// List handles GET /students. The read-scoping filter pins the query to the
// active school no matter what the caller asked for.
func (h *StudentsHandler) List(c *fiber.Ctx) error {
	var query dto.StudentListQuery
	if err := c.QueryParser(&query); err != nil {
		return apperrors.NewBadRequest("invalid query")
	}

	filter := domain.StudentFilter{
		ClassName: query.ClassName,
		Search:    query.Search,
		Limit:     query.Limit,
		Offset:    query.Offset,
	}
	tenant.ScopeQuery(c, &filter)

	students, err := h.students.List(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, s := range students {
		items = append(items, toStudentResponse(&s))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// Create handles POST /students. The write-scoping filter overwrites any
// caller-supplied school id with the resolved tenant's.
func (h *StudentsHandler) Create(c *fiber.Ctx) error {
	var req dto.StudentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.UserID == "" || req.FirstName == "" || req.LastName == "" || req.AdmissionNumber == "" {
		return apperrors.NewBadRequest("userId, firstName, lastName, admissionNumber required")
	}

	student := domain.Student{
		UserID:          req.UserID,
		SchoolID:        req.SchoolID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		AdmissionNumber: req.AdmissionNumber,
		ClassName:       req.ClassName,
	}
	tenant.ScopeWrite(c, &student)

	if err := h.students.Create(c.Context(), &student); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": toStudentResponse(&student)})
}

// Get handles GET /students/:id, guarded by the owner-or-role gate.
func (h *StudentsHandler) Get(c *fiber.Ctx) error {
	student, err := h.students.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": toStudentResponse(student)})
}

func toStudentResponse(s *domain.Student) dto.StudentResponse {
	return dto.StudentResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		SchoolID:        s.SchoolID,
		FirstName:       s.FirstName,
		LastName:        s.LastName,
		AdmissionNumber: s.AdmissionNumber,
		ClassName:       s.ClassName,
		CreatedAt:       s.CreatedAt,
	}
}
