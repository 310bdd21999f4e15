package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-service/internal/api/dto"
	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/service"
	apperrors "github.com/spec-kit/school-service/pkg/util"
)

// AuthHandler exposes login, refresh and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest("email and password required")
	}

	user, pair, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user": dto.PrincipalResponse{
				ID:            user.ID,
				Name:          user.Name,
				Email:         user.Email,
				Role:          string(user.Role),
				SchoolID:      user.SchoolIDValue(),
				EmailVerified: user.EmailVerified,
			},
			"auth": dto.AuthResponse{
				Token:            pair.AccessToken,
				ExpiresAt:        pair.AccessExpiresAt,
				RefreshToken:     pair.RefreshToken,
				RefreshExpiresAt: &pair.RefreshExpiresAt,
			},
		},
	})
}

// Refresh handles POST /auth/refresh: exchanges a refresh token for a new
// short-lived access token.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.RefreshToken == "" {
		return apperrors.NewBadRequest("refreshToken required")
	}

	token, expiresAt, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
	})
}

// Me handles GET /auth/me. Behind Protect only: it must keep working for
// unverified emails and not-yet-active schools.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authorized")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": dto.PrincipalResponse{
			ID:            principal.ID,
			Name:          principal.Name,
			Email:         principal.Email,
			Role:          string(principal.Role),
			SchoolID:      principal.SchoolID,
			EmailVerified: principal.EmailVerified,
		},
	})
}

// Logout handles POST /auth/logout. Tokens are stateless with no revocation
// list; the client discards its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}
