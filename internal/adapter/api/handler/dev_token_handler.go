package handler

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/domain/repository"
	"gamebazaar/internal/infrastructure/auth"
	"gamebazaar/pkg/response"
)

// DevTokenHandler issues actor tokens for seeded users. Development only.
type DevTokenHandler struct {
	tokens   *auth.TokenManager
	userRepo repository.UserRepository
}

func NewDevTokenHandler(tokens *auth.TokenManager, userRepo repository.UserRepository) *DevTokenHandler {
	return &DevTokenHandler{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	user, err := h.userRepo.GetByID(c.Request().Context(), c.Param("userID"))
	if err != nil {
		return response.Error(c, err)
	}

	token, expiresAt, err := h.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}

func (h *DevTokenHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepo.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, users)
}
