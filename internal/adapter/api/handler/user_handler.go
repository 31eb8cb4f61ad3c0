package handler

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/usecase"
	"gamebazaar/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase}
}

func (h *UserHandler) GetMe(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.GetProfile(c.Request().Context(), actor.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}
