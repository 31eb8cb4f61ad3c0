package handler

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/internal/usecase"
	"gamebazaar/pkg/response"
	"gamebazaar/pkg/utils"
)

type AdminHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewAdminHandler(orderUseCase *usecase.OrderUseCase) *AdminHandler {
	return &AdminHandler{orderUseCase: orderUseCase}
}

type resolveDisputeRequest struct {
	Resolution string `json:"resolution" validate:"required,oneof=refund release"`
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	p := utils.GetPaginationParams(c)
	filter := repository.OrderFilter{
		Status: entity.OrderStatus(c.QueryParam("status")),
		UserID: c.QueryParam("user_id"),
	}

	orders, total, err := h.orderUseCase.ListOrders(c.Request().Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, orders, total, p.Limit, p.Offset)
}

func (h *AdminHandler) GetOrder(c echo.Context) error {
	order, err := h.orderUseCase.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *AdminHandler) GetOrderStats(c echo.Context) error {
	stats, err := h.orderUseCase.Stats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}

func (h *AdminHandler) ResolveDispute(c echo.Context) error {
	var req resolveDisputeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	result, err := h.orderUseCase.AdminResolve(c.Request().Context(), actor, c.Param("id"), req.Resolution)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}
