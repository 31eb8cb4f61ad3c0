package handler

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/usecase"
	"gamebazaar/pkg/response"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{orderUseCase: orderUseCase}
}

// An empty order id targets the latest order in the chat.
type orderTargetRequest struct {
	OrderID string `json:"order_id"`
}

type confirmOrderRequest struct {
	OrderID string `json:"order_id"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Text    string `json:"text" validate:"max=2000"`
}

func (h *OrderHandler) GetActions(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	view, err := h.orderUseCase.AvailableActions(c.Request().Context(), actor, c.Param("id"), c.QueryParam("order_id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, view)
}

type transitionFunc func(uc *usecase.OrderUseCase, c echo.Context, req orderTargetRequest) (*usecase.TransitionResult, error)

func (h *OrderHandler) transition(c echo.Context, fn transitionFunc) error {
	var req orderTargetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := fn(h.orderUseCase, c, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *OrderHandler) ConfirmDelivery(c echo.Context) error {
	return h.transition(c, func(uc *usecase.OrderUseCase, c echo.Context, req orderTargetRequest) (*usecase.TransitionResult, error) {
		actor, err := currentActor(c)
		if err != nil {
			return nil, err
		}
		return uc.ConfirmDelivery(c.Request().Context(), actor, c.Param("id"), req.OrderID)
	})
}

func (h *OrderHandler) OpenDispute(c echo.Context) error {
	return h.transition(c, func(uc *usecase.OrderUseCase, c echo.Context, req orderTargetRequest) (*usecase.TransitionResult, error) {
		actor, err := currentActor(c)
		if err != nil {
			return nil, err
		}
		return uc.OpenDispute(c.Request().Context(), actor, c.Param("id"), req.OrderID)
	})
}

func (h *OrderHandler) CloseDispute(c echo.Context) error {
	return h.transition(c, func(uc *usecase.OrderUseCase, c echo.Context, req orderTargetRequest) (*usecase.TransitionResult, error) {
		actor, err := currentActor(c)
		if err != nil {
			return nil, err
		}
		return uc.CloseDispute(c.Request().Context(), actor, c.Param("id"), req.OrderID)
	})
}

func (h *OrderHandler) ConfirmOrder(c echo.Context) error {
	var req confirmOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	result, err := h.orderUseCase.ConfirmOrder(c.Request().Context(), actor, c.Param("id"), req.OrderID, req.Rating, req.Text)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}
