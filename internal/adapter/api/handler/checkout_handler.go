package handler

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/usecase"
	"gamebazaar/pkg/response"
)

type CheckoutHandler struct {
	checkoutUseCase *usecase.CheckoutUseCase
}

func NewCheckoutHandler(checkoutUseCase *usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{checkoutUseCase: checkoutUseCase}
}

type checkoutRequest struct {
	ListingID     string `json:"listing_id" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	Nickname      string `json:"nickname"`
	TradeURL      string `json:"trade_url" validate:"omitempty,url"`
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	result, err := h.checkoutUseCase.CompletePurchase(c.Request().Context(), actor, usecase.PurchaseInput{
		ListingID:     req.ListingID,
		PaymentMethod: req.PaymentMethod,
		Delivery: usecase.DeliveryInfo{
			Nickname: req.Nickname,
			TradeURL: req.TradeURL,
		},
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}
