package router

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/adapter/api/handler"
	"gamebazaar/internal/adapter/api/middleware"
)

func SetupCheckoutRouter(e *echo.Echo, checkoutHandler *handler.CheckoutHandler, authMiddleware *middleware.AuthMiddleware) {
	e.POST("/v1/checkout", checkoutHandler.Checkout, authMiddleware.Authenticate, middleware.PaymentRateLimit())
}
