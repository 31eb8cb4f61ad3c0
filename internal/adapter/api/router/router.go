package router

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/adapter/api/handler"
	"gamebazaar/internal/adapter/api/middleware"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Health   *handler.HealthHandler
	DevToken *handler.DevTokenHandler
	User     *handler.UserHandler
	Chat     *handler.ChatHandler
	Order    *handler.OrderHandler
	Checkout *handler.CheckoutHandler
	Listing  *handler.ListingHandler
	Boosting *handler.BoostingHandler
	Admin    *handler.AdminHandler
	WS       *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, environment string, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupHealthRouter(e, h.Health)
	SetupDevRouter(e, h.DevToken, environment)
	SetupUserRouter(e, h.User, authMiddleware)
	SetupListingRouter(e, h.Listing, authMiddleware)
	SetupChatRouter(e, h.Chat, h.Order, authMiddleware)
	SetupCheckoutRouter(e, h.Checkout, authMiddleware)
	SetupBoostingRouter(e, h.Boosting, authMiddleware)
	SetupAdminRouter(e, h.Admin, authMiddleware, adminMiddleware)
	SetupWebSocketRouter(e, h.WS, authMiddleware)
}
