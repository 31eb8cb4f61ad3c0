package router

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/adapter/api/handler"
	"gamebazaar/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, adminHandler *handler.AdminHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/orders", adminHandler.ListOrders)
	admin.GET("/orders/stats", adminHandler.GetOrderStats)
	admin.GET("/orders/:id", adminHandler.GetOrder)
	admin.POST("/orders/:id/resolve", adminHandler.ResolveDispute)
}
