package router

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/adapter/api/handler"
	"gamebazaar/internal/adapter/api/middleware"
)

func SetupBoostingRouter(e *echo.Echo, boostingHandler *handler.BoostingHandler, authMiddleware *middleware.AuthMiddleware) {
	boosting := e.Group("/v1/boosting")

	boosting.GET("", boostingHandler.ListRequests)
	boosting.GET("/:id", boostingHandler.GetRequest)

	boosting.POST("", boostingHandler.CreateRequest, authMiddleware.Authenticate)
	boosting.POST("/:id/bids", boostingHandler.PlaceBid, authMiddleware.Authenticate)
	boosting.POST("/:id/bids/:bidID/accept", boostingHandler.AcceptBid, authMiddleware.Authenticate)
}
