package router

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/adapter/api/handler"
	"gamebazaar/internal/adapter/api/middleware"
)

// SetupChatRouter registers conversation routes and the order actions that live inside a chat.
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, orderHandler *handler.OrderHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("", chatHandler.CreateChat)
	chatGroup.GET("", chatHandler.GetUserChats)
	chatGroup.GET("/:id", chatHandler.GetChatByID)
	chatGroup.PUT("/:id/read", chatHandler.MarkChatAsRead)

	chatGroup.GET("/:id/messages", chatHandler.GetChatMessages)
	chatGroup.POST("/:id/messages/text", chatHandler.SendText)
	chatGroup.POST("/:id/messages/image", chatHandler.SendImage)

	orderGroup := chatGroup.Group("/:id/order")
	orderGroup.GET("/actions", orderHandler.GetActions)
	orderGroup.POST("/confirm-delivery", orderHandler.ConfirmDelivery)
	orderGroup.POST("/confirm", orderHandler.ConfirmOrder)
	orderGroup.POST("/dispute", orderHandler.OpenDispute)
	orderGroup.POST("/dispute/close", orderHandler.CloseDispute)
}
