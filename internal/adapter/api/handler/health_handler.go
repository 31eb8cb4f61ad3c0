package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	orderStore string
}

func NewHealthHandler(orderStore string) *HealthHandler {
	return &HealthHandler{orderStore: orderStore}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "Server is running",
		"order_store": h.orderStore,
		"time":        time.Now().Format(time.RFC3339),
	})
}
