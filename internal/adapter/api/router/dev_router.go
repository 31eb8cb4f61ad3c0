package router

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/adapter/api/handler"
)

func SetupDevRouter(e *echo.Echo, devTokenHandler *handler.DevTokenHandler, environment string) {
	if environment != "development" || devTokenHandler == nil {
		return
	}

	e.GET("/_dev/users", devTokenHandler.ListUsers)
	e.GET("/_dev/token/:userID", devTokenHandler.GenerateToken)
}
