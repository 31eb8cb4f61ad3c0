package middleware

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/pkg/errors"
	"gamebazaar/pkg/response"
)

type AdminMiddleware struct{}

func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := CurrentActor(c)
		if !ok {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}
		if !actor.IsAdmin() {
			return response.Error(c, errors.Forbidden("Admin privileges required", nil))
		}
		return next(c)
	}
}
