package handler

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/adapter/api/middleware"
	"gamebazaar/internal/domain/entity"
	"gamebazaar/pkg/errors"
)

func currentActor(c echo.Context) (entity.Actor, error) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return entity.Actor{}, errors.Unauthorized("Authentication required", nil)
	}
	return actor, nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
