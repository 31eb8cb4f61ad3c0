package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"gamebazaar/pkg/errors"
	"gamebazaar/pkg/logger"
	"gamebazaar/pkg/response"
)

// RateLimit limits requests per authenticated user, or per client IP for
// anonymous requests, to perMinute with the given burst.
func RateLimit(perMinute, burst int) echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     burst,
		ExpiresIn: 10 * time.Minute,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if uid, ok := c.Get("uid").(string); ok && uid != "" {
				return "user:" + uid, nil
			}
			return "ip:" + c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return response.Error(c, errors.Internal("Failed to identify client", err))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("Rate limit exceeded: %s %s by %s", c.Request().Method, c.Path(), identifier)
			return response.Error(c, errors.TooManyRequests("Rate limit exceeded", 0))
		},
	})
}

// Presets shared by the routers.
func GeneralRateLimit() echo.MiddlewareFunc {
	return RateLimit(120, 30)
}

func PaymentRateLimit() echo.MiddlewareFunc {
	return RateLimit(10, 5)
}
