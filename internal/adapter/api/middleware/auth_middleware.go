package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/infrastructure/auth"
	"gamebazaar/pkg/errors"
	"gamebazaar/pkg/response"
)

const actorKey = "actor"

// ActorResolver turns a verified user id into the acting user.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (entity.Actor, error)
}

type AuthMiddleware struct {
	tokens *auth.TokenManager
	actors ActorResolver
}

func NewAuthMiddleware(tokens *auth.TokenManager, actors ActorResolver) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		actors: actors,
	}
}

// bearerToken reads the Authorization header, falling back to the token
// query param that browsers use for WebSocket upgrades.
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		if t := c.QueryParam("token"); t != "" {
			return t, nil
		}
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return parts[1], nil
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		actor, err := m.actors.ResolveActor(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				return response.Error(c, errors.Unauthorized("Unknown user", err))
			}
			return response.Error(c, err)
		}

		c.Set("uid", actor.ID)
		c.Set(actorKey, actor)

		return next(c)
	}
}

// CurrentActor returns the actor stored by Authenticate.
func CurrentActor(c echo.Context) (entity.Actor, bool) {
	actor, ok := c.Get(actorKey).(entity.Actor)
	return actor, ok
}

// SetActor stores actor on the context; used where authentication happened elsewhere.
func SetActor(c echo.Context, actor entity.Actor) {
	c.Set("uid", actor.ID)
	c.Set(actorKey, actor)
}
