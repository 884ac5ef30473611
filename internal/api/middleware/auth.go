package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/pkg/token"
)

const actorKey = "actor"

// Auth verifies the bearer token and stores the resulting domain.Actor in
// the context. The handler is never reached without a verified token.
func Auth(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Decode(strings.TrimSpace(parts[1]))
			if errors.Is(err, token.ErrExpired) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			SetActor(c, claims.Actor())
			return next(c)
		}
	}
}

// SetActor stores the authenticated caller in c.
func SetActor(c echo.Context, a domain.Actor) {
	c.Set(actorKey, a)
}

// ActorFrom returns the actor stored by Auth.
func ActorFrom(c echo.Context) (domain.Actor, bool) {
	a, ok := c.Get(actorKey).(domain.Actor)
	return a, ok
}
