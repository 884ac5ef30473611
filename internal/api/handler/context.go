package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/clinic-network/internal/api/middleware"
	"github.com/odontocare/clinic-network/internal/core/domain"
)

// actorFrom returns the caller stored by the Auth middleware. User tokens
// must carry a user id; without it the token is structurally valid but
// cannot be attributed to anyone.
func actorFrom(c echo.Context) (domain.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok || actor.Role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if !actor.IsService() && actor.UserID == 0 {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}
	return actor, nil
}
