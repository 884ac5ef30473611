package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse carries a human-readable confirmation.
type messageResponse struct {
	Message string `json:"message"`
}

// emptyResponse renders as {}. Lookups that miss and searches without
// matches answer with it.
type emptyResponse struct{}

// bindJSON decodes a required JSON body into dst and validates it.
func bindJSON(c echo.Context, dst any) error {
	if c.Request().ContentLength == 0 {
		return errBadJSON()
	}
	if err := c.Bind(dst); err != nil {
		return errBadJSON()
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Schema de request no valido: "+err.Error())
	}
	return nil
}

func errBadJSON() error {
	return echo.NewHTTPError(http.StatusBadRequest, "JSON invalido o faltante")
}
