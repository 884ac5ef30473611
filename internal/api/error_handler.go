package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/odontocare/clinic-network/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// conflictResponse is the envelope of a rejected booking. Clients show the
// message as is.
type conflictResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders {"error": "<message>"}, or {"message": "<message>"} for slot conflicts.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var conflict *domain.SlotConflictError
		if errors.As(err, &conflict) {
			_ = c.JSON(http.StatusBadRequest, conflictResponse{Message: conflict.Error()})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, auth middleware, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var exists *domain.UserExistsError
	if errors.As(err, &exists) {
		return http.StatusInternalServerError, exists.Error()
	}

	switch {
	case errors.Is(err, domain.ErrSlotTaken):
		return http.StatusBadRequest, "Ya hay una cita asignada para ese doctor, centro y hora"
	case errors.Is(err, domain.ErrBookingReference):
		return http.StatusNotFound, "El doctor, centro o paciente no existe o esta inactivo"
	case errors.Is(err, domain.ErrMissingFilter):
		return http.StatusBadRequest, "Se necesita al menos un parametro de filtrado"
	case errors.Is(err, domain.ErrAppointmentNotFound):
		return http.StatusNotFound, "Cita no encontrada"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Credenciales incorrectas"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "El usuario no existe"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusInternalServerError, "El usuario ya existe"
	case errors.Is(err, domain.ErrDoctorNotFound):
		return http.StatusNotFound, "Doctor no encontrado"
	case errors.Is(err, domain.ErrPatientNotFound):
		return http.StatusNotFound, "Paciente no encontrado"
	case errors.Is(err, domain.ErrClinicNotFound):
		return http.StatusNotFound, "Centro no encontrado"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
