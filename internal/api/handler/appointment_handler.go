package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/clinic-network/internal/api/metrics"
	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointment (cita) operations.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Create handles POST /api/v1/citas.
//
// Patients always book for themselves with status Pendiente; administrators
// choose the patient and the status.
//
// @Summary      Book an appointment
// @Tags         citas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminAppointmentRequest  true  "Appointment (estado and id_paciente are ignored for patients)"
// @Success      201   {object}  appointmentResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/citas [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var appt *domain.Appointment
	switch actor.Role {
	case domain.RolePatient:
		var req patientAppointmentRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		in, err := toPatientBooking(req)
		if err != nil {
			return err
		}
		appt, err = h.service.CreateAsPatient(ctx, actor.UserID, in)
		if err != nil {
			return bookingError(err)
		}
	case domain.RoleAdmin:
		var req adminAppointmentRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		in, err := toAdminBooking(req)
		if err != nil {
			return err
		}
		appt, err = h.service.CreateAsAdmin(ctx, actor.UserID, in)
		if err != nil {
			return bookingError(err)
		}
	default:
		return domain.ErrForbidden
	}

	metrics.AppointmentsCreatedTotal.WithLabelValues(string(actor.Role)).Inc()
	return c.JSON(http.StatusCreated, toAppointmentResponse(appt))
}

func bookingError(err error) error {
	if errors.Is(err, domain.ErrSlotTaken) {
		metrics.AppointmentConflictsTotal.Inc()
	}
	return err
}

// Search handles GET /api/v1/citas.
//
// Administrators filter by any combination of id_paciente, id_doctor,
// id_centro, estado and fecha. The front desk filters by fecha only. Doctors
// send no body and always get their own appointments.
//
// @Summary      Search appointments
// @Tags         citas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminSearchRequest     false  "Filters (required for admin and secretariat)"
// @Success      200   {array}   appointmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/citas [get]
func (h *AppointmentHandler) Search(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	start := time.Now()

	var found []*domain.Appointment
	switch actor.Role {
	case domain.RoleAdmin:
		var req adminSearchRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		f, err := toAdminFilter(req)
		if err != nil {
			return err
		}
		found, err = h.service.SearchAsAdmin(ctx, f)
		if err != nil {
			return err
		}
	case domain.RoleFrontDesk:
		var req daySearchRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		day, err := parseDay(req.Fecha)
		if err != nil {
			return err
		}
		found, err = h.service.SearchByDay(ctx, day)
		if err != nil {
			return err
		}
	case domain.RoleDoctor:
		found, err = h.service.SearchForDoctor(ctx, actor.UserID)
		if err != nil {
			return err
		}
	default:
		return domain.ErrForbidden
	}
	metrics.AppointmentSearchDuration.WithLabelValues(string(actor.Role)).Observe(time.Since(start).Seconds())

	if len(found) == 0 {
		return c.JSON(http.StatusOK, emptyResponse{})
	}
	return c.JSON(http.StatusOK, toAppointmentList(found))
}

// Cancel handles PUT /api/v1/citas/:id.
//
// @Summary      Cancel an appointment
// @Tags         citas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Appointment ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/citas/{id} [put]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return domain.ErrAppointmentNotFound
	}

	outcome, err := h.service.Cancel(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if outcome == domain.AlreadyCancelled {
		metrics.AppointmentsCancelledTotal.WithLabelValues("already_cancelled").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: "La cita ya estaba cancelada"})
	}
	metrics.AppointmentsCancelledTotal.WithLabelValues("cancelled").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Cita cancelada"})
}
