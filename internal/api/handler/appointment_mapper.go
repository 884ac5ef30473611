package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
)

// --- Request → Service input ---

func toPatientBooking(req patientAppointmentRequest) (ports.PatientBookingInput, error) {
	at, err := parseFecha(req.Fecha)
	if err != nil {
		return ports.PatientBookingInput{}, err
	}
	return ports.PatientBookingInput{
		ScheduledAt: at,
		Reason:      req.Motivo,
		DoctorID:    req.IDDoctor,
		ClinicID:    req.IDCentro,
	}, nil
}

func toAdminBooking(req adminAppointmentRequest) (ports.AdminBookingInput, error) {
	base, err := toPatientBooking(req.patientAppointmentRequest)
	if err != nil {
		return ports.AdminBookingInput{}, err
	}
	return ports.AdminBookingInput{
		ScheduledAt: base.ScheduledAt,
		Reason:      base.Reason,
		DoctorID:    base.DoctorID,
		ClinicID:    base.ClinicID,
		PatientID:   req.IDPaciente,
		Status:      domain.AppointmentStatus(req.Estado),
	}, nil
}

func toAdminFilter(req adminSearchRequest) (ports.AppointmentFilter, error) {
	f := ports.AppointmentFilter{
		PatientID: req.IDPaciente,
		DoctorID:  req.IDDoctor,
		ClinicID:  req.IDCentro,
		Status:    domain.AppointmentStatus(req.Estado),
	}
	if req.Fecha != "" {
		day, err := parseDay(req.Fecha)
		if err != nil {
			return ports.AppointmentFilter{}, err
		}
		f.Day = day
	}
	return f, nil
}

func parseFecha(s string) (time.Time, error) {
	t, err := domain.ParseInstant(s)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "Schema de request no valido: fecha no es una fecha ISO-8601")
	}
	return t, nil
}

func parseDay(s string) (time.Time, error) {
	t, err := domain.ParseDay(s)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "Schema de request no valido: fecha no es una fecha ISO-8601")
	}
	return t, nil
}

// --- Service result → HTTP response ---

func toAppointmentResponse(a *domain.Appointment) appointmentResponse {
	return appointmentResponse{
		IDCita:            a.ID,
		Fecha:             domain.FormatInstant(a.ScheduledAt),
		Motivo:            a.Reason,
		Estado:            string(a.Status),
		IDPaciente:        a.PatientID,
		IDDoctor:          a.DoctorID,
		IDCentro:          a.ClinicID,
		IDUsuarioRegistra: a.RegisteredBy,
	}
}

func toAppointmentList(items []*domain.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, len(items))
	for i, a := range items {
		out[i] = toAppointmentResponse(a)
	}
	return out
}
