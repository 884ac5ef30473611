package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")

	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrClinicNotFound  = errors.New("clinic not found")

	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotTaken           = errors.New("slot already booked")
	// ErrSlotBusy means another booking for the same slot is in flight.
	ErrSlotBusy = errors.New("slot is being booked")
	// ErrBookingReference means the doctor, clinic or patient of a booking
	// could not be resolved, or the patient is inactive.
	ErrBookingReference = errors.New("doctor, clinic or patient missing or inactive")
	ErrMissingFilter    = errors.New("at least one filter is required")

	ErrForbidden = errors.New("access forbidden")
)

// UserExistsError names the username that collided.
type UserExistsError struct {
	Username string
}

func (e *UserExistsError) Error() string {
	return "El usuario " + e.Username + " ya existe"
}

func (e *UserExistsError) Unwrap() error { return ErrUserExists }
