package domain

import (
	"errors"
	"fmt"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pendiente"
	StatusActive    AppointmentStatus = "Activa"
	StatusCancelled AppointmentStatus = "Cancelada"
)

// Valid reports whether s is a known appointment status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a booking of a patient with a doctor at a clinic.
//
// ScheduledAt is a naive wall-clock instant: its location is always UTC and
// carries no offset information from the client.
type Appointment struct {
	ID           int64
	ScheduledAt  time.Time
	Reason       string
	Status       AppointmentStatus
	PatientID    int64
	DoctorID     int64
	ClinicID     int64
	RegisteredBy int64
}

// Slot returns the (doctor, clinic, instant) key the appointment occupies.
func (a *Appointment) Slot() Slot {
	return Slot{DoctorID: a.DoctorID, ClinicID: a.ClinicID, At: a.ScheduledAt}
}

// Slot identifies a bookable (doctor, clinic, instant) triple. At most one
// non-cancelled appointment may occupy a slot.
type Slot struct {
	DoctorID int64
	ClinicID int64
	At       time.Time
}

// Key renders the slot as a stable string, suitable for lock names.
func (s Slot) Key() string {
	return fmt.Sprintf("%d:%d:%d", s.DoctorID, s.ClinicID, s.At.Unix())
}

// CancelOutcome reports what a cancel request did.
type CancelOutcome int

const (
	Cancelled CancelOutcome = iota + 1
	AlreadyCancelled
)

// SlotConflictError describes a booking rejected because its slot is taken.
type SlotConflictError struct {
	DoctorLastName string
	ClinicName     string
	At             time.Time
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("Ya hay una cita asignada para el Dr. %s en el centro %s para el dia %s a las %s horas",
		e.DoctorLastName, e.ClinicName, e.At.Format(time.DateOnly), e.At.Format("15:04"))
}

func (e *SlotConflictError) Unwrap() error { return ErrSlotTaken }

// ErrInvalidInstant is returned when a date or date-time cannot be parsed.
var ErrInvalidInstant = errors.New("invalid date")

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseInstant parses an ISO-8601 date-time, with or without offset, and
// keeps only its wall-clock fields truncated to the second.
func ParseInstant(s string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Naive(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInstant, s)
}

// ParseDay parses a calendar date. A full date-time is accepted and
// truncated to the start of its day.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := ParseInstant(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Naive drops the location of t, keeping its wall-clock reading.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// FormatInstant renders a naive instant as ISO-8601 with a literal "Z"
// suffix, which is the wire format clients expect.
func FormatInstant(t time.Time) string {
	return t.Format("2006-01-02T15:04:05") + "Z"
}
