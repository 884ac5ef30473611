package ports

import (
	"context"
	"time"

	"github.com/odontocare/clinic-network/internal/core/domain"
)

// PatientBookingInput is a booking made by a patient for themselves.
type PatientBookingInput struct {
	ScheduledAt time.Time
	Reason      string
	DoctorID    int64
	ClinicID    int64
}

// AdminBookingInput is a booking made by an administrator.
type AdminBookingInput struct {
	ScheduledAt time.Time
	Reason      string
	DoctorID    int64
	ClinicID    int64
	PatientID   int64
	Status      domain.AppointmentStatus
}

// AppointmentService books, finds and cancels appointments. The caller's
// role selects the method; each method applies that role's rules.
type AppointmentService interface {
	CreateAsPatient(ctx context.Context, userID int64, in PatientBookingInput) (*domain.Appointment, error)
	CreateAsAdmin(ctx context.Context, userID int64, in AdminBookingInput) (*domain.Appointment, error)

	// SearchAsAdmin requires at least one criterion.
	SearchAsAdmin(ctx context.Context, f AppointmentFilter) ([]*domain.Appointment, error)
	// SearchByDay lists every appointment on day.
	SearchByDay(ctx context.Context, day time.Time) ([]*domain.Appointment, error)
	// SearchForDoctor lists the appointments of the doctor logged in as userID.
	SearchForDoctor(ctx context.Context, userID int64) ([]*domain.Appointment, error)

	Cancel(ctx context.Context, id int64) (domain.CancelOutcome, error)
}
