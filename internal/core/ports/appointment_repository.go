package ports

import (
	"context"
	"time"

	"github.com/odontocare/clinic-network/internal/core/domain"
)

// AppointmentFilter carries search criteria. Zero values are not applied.
// Day, when set, matches the half-open interval [Day, Day+24h).
type AppointmentFilter struct {
	PatientID int64
	DoctorID  int64
	ClinicID  int64
	Status    domain.AppointmentStatus
	Day       time.Time
}

// Empty reports whether no criterion is set.
func (f AppointmentFilter) Empty() bool {
	return f == AppointmentFilter{}
}

// AppointmentRepository persists appointments.
type AppointmentRepository interface {
	// Create stores a and returns it with its assigned ID. It fails with
	// domain.ErrSlotTaken when a non-cancelled appointment holds the slot.
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	// FindActiveInSlot returns the non-cancelled appointment holding slot,
	// or domain.ErrAppointmentNotFound.
	FindActiveInSlot(ctx context.Context, slot domain.Slot) (*domain.Appointment, error)
	// Search returns matching appointments ordered by scheduled instant.
	Search(ctx context.Context, f AppointmentFilter) ([]*domain.Appointment, error)
	// Cancel marks the appointment cancelled. Unknown IDs yield
	// domain.ErrAppointmentNotFound.
	Cancel(ctx context.Context, id int64) (domain.CancelOutcome, error)
}

// SlotLocker serializes bookings of the same slot across processes.
type SlotLocker interface {
	// WithSlotLock runs fn while holding the slot's lock. It fails with
	// domain.ErrSlotBusy when the lock is held elsewhere.
	WithSlotLock(ctx context.Context, slot domain.Slot, fn func(ctx context.Context) error) error
}

// Directory resolves identity-service records from the appointments
// service. A false result means the record is unknown or could not be
// fetched; callers treat both the same way.
type Directory interface {
	// Doctor looks id up on behalf of an end user holding requester.
	Doctor(ctx context.Context, id int64, requester domain.Role) (*domain.Doctor, bool)
	// Patient looks id up on behalf of an end user holding requester,
	// restricted to active patients.
	Patient(ctx context.Context, id int64, requester domain.Role) (*domain.Patient, bool)
	Clinic(ctx context.Context, id int64) (*domain.Clinic, bool)
}
