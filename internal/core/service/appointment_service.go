package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
)

// AppointmentService books appointments against the identity directory and
// keeps at most one live appointment per slot.
type AppointmentService struct {
	repo      ports.AppointmentRepository
	locker    ports.SlotLocker
	directory ports.Directory
	log       zerolog.Logger
}

func NewAppointmentService(
	repo ports.AppointmentRepository,
	locker ports.SlotLocker,
	directory ports.Directory,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{repo: repo, locker: locker, directory: directory, log: log}
}

// CreateAsPatient books for the calling patient. The appointment always
// starts as pending and is attributed to the caller's user ID.
func (s *AppointmentService) CreateAsPatient(ctx context.Context, userID int64, in ports.PatientBookingInput) (*domain.Appointment, error) {
	return s.book(ctx, domain.RolePatient, userID, &domain.Appointment{
		ScheduledAt:  domain.Naive(in.ScheduledAt),
		Reason:       in.Reason,
		Status:       domain.StatusPending,
		PatientID:    userID,
		DoctorID:     in.DoctorID,
		ClinicID:     in.ClinicID,
		RegisteredBy: userID,
	})
}

// CreateAsAdmin books for any patient with the requested status.
func (s *AppointmentService) CreateAsAdmin(ctx context.Context, userID int64, in ports.AdminBookingInput) (*domain.Appointment, error) {
	return s.book(ctx, domain.RoleAdmin, userID, &domain.Appointment{
		ScheduledAt:  domain.Naive(in.ScheduledAt),
		Reason:       in.Reason,
		Status:       in.Status,
		PatientID:    in.PatientID,
		DoctorID:     in.DoctorID,
		ClinicID:     in.ClinicID,
		RegisteredBy: userID,
	})
}

func (s *AppointmentService) book(ctx context.Context, requester domain.Role, userID int64, appt *domain.Appointment) (*domain.Appointment, error) {
	doctor, okDoctor := s.directory.Doctor(ctx, appt.DoctorID, requester)
	clinic, okClinic := s.directory.Clinic(ctx, appt.ClinicID)
	patient, okPatient := s.directory.Patient(ctx, appt.PatientID, requester)
	if !okDoctor || !okClinic || !okPatient || !patient.Active() {
		return nil, domain.ErrBookingReference
	}

	slot := appt.Slot()
	conflict := &domain.SlotConflictError{DoctorLastName: doctor.LastName, ClinicName: clinic.Name, At: slot.At}

	var created *domain.Appointment
	err := s.locker.WithSlotLock(ctx, slot, func(ctx context.Context) error {
		_, err := s.repo.FindActiveInSlot(ctx, slot)
		if err == nil {
			return conflict
		}
		if !errors.Is(err, domain.ErrAppointmentNotFound) {
			return err
		}

		created, err = s.repo.Create(ctx, appt)
		return err
	})
	switch {
	case errors.Is(err, domain.ErrSlotTaken), errors.Is(err, domain.ErrSlotBusy):
		s.log.Info().Str("slot", slot.Key()).Int64("user_id", userID).Msg("booking rejected: slot taken")
		return nil, conflict
	case err != nil:
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.log.Info().
		Int64("id_cita", created.ID).
		Str("slot", slot.Key()).
		Str("role", string(requester)).
		Int64("user_id", userID).
		Msg("appointment created")
	return created, nil
}

// SearchAsAdmin lists appointments matching f, which must not be empty.
func (s *AppointmentService) SearchAsAdmin(ctx context.Context, f ports.AppointmentFilter) ([]*domain.Appointment, error) {
	if f.Empty() {
		return nil, domain.ErrMissingFilter
	}
	return s.search(ctx, f)
}

// SearchByDay lists every appointment on day.
func (s *AppointmentService) SearchByDay(ctx context.Context, day time.Time) ([]*domain.Appointment, error) {
	if day.IsZero() {
		return nil, domain.ErrMissingFilter
	}
	return s.search(ctx, ports.AppointmentFilter{Day: startOfDay(day)})
}

// SearchForDoctor lists the appointments of the doctor whose account is
// userID. A doctor the directory cannot resolve has no filter to apply.
func (s *AppointmentService) SearchForDoctor(ctx context.Context, userID int64) ([]*domain.Appointment, error) {
	doctor, ok := s.directory.Doctor(ctx, userID, domain.RoleDoctor)
	if !ok {
		return nil, domain.ErrMissingFilter
	}
	return s.search(ctx, ports.AppointmentFilter{DoctorID: doctor.ID})
}

func (s *AppointmentService) search(ctx context.Context, f ports.AppointmentFilter) ([]*domain.Appointment, error) {
	if !f.Day.IsZero() {
		f.Day = startOfDay(f.Day)
	}
	out, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search appointments: %w", err)
	}
	return out, nil
}

// Cancel marks the appointment cancelled. Cancelling twice is not an error.
func (s *AppointmentService) Cancel(ctx context.Context, id int64) (domain.CancelOutcome, error) {
	outcome, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return 0, err
	}
	if outcome == domain.Cancelled {
		s.log.Info().Int64("id_cita", id).Msg("appointment cancelled")
	}
	return outcome, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
