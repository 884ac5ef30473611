package ports

import (
	"context"

	"github.com/odontocare/clinic-network/internal/core/domain"
)

// DoctorRepository persists doctors. Lookups miss with domain.ErrDoctorNotFound.
type DoctorRepository interface {
	Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error)
	FindByID(ctx context.Context, id int64) (*domain.Doctor, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
	List(ctx context.Context) ([]*domain.Doctor, error)
	UpdateSpecialty(ctx context.Context, id int64, specialty string) error
	Delete(ctx context.Context, id int64) error
}

// PatientFilter narrows patient lookups. Zero values match everything.
type PatientFilter struct {
	State domain.PatientState
}

// PatientRepository persists patients. Lookups miss with domain.ErrPatientNotFound.
type PatientRepository interface {
	Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
	FindByID(ctx context.Context, id int64, f PatientFilter) (*domain.Patient, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.Patient, error)
	List(ctx context.Context, f PatientFilter) ([]*domain.Patient, error)
	Update(ctx context.Context, id int64, phone int64, state domain.PatientState) error
	Delete(ctx context.Context, id int64) error
}

// ClinicRepository persists clinics. Lookups miss with domain.ErrClinicNotFound.
type ClinicRepository interface {
	Create(ctx context.Context, c *domain.Clinic) (*domain.Clinic, error)
	FindByID(ctx context.Context, id int64) (*domain.Clinic, error)
	List(ctx context.Context) ([]*domain.Clinic, error)
	Update(ctx context.Context, id int64, name, address string) error
	Delete(ctx context.Context, id int64) error
}
