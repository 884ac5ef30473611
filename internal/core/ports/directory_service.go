package ports

import (
	"context"

	"github.com/odontocare/clinic-network/internal/core/domain"
)

// NewUserInput carries an account created directly by an administrator.
type NewUserInput struct {
	Username string
	Password string
	Role     domain.Role
}

// NewDoctorInput carries a doctor to register.
type NewDoctorInput struct {
	FirstName string
	LastName  string
	Specialty string
}

// NewPatientInput carries a patient to register.
type NewPatientInput struct {
	FirstName string
	LastName  string
	Phone     int64
	State     domain.PatientState
}

// NewClinicInput carries a clinic to register.
type NewClinicInput struct {
	Name    string
	Address string
}

// Credentials are the login details generated for an associated account.
type Credentials struct {
	User     *domain.User
	Password string
}

// DirectoryService is the identity service's administrative directory.
type DirectoryService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, in NewUserInput) (*domain.User, error)
	CreateUsers(ctx context.Context, in []NewUserInput) error
	DeleteUser(ctx context.Context, id int64) error

	ListDoctors(ctx context.Context) ([]*domain.Doctor, error)
	// GetDoctor resolves id as a user ID when actor proxies a doctor, and
	// as a doctor ID otherwise.
	GetDoctor(ctx context.Context, actor domain.Actor, id int64) (*domain.Doctor, error)
	CreateDoctor(ctx context.Context, in NewDoctorInput) (*domain.Doctor, *Credentials, error)
	CreateDoctors(ctx context.Context, in []NewDoctorInput) error
	UpdateDoctorSpecialty(ctx context.Context, id int64, specialty string) error
	DeleteDoctor(ctx context.Context, id int64) error

	ListPatients(ctx context.Context, f PatientFilter) ([]*domain.Patient, error)
	// GetPatient resolves id as a user ID when actor proxies a patient, and
	// as a patient ID, narrowed by f, otherwise.
	GetPatient(ctx context.Context, actor domain.Actor, id int64, f PatientFilter) (*domain.Patient, error)
	CreatePatient(ctx context.Context, in NewPatientInput) (*domain.Patient, *Credentials, error)
	CreatePatients(ctx context.Context, in []NewPatientInput) error
	UpdatePatient(ctx context.Context, id int64, phone int64, state domain.PatientState) error
	DeletePatient(ctx context.Context, id int64) error

	ListClinics(ctx context.Context) ([]*domain.Clinic, error)
	GetClinic(ctx context.Context, id int64) (*domain.Clinic, error)
	CreateClinic(ctx context.Context, in NewClinicInput) (*domain.Clinic, error)
	CreateClinics(ctx context.Context, in []NewClinicInput) error
	UpdateClinic(ctx context.Context, id int64, in NewClinicInput) error
	DeleteClinic(ctx context.Context, id int64) error
}
