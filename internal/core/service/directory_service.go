package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
)

// DirectoryService manages accounts, doctors, patients and clinics.
type DirectoryService struct {
	users     ports.UserRepository
	doctors   ports.DoctorRepository
	patients  ports.PatientRepository
	clinics   ports.ClinicRepository
	passwords PasswordScheme
	log       zerolog.Logger
}

func NewDirectoryService(
	users ports.UserRepository,
	doctors ports.DoctorRepository,
	patients ports.PatientRepository,
	clinics ports.ClinicRepository,
	passwords PasswordScheme,
	log zerolog.Logger,
) *DirectoryService {
	if passwords == nil {
		passwords = PlainPasswords{}
	}
	return &DirectoryService{
		users:     users,
		doctors:   doctors,
		patients:  patients,
		clinics:   clinics,
		passwords: passwords,
		log:       log,
	}
}

// ── Users ────────────────────────────────────────────────────────────────────

func (s *DirectoryService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *DirectoryService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *DirectoryService) CreateUser(ctx context.Context, in ports.NewUserInput) (*domain.User, error) {
	if !in.Role.IsUserRole() {
		return nil, fmt.Errorf("create user: unknown role %q", in.Role)
	}
	stored, err := s.passwords.Prepare(in.Password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, &domain.User{Username: in.Username, Password: stored, Role: in.Role})
}

// CreateUsers creates every account or none of them.
func (s *DirectoryService) CreateUsers(ctx context.Context, in []ports.NewUserInput) error {
	names := make([]string, len(in))
	for i, u := range in {
		names[i] = u.Username
	}
	if err := s.checkUsernamesFree(ctx, names); err != nil {
		return err
	}

	var created []int64
	for _, u := range in {
		user, err := s.CreateUser(ctx, u)
		if err != nil {
			s.rollbackUsers(ctx, created)
			return err
		}
		created = append(created, user.ID)
	}
	return nil
}

func (s *DirectoryService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// ── Doctors ──────────────────────────────────────────────────────────────────

func (s *DirectoryService) ListDoctors(ctx context.Context) ([]*domain.Doctor, error) {
	return s.doctors.List(ctx)
}

func (s *DirectoryService) GetDoctor(ctx context.Context, actor domain.Actor, id int64) (*domain.Doctor, error) {
	if actor.ActsAs(domain.RoleDoctor) {
		return s.doctors.FindByUserID(ctx, id)
	}
	return s.doctors.FindByID(ctx, id)
}

// CreateDoctor registers a doctor together with a "nombre.apellido"
// account holding a generated password.
func (s *DirectoryService) CreateDoctor(ctx context.Context, in ports.NewDoctorInput) (*domain.Doctor, *ports.Credentials, error) {
	creds, err := s.createAccount(ctx, accountName(in.FirstName, in.LastName), domain.RoleDoctor)
	if err != nil {
		return nil, nil, err
	}

	doctor, err := s.doctors.Create(ctx, &domain.Doctor{
		UserID:    creds.User.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Specialty: in.Specialty,
	})
	if err != nil {
		s.rollbackUsers(ctx, []int64{creds.User.ID})
		return nil, nil, fmt.Errorf("create doctor: %w", err)
	}

	s.log.Info().Int64("id_doctor", doctor.ID).Str("username", creds.User.Username).Msg("doctor registered")
	return doctor, creds, nil
}

// CreateDoctors registers every doctor or none of them.
func (s *DirectoryService) CreateDoctors(ctx context.Context, in []ports.NewDoctorInput) error {
	names := make([]string, len(in))
	for i, d := range in {
		names[i] = accountName(d.FirstName, d.LastName)
	}
	if err := s.checkUsernamesFree(ctx, names); err != nil {
		return err
	}

	var created []*domain.Doctor
	for _, d := range in {
		doctor, _, err := s.CreateDoctor(ctx, d)
		if err != nil {
			for _, c := range created {
				_ = s.DeleteDoctor(ctx, c.ID)
			}
			return err
		}
		created = append(created, doctor)
	}
	return nil
}

func (s *DirectoryService) UpdateDoctorSpecialty(ctx context.Context, id int64, specialty string) error {
	return s.doctors.UpdateSpecialty(ctx, id, specialty)
}

// DeleteDoctor removes the doctor and its account.
func (s *DirectoryService) DeleteDoctor(ctx context.Context, id int64) error {
	doctor, err := s.doctors.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deleteAccount(ctx, doctor.UserID); err != nil {
		return err
	}
	return s.doctors.Delete(ctx, id)
}

// ── Patients ─────────────────────────────────────────────────────────────────

func (s *DirectoryService) ListPatients(ctx context.Context, f ports.PatientFilter) ([]*domain.Patient, error) {
	return s.patients.List(ctx, f)
}

func (s *DirectoryService) GetPatient(ctx context.Context, actor domain.Actor, id int64, f ports.PatientFilter) (*domain.Patient, error) {
	if actor.ActsAs(domain.RolePatient) {
		return s.patients.FindByUserID(ctx, id)
	}
	return s.patients.FindByID(ctx, id, f)
}

// CreatePatient registers a patient together with a "nombre.apellido"
// account holding a generated password.
func (s *DirectoryService) CreatePatient(ctx context.Context, in ports.NewPatientInput) (*domain.Patient, *ports.Credentials, error) {
	creds, err := s.createAccount(ctx, accountName(in.FirstName, in.LastName), domain.RolePatient)
	if err != nil {
		return nil, nil, err
	}

	patient, err := s.patients.Create(ctx, &domain.Patient{
		UserID:    creds.User.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		State:     in.State,
	})
	if err != nil {
		s.rollbackUsers(ctx, []int64{creds.User.ID})
		return nil, nil, fmt.Errorf("create patient: %w", err)
	}

	s.log.Info().Int64("id_paciente", patient.ID).Str("username", creds.User.Username).Msg("patient registered")
	return patient, creds, nil
}

// CreatePatients registers every patient or none of them.
func (s *DirectoryService) CreatePatients(ctx context.Context, in []ports.NewPatientInput) error {
	names := make([]string, len(in))
	for i, p := range in {
		names[i] = accountName(p.FirstName, p.LastName)
	}
	if err := s.checkUsernamesFree(ctx, names); err != nil {
		return err
	}

	var created []*domain.Patient
	for _, p := range in {
		patient, _, err := s.CreatePatient(ctx, p)
		if err != nil {
			for _, c := range created {
				_ = s.DeletePatient(ctx, c.ID)
			}
			return err
		}
		created = append(created, patient)
	}
	return nil
}

func (s *DirectoryService) UpdatePatient(ctx context.Context, id int64, phone int64, state domain.PatientState) error {
	return s.patients.Update(ctx, id, phone, state)
}

// DeletePatient removes the patient and its account.
func (s *DirectoryService) DeletePatient(ctx context.Context, id int64) error {
	patient, err := s.patients.FindByID(ctx, id, ports.PatientFilter{})
	if err != nil {
		return err
	}
	if err := s.deleteAccount(ctx, patient.UserID); err != nil {
		return err
	}
	return s.patients.Delete(ctx, id)
}

// ── Clinics ──────────────────────────────────────────────────────────────────

func (s *DirectoryService) ListClinics(ctx context.Context) ([]*domain.Clinic, error) {
	return s.clinics.List(ctx)
}

func (s *DirectoryService) GetClinic(ctx context.Context, id int64) (*domain.Clinic, error) {
	return s.clinics.FindByID(ctx, id)
}

func (s *DirectoryService) CreateClinic(ctx context.Context, in ports.NewClinicInput) (*domain.Clinic, error) {
	return s.clinics.Create(ctx, &domain.Clinic{Name: in.Name, Address: in.Address})
}

// CreateClinics registers every clinic or none of them.
func (s *DirectoryService) CreateClinics(ctx context.Context, in []ports.NewClinicInput) error {
	var created []int64
	for _, c := range in {
		clinic, err := s.CreateClinic(ctx, c)
		if err != nil {
			for _, id := range created {
				_ = s.clinics.Delete(ctx, id)
			}
			return err
		}
		created = append(created, clinic.ID)
	}
	return nil
}

func (s *DirectoryService) UpdateClinic(ctx context.Context, id int64, in ports.NewClinicInput) error {
	return s.clinics.Update(ctx, id, in.Name, in.Address)
}

func (s *DirectoryService) DeleteClinic(ctx context.Context, id int64) error {
	return s.clinics.Delete(ctx, id)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (s *DirectoryService) createAccount(ctx context.Context, username string, role domain.Role) (*ports.Credentials, error) {
	password := GeneratePassword(generatedPasswordLength)
	stored, err := s.passwords.Prepare(password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, &domain.User{Username: username, Password: stored, Role: role})
	if err != nil {
		return nil, err
	}
	return &ports.Credentials{User: user, Password: password}, nil
}

// deleteAccount removes a linked account; records without one are skipped.
func (s *DirectoryService) deleteAccount(ctx context.Context, userID int64) error {
	if userID == 0 {
		return nil
	}
	err := s.users.Delete(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

// checkUsernamesFree fails with *domain.UserExistsError on the first name
// that is already taken or repeated within names.
func (s *DirectoryService) checkUsernamesFree(ctx context.Context, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return &domain.UserExistsError{Username: name}
		}
		seen[name] = struct{}{}

		_, err := s.users.FindByUsername(ctx, name)
		switch {
		case err == nil:
			return &domain.UserExistsError{Username: name}
		case !errors.Is(err, domain.ErrUserNotFound):
			return err
		}
	}
	return nil
}

func (s *DirectoryService) rollbackUsers(ctx context.Context, ids []int64) {
	for _, id := range ids {
		if err := s.users.Delete(ctx, id); err != nil {
			s.log.Error().Err(err).Int64("user_id", id).Msg("rollback of account failed")
		}
	}
}
