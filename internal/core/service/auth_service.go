package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
	"github.com/odontocare/clinic-network/internal/pkg/token"
)

// AuthService implements login and password change.
type AuthService struct {
	users     ports.UserRepository
	patients  ports.PatientRepository
	codec     *token.Codec
	passwords PasswordScheme
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	patients ports.PatientRepository,
	codec *token.Codec,
	passwords PasswordScheme,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	if passwords == nil {
		passwords = PlainPasswords{}
	}
	return &AuthService{
		users:     users,
		patients:  patients,
		codec:     codec,
		passwords: passwords,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Login checks the credentials and returns a session token. Unknown users,
// wrong passwords and inactive patients all fail with
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if username == "" || password == "" {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("login: %w", err)
	}

	if !s.passwords.Matches(user.Password, password) {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	if user.Role == domain.RolePatient {
		patient, err := s.patients.FindByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, domain.ErrPatientNotFound) {
			return "", time.Time{}, fmt.Errorf("login: %w", err)
		}
		if !patient.Active() {
			s.log.Info().Int64("user_id", user.ID).Msg("login refused for inactive patient")
			return "", time.Time{}, domain.ErrInvalidCredentials
		}
	}

	signed, exp, err := s.codec.IssueUser(user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("login: %w", err)
	}
	return signed, exp, nil
}

// ChangePassword replaces the password of username when oldPassword
// matches. A mismatch is not an error: it reports false and leaves the
// stored password untouched.
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (bool, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}

	if !s.passwords.Matches(user.Password, oldPassword) {
		s.log.Warn().Int64("user_id", user.ID).Msg("password change ignored: current password mismatch")
		return false, nil
	}

	stored, err := s.passwords.Prepare(newPassword)
	if err != nil {
		return false, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, stored); err != nil {
		return false, fmt.Errorf("change password: %w", err)
	}
	return true, nil
}
