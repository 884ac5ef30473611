package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/pkg/token"
)

func newAuthFixture(passwords PasswordScheme) (*AuthService, *stubUserRepo, *token.Codec) {
	users := newStubUserRepo(
		&domain.User{ID: 1, Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
		&domain.User{ID: 7, Username: "luis.perez", Password: "pw7", Role: domain.RolePatient},
		&domain.User{ID: 8, Username: "eva.gil", Password: "pw8", Role: domain.RolePatient},
		&domain.User{ID: 9, Username: "sin.ficha", Password: "pw9", Role: domain.RolePatient},
	)
	patients := newStubPatientRepo(
		&domain.Patient{ID: 70, UserID: 7, State: domain.PatientActive},
		&domain.Patient{ID: 80, UserID: 8, State: domain.PatientInactive},
	)
	codec := token.NewCodec("secret")
	return NewAuthService(users, patients, codec, passwords, time.Hour, zerolog.Nop()), users, codec
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, codec := newAuthFixture(nil)

	signed, exp, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if time.Until(exp) < 59*time.Minute || time.Until(exp) > time.Hour {
		t.Fatalf("expected ~1h expiry, got %v", time.Until(exp))
	}

	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("token should decode: %v", err)
	}
	if claims.Role != domain.RoleAdmin || claims.Identity == nil || claims.UserID != 1 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_ActivePatient(t *testing.T) {
	svc, _, _ := newAuthFixture(nil)

	if _, _, err := svc.Login(context.Background(), "luis.perez", "pw7"); err != nil {
		t.Fatalf("active patient should log in: %v", err)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthFixture(nil)

	cases := map[string][2]string{
		"unknown user":      {"nobody", "x"},
		"wrong password":    {"admin", "wrong"},
		"inactive patient":  {"eva.gil", "pw8"},
		"patient no record": {"sin.ficha", "pw9"},
		"empty password":    {"admin", ""},
		"empty username":    {"", "admin123"},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), creds[0], creds[1])
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_Bcrypt(t *testing.T) {
	scheme := BcryptPasswords{Cost: 4}
	svc, users, _ := newAuthFixture(scheme)
	hash, err := scheme.Prepare("admin123")
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	users.users[1].Password = hash

	if _, _, err := svc.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("bcrypt login failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "admin", hash); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("the hash itself must not be accepted, got %v", err)
	}
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, users, _ := newAuthFixture(nil)

	changed, err := svc.ChangePassword(context.Background(), "admin", "admin123", "nueva")
	if err != nil || !changed {
		t.Fatalf("expected change, got %v, %v", changed, err)
	}
	if users.users[1].Password != "nueva" {
		t.Fatalf("password not stored")
	}
	if _, _, err := svc.Login(context.Background(), "admin", "nueva"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongCurrentIsSilent(t *testing.T) {
	svc, users, _ := newAuthFixture(nil)

	changed, err := svc.ChangePassword(context.Background(), "admin", "wrong", "nueva")
	if err != nil {
		t.Fatalf("mismatch must not be an error: %v", err)
	}
	if changed {
		t.Fatalf("password must not change")
	}
	if users.users[1].Password != "admin123" {
		t.Fatalf("stored password was modified")
	}
}

func TestAuthService_ChangePassword_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture(nil)

	if _, err := svc.ChangePassword(context.Background(), "nobody", "a", "b"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPasswordSchemeByName(t *testing.T) {
	for name, want := range map[string]PasswordScheme{"": PlainPasswords{}, "plain": PlainPasswords{}, "BCRYPT": BcryptPasswords{}} {
		got, err := PasswordSchemeByName(name)
		if err != nil || got != want {
			t.Fatalf("%q: got %T, %v", name, got, err)
		}
	}
	if _, err := PasswordSchemeByName("md5"); err == nil {
		t.Fatalf("expected error for unknown scheme")
	}
}
