package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Identity.UserTokenTTL != time.Hour {
		t.Fatalf("expected 1h user token ttl, got %v", cfg.Identity.UserTokenTTL)
	}
	if cfg.Appointments.ServiceTokenMargin != 2*time.Minute {
		t.Fatalf("expected 2m renewal margin, got %v", cfg.Appointments.ServiceTokenMargin)
	}
	if cfg.Identity.PasswordScheme != "plain" {
		t.Fatalf("expected plain password scheme, got %q", cfg.Identity.PasswordScheme)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development environment by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("IDENTITY_SERVICE_URL", "http://identity:5001")
	t.Setenv("LOOKUP_TIMEOUT", "750ms")
	t.Setenv("ENV", "production")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Appointments.IdentityServiceURL != "http://identity:5001" {
		t.Fatalf("unexpected identity url %q", cfg.Appointments.IdentityServiceURL)
	}
	if cfg.Appointments.LookupTimeout != 750*time.Millisecond {
		t.Fatalf("unexpected lookup timeout %v", cfg.Appointments.LookupTimeout)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("production must not be development")
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}
