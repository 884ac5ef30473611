package ports

import (
	"context"
	"time"
)

// AuthService issues session tokens and manages passwords.
type AuthService interface {
	// Login returns a signed session token and its expiry.
	Login(ctx context.Context, username, password string) (string, time.Time, error)
	// ChangePassword reports whether the password was actually changed.
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (bool, error)
}
