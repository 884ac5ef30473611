package ports

import (
	"context"

	"github.com/odontocare/clinic-network/internal/core/domain"
)

// UserRepository persists login accounts.
type UserRepository interface {
	// Create stores user and returns it with its assigned ID. A username
	// collision yields a *domain.UserExistsError.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, password string) error
	Delete(ctx context.Context, id int64) error
}
