package ports

import (
	"context"

	"github.com/cropbank/banking-system/internal/core/domain"
)

// UserRepository defines persistence for identities. Emails are stored
// normalized to lower case; lookups expect the same normalization.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// UpdateActive sets the activation flag and returns the updated user.
	UpdateActive(ctx context.Context, id string, active bool) (*domain.User, error)
}
