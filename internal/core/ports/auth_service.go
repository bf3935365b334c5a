package ports

import (
	"context"

	"github.com/cropbank/banking-system/internal/core/domain"
)

// RegisterInput carries the data needed to create a new identity.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService verifies credentials and issues session tokens.
type AuthService interface {
	// Login returns a signed session token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Register creates a new, active identity. Admin-only; the role gate is
	// enforced at the route.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
}

// UserService covers identity administration and self lookup.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.UserSummary, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateStatus toggles the activation flag and emits a status event.
	UpdateStatus(ctx context.Context, id string, active bool) (*domain.User, error)
}
