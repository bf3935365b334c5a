package ports

import (
	"context"

	"github.com/cropbank/banking-system/internal/core/domain"
)

// ContactInput holds the primary contact submitted with a client.
type ContactInput struct {
	Name  string
	Email string
	Phone string
}

// ClientInput carries the mutable fields of a client. The owner is never part
// of the input; it is taken from the caller's claims on create and immutable
// afterwards.
type ClientInput struct {
	CompanyName        string
	Industry           string
	Address            string
	PrimaryContact     ContactInput
	AnnualTurnover     float64
	DocumentsSubmitted bool
}

// ClientService enforces creation, read and update invariants for clients.
// Every operation takes the caller's claims explicitly.
type ClientService interface {
	Create(ctx context.Context, claims domain.Claims, input ClientInput) (*domain.Client, error)
	Get(ctx context.Context, claims domain.Claims, id string) (*domain.Client, error)
	Update(ctx context.Context, claims domain.Claims, id string, input ClientInput) (*domain.Client, error)
	// Search is always scoped to the caller's own clients. A company-name
	// filter takes precedence over an industry filter; with neither, all of
	// the caller's clients are returned.
	Search(ctx context.Context, claims domain.Claims, companyName, industry string) ([]*domain.Client, error)
	Industries(ctx context.Context, claims domain.Claims) ([]string, error)
}
