package ports

import (
	"context"

	"github.com/cropbank/banking-system/internal/core/domain"
)

// CreditInput carries the data needed to raise a credit request.
type CreditInput struct {
	ClientID      string
	RequestAmount float64
	TenureMonths  int
	Purpose       string
}

// DecisionInput carries an analyst's verdict on a pending request.
type DecisionInput struct {
	Status  domain.CreditStatus
	Remarks string
}

// CreditService governs the credit request lifecycle.
type CreditService interface {
	// Create raises a request against a client owned by the caller; a client
	// that exists but belongs to another RM fails with ErrClientNotFound.
	Create(ctx context.Context, claims domain.Claims, input CreditInput) (*domain.Credit, error)
	// List returns every request for analysts and only the caller's own
	// submissions for relationship managers, enriched with display names.
	List(ctx context.Context, claims domain.Claims) ([]domain.CreditDetails, error)
	Get(ctx context.Context, id string) (*domain.Credit, error)
	// Decide applies a terminal status to a PENDING request.
	Decide(ctx context.Context, claims domain.Claims, id string, input DecisionInput) (*domain.Credit, error)
}
