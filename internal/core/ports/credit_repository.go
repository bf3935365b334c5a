package ports

import (
	"context"

	"github.com/cropbank/banking-system/internal/core/domain"
)

// CreditRepository defines persistence for credit requests.
type CreditRepository interface {
	Create(ctx context.Context, credit *domain.Credit) (*domain.Credit, error)
	FindByID(ctx context.Context, id string) (*domain.Credit, error)
	FindAll(ctx context.Context) ([]*domain.Credit, error)
	FindBySubmitter(ctx context.Context, userID string) ([]*domain.Credit, error)
	// Decide atomically moves a PENDING request to the given terminal status
	// (compare-and-swap on the current status). It fails with
	// domain.ErrCreditNotFound when the id is unknown and with
	// domain.ErrCreditAlreadyDecided when the request is no longer PENDING,
	// so concurrent decisions on the same id serialize to exactly one winner.
	Decide(ctx context.Context, id string, status domain.CreditStatus, remarks string) (*domain.Credit, error)
}
