package ports

import (
	"context"

	"github.com/cropbank/banking-system/internal/core/domain"
)

// ClientRepository defines persistence for corporate clients. All queries
// except FindByID are scoped to an owner id; ownership scoping at the query
// level is what turns "someone else's client" into a not-found for credit
// creation.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// FindByIDAndOwner returns domain.ErrClientNotFound when the client does
	// not exist or is owned by someone else.
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Client, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Client, error)
	// SearchByCompanyName matches a case-insensitive substring of the company
	// name within the owner's clients.
	SearchByCompanyName(ctx context.Context, ownerID, companyName string) ([]*domain.Client, error)
	// SearchByIndustry matches the industry case-insensitively (exact) within
	// the owner's clients.
	SearchByIndustry(ctx context.Context, ownerID, industry string) ([]*domain.Client, error)
	DistinctIndustries(ctx context.Context, ownerID string) ([]string, error)
	Update(ctx context.Context, client *domain.Client) error
}
