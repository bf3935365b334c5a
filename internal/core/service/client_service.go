package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cropbank/banking-system/internal/core/authz"
	"github.com/cropbank/banking-system/internal/core/domain"
	"github.com/cropbank/banking-system/internal/core/ports"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ClientService enforces creation, read and update invariants for corporate
// clients, with ownership scoping on every RM operation.
type ClientService struct {
	repo      ports.ClientRepository
	publisher ports.EventPublisher
	logger    zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, publisher ports.EventPublisher, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, publisher: publisher, logger: logger}
}

// Create onboards a client owned by the caller and emits a ClientEvent once
// the write has committed.
func (s *ClientService) Create(ctx context.Context, claims domain.Claims, input ports.ClientInput) (*domain.Client, error) {
	if verr := validateClient(input); verr != nil {
		return nil, verr
	}

	client := &domain.Client{
		CompanyName: input.CompanyName,
		Industry:    input.Industry,
		Address:     input.Address,
		PrimaryContact: domain.PrimaryContact{
			Name:  input.PrimaryContact.Name,
			Email: input.PrimaryContact.Email,
			Phone: input.PrimaryContact.Phone,
		},
		AnnualTurnover:     input.AnnualTurnover,
		DocumentsSubmitted: input.DocumentsSubmitted,
		OwnerID:            claims.UserID,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", claims.UserID).Msg("failed to create client")
		return nil, err
	}

	s.publisher.Publish(domain.ClientEvent{
		ID:          uuid.NewString(),
		EventType:   domain.EventClientCreated,
		ClientID:    created.ID,
		ClientName:  created.CompanyName,
		Industry:    created.Industry,
		OnboardedBy: created.OwnerID,
		Timestamp:   time.Now().UTC(),
	})

	s.logger.Info().Str("client_id", created.ID).Str("owner_id", created.OwnerID).Msg("client onboarded")
	return created, nil
}

// Get returns a client owned by the caller. A client owned by another RM
// fails with an ownership violation, not a not-found.
func (s *ClientService) Get(ctx context.Context, claims domain.Claims, id string) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(claims, client.OwnerID); err != nil {
		return nil, err
	}
	return client, nil
}

// Update replaces the mutable fields of a caller-owned client. OwnerID is
// never touched by this path.
func (s *ClientService) Update(ctx context.Context, claims domain.Claims, id string, input ports.ClientInput) (*domain.Client, error) {
	if verr := validateClient(input); verr != nil {
		return nil, verr
	}

	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(claims, client.OwnerID); err != nil {
		return nil, err
	}

	client.CompanyName = input.CompanyName
	client.Industry = input.Industry
	client.Address = input.Address
	client.PrimaryContact = domain.PrimaryContact{
		Name:  input.PrimaryContact.Name,
		Email: input.PrimaryContact.Email,
		Phone: input.PrimaryContact.Phone,
	}
	client.AnnualTurnover = input.AnnualTurnover
	client.DocumentsSubmitted = input.DocumentsSubmitted

	if err := s.repo.Update(ctx, client); err != nil {
		s.logger.Error().Err(err).Str("client_id", id).Msg("failed to update client")
		return nil, err
	}

	s.logger.Info().Str("client_id", id).Msg("client updated")
	return client, nil
}

// Search lists the caller's own clients, optionally filtered. A company-name
// filter takes precedence over an industry filter; only one is honored.
func (s *ClientService) Search(ctx context.Context, claims domain.Claims, companyName, industry string) ([]*domain.Client, error) {
	if strings.TrimSpace(companyName) != "" {
		return s.repo.SearchByCompanyName(ctx, claims.UserID, companyName)
	}
	if strings.TrimSpace(industry) != "" {
		return s.repo.SearchByIndustry(ctx, claims.UserID, industry)
	}
	return s.repo.FindByOwner(ctx, claims.UserID)
}

// Industries returns the distinct industries across the caller's own clients.
func (s *ClientService) Industries(ctx context.Context, claims domain.Claims) ([]string, error) {
	return s.repo.DistinctIndustries(ctx, claims.UserID)
}

func validateClient(input ports.ClientInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.CompanyName) == "" {
		fields["companyName"] = "company name is required"
	} else if len(input.CompanyName) > 150 {
		fields["companyName"] = "company name must not exceed 150 characters"
	}
	if strings.TrimSpace(input.Industry) == "" {
		fields["industry"] = "industry is required"
	} else if len(input.Industry) > 100 {
		fields["industry"] = "industry must not exceed 100 characters"
	}
	if len(input.Address) > 255 {
		fields["address"] = "address must not exceed 255 characters"
	}
	if strings.TrimSpace(input.PrimaryContact.Name) == "" {
		fields["primaryContact.name"] = "contact name is required"
	}
	if !strings.Contains(input.PrimaryContact.Email, "@") {
		fields["primaryContact.email"] = "invalid email format"
	}
	if !phonePattern.MatchString(input.PrimaryContact.Phone) {
		fields["primaryContact.phone"] = "phone number must be 10 digits"
	}
	if input.AnnualTurnover < 0 {
		fields["annualTurnover"] = "annual turnover must be zero or positive"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
