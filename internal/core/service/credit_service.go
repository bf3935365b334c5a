package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cropbank/banking-system/internal/core/domain"
	"github.com/cropbank/banking-system/internal/core/ports"
)

// CreditService governs the credit request state machine:
// PENDING -> APPROVED | REJECTED, both terminal.
type CreditService struct {
	repo       ports.CreditRepository
	clientRepo ports.ClientRepository
	userRepo   ports.UserRepository
	publisher  ports.EventPublisher
	logger     zerolog.Logger
}

func NewCreditService(
	repo ports.CreditRepository,
	clientRepo ports.ClientRepository,
	userRepo ports.UserRepository,
	publisher ports.EventPublisher,
	logger zerolog.Logger,
) *CreditService {
	return &CreditService{
		repo:       repo,
		clientRepo: clientRepo,
		userRepo:   userRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Create raises a PENDING request against a client owned by the caller. The
// client is resolved through an ownership-scoped lookup, so another RM's
// client fails with ErrClientNotFound rather than revealing its existence.
func (s *CreditService) Create(ctx context.Context, claims domain.Claims, input ports.CreditInput) (*domain.Credit, error) {
	if verr := validateCredit(input); verr != nil {
		return nil, verr
	}

	client, err := s.clientRepo.FindByIDAndOwner(ctx, input.ClientID, claims.UserID)
	if err != nil {
		return nil, err
	}

	credit := &domain.Credit{
		ClientID:      client.ID,
		SubmittedBy:   claims.UserID,
		RequestAmount: input.RequestAmount,
		TenureMonths:  input.TenureMonths,
		Purpose:       input.Purpose,
		Status:        domain.CreditPending,
		Remarks:       "",
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, credit)
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", input.ClientID).Msg("failed to create credit request")
		return nil, err
	}

	s.publisher.Publish(domain.CreditEvent{
		ID:        uuid.NewString(),
		EventType: domain.EventCreditCreated,
		CreditID:  created.ID,
		ClientID:  created.ClientID,
		Amount:    created.RequestAmount,
		Status:    created.Status,
		ActionBy:  created.SubmittedBy,
		Timestamp: time.Now().UTC(),
	})

	s.logger.Info().Str("credit_id", created.ID).Str("client_id", created.ClientID).Msg("credit request created")
	return created, nil
}

// List returns every request for analysts and only the caller's own
// submissions otherwise, each enriched with the client and submitter display
// names. A failed lookup omits the name instead of failing the read.
func (s *CreditService) List(ctx context.Context, claims domain.Claims) ([]domain.CreditDetails, error) {
	var credits []*domain.Credit
	var err error
	if claims.Role == domain.RoleAnalyst {
		credits, err = s.repo.FindAll(ctx)
	} else {
		credits, err = s.repo.FindBySubmitter(ctx, claims.UserID)
	}
	if err != nil {
		return nil, err
	}

	details := make([]domain.CreditDetails, 0, len(credits))
	for _, c := range credits {
		d := domain.CreditDetails{Credit: *c}
		if client, cerr := s.clientRepo.FindByID(ctx, c.ClientID); cerr == nil {
			d.ClientName = client.CompanyName
		}
		if rm, uerr := s.userRepo.FindByID(ctx, c.SubmittedBy); uerr == nil {
			d.RMName = rm.Username
		}
		details = append(details, d)
	}
	return details, nil
}

// Get returns a single credit request by id.
func (s *CreditService) Get(ctx context.Context, id string) (*domain.Credit, error) {
	return s.repo.FindByID(ctx, id)
}

// Decide moves a PENDING request to APPROVED or REJECTED. The repository
// applies the transition as a compare-and-swap on the current status, so a
// request that was already decided (or decided concurrently) fails with
// ErrCreditAlreadyDecided.
func (s *CreditService) Decide(ctx context.Context, claims domain.Claims, id string, input ports.DecisionInput) (*domain.Credit, error) {
	if !domain.CreditPending.CanTransitionTo(input.Status) {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"status": "status must be APPROVED or REJECTED",
		}}
	}
	if strings.TrimSpace(input.Remarks) == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"remarks": "remarks cannot be empty",
		}}
	}

	decided, err := s.repo.Decide(ctx, id, input.Status, input.Remarks)
	if err != nil {
		if errors.Is(err, domain.ErrCreditAlreadyDecided) {
			s.logger.Warn().Str("credit_id", id).Msg("decision rejected: request no longer pending")
		}
		return nil, err
	}

	s.publisher.Publish(domain.CreditEvent{
		ID:             uuid.NewString(),
		EventType:      domain.EventCreditDecided,
		CreditID:       decided.ID,
		ClientID:       decided.ClientID,
		Amount:         decided.RequestAmount,
		Status:         decided.Status,
		PreviousStatus: domain.CreditPending,
		ActionBy:       claims.UserID,
		Comments:       decided.Remarks,
		Timestamp:      time.Now().UTC(),
	})

	s.logger.Info().
		Str("credit_id", id).
		Str("status", string(decided.Status)).
		Str("decided_by", claims.UserID).
		Msg("credit request decided")
	return decided, nil
}

func validateCredit(input ports.CreditInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.ClientID) == "" {
		fields["clientId"] = "client id is required"
	}
	if input.RequestAmount <= 0 {
		fields["requestAmount"] = "request amount must be greater than 0"
	}
	if input.TenureMonths <= 0 {
		fields["tenureMonths"] = "tenure months must be greater than 0"
	}
	if strings.TrimSpace(input.Purpose) == "" {
		fields["purpose"] = "purpose cannot be empty"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
