package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cropbank/banking-system/internal/core/domain"
	"github.com/cropbank/banking-system/internal/core/ports"
)

// UserService covers identity administration: listing accounts and toggling
// their activation flag.
type UserService struct {
	repo      ports.UserRepository
	publisher ports.EventPublisher
	logger    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, publisher ports.EventPublisher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, publisher: publisher, logger: logger}
}

// ListUsers returns the sanitized admin view of every identity.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, domain.UserSummary{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
			Active:   u.Active,
		})
	}
	return summaries, nil
}

// GetByEmail resolves the identity behind a token subject.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, normalizeEmail(email))
}

// UpdateStatus toggles the activation flag and emits a status-change event
// carrying the previous value. The event is published after the write has
// committed; publication never affects the outcome.
func (s *UserService) UpdateStatus(ctx context.Context, id string, active bool) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := current.Active

	updated, err := s.repo.UpdateActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.UserStatusEvent{
		ID:             uuid.NewString(),
		EventType:      domain.EventUserStatusUpdated,
		UserID:         updated.ID,
		Username:       updated.Username,
		Email:          updated.Email,
		Role:           updated.Role,
		PreviousActive: previous,
		Active:         updated.Active,
		Timestamp:      time.Now().UTC(),
	})

	s.logger.Info().Str("user_id", id).Bool("active", active).Msg("user status updated")
	return updated, nil
}
