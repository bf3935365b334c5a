package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cropbank/banking-system/internal/core/domain"
	"github.com/cropbank/banking-system/internal/core/ports"
	"github.com/cropbank/banking-system/internal/core/token"
)

// AuthService implements credential verification, token issuance and
// admin-driven registration.
type AuthService struct {
	repo   ports.UserRepository
	codec  *token.Codec
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

// Login verifies the email/password pair and issues a session token. Unknown
// user and wrong password produce the same ErrInvalidCredentials so the login
// path cannot be used to enumerate accounts. The activation check runs only
// after the password verified, so a disabled account does not leak its
// existence on a bad password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return "", nil, domain.ErrAccountDisabled
	}

	tok, err := s.codec.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return tok, user, nil
}

// Register creates a new, active identity. The email is normalized to lower
// case before the uniqueness check so lookups and uniqueness agree on case.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if verr := validateRegistration(input); verr != nil {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        normalizeEmail(input.Email),
		PasswordHash: string(hash),
		Role:         input.Role,
		Active:       true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// EnsureAdmin seeds the default administrator on an empty database.
// Registration is admin-only, so without this account a fresh deployment has
// no identity that could ever reach the registration endpoint. The seed is
// idempotent: an existing account with the configured email wins, and a
// duplicate-key race against another replica is treated as success.
func EnsureAdmin(ctx context.Context, repo ports.UserRepository, input ports.RegisterInput, logger zerolog.Logger) error {
	input.Role = domain.RoleAdmin

	_, err := repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if verr := validateRegistration(input); verr != nil {
		return verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	created, err := repo.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        normalizeEmail(input.Email),
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Active:       true,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) || errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return err
	}

	logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("default admin created")
	return nil
}

func validateRegistration(input ports.RegisterInput) error {
	fields := map[string]string{}
	if n := len(input.Username); n < 3 || n > 30 {
		fields["username"] = "username must be 3-30 characters"
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		fields["email"] = "invalid email format"
	}
	if len(input.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if _, ok := domain.ParseRole(string(input.Role)); !ok {
		fields["role"] = "role must be one of ADMIN, RELATIONSHIP_MANAGER, ANALYST"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
