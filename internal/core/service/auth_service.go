package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/christianotieno/product-catalog/internal/api/metrics"
	"github.com/christianotieno/product-catalog/internal/core/domain"
	"github.com/christianotieno/product-catalog/internal/core/ports"
)

// AuthService implements registration, login, and admin identity management.
type AuthService struct {
	repo   ports.AuthRepository
	codec  ports.TokenCodec
	logger zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, codec ports.TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

var _ ports.AuthService = (*AuthService)(nil)

// Login validates the credentials and issues a token carrying the
// identity's current role. Unknown emails and wrong passwords are not
// distinguished to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	tok, err := s.codec.Issue(ports.TokenClaims{Subject: user.Email, UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("email", user.Email).Int64("user_id", user.ID).Msg("user logged in")

	return &ports.AuthResult{Token: tok, User: user}, nil
}

// Register creates a new identity with role USER and issues a token.
// The role is never client-supplied.
func (s *AuthService) Register(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.TrimSpace(email)

	var violations []string
	if email == "" || !strings.Contains(email, "@") {
		violations = append(violations, "email must be a valid email address")
	}
	if len(password) < 6 {
		violations = append(violations, "password must be at least 6 characters")
	}
	if len(violations) > 0 {
		return nil, domain.NewValidationError(violations...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	tok, err := s.codec.Issue(ports.TokenClaims{Subject: created.Email, UserID: created.ID, Role: created.Role})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("email", created.Email).Int64("user_id", created.ID).Msg("user registered")

	return &ports.AuthResult{Token: tok, User: created}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthService) UpdateUserRole(ctx context.Context, id int64, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.NewValidationError("role must be USER or ADMIN")
	}

	user, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Str("role", role).Msg("user role updated")
	return user, nil
}

// DeleteUser removes an identity. Admins cannot delete their own account.
func (s *AuthService) DeleteUser(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Int64("deleted_by", actorID).Msg("user deleted")
	return nil
}
