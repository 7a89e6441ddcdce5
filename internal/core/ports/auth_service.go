package ports

import (
	"context"

	"github.com/christianotieno/product-catalog/internal/core/domain"
)

// AuthResult is returned after a successful login or registration.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService implements credential validation, registration, and the
// admin-only identity management operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUserRole(ctx context.Context, id int64, role string) (*domain.User, error)
	// DeleteUser removes the identity with the given id. actorID is the
	// authenticated admin performing the call; deleting oneself is refused.
	DeleteUser(ctx context.Context, actorID, id int64) error
}
