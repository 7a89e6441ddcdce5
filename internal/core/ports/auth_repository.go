package ports

import (
	"context"

	"github.com/christianotieno/product-catalog/internal/core/domain"
)

// AuthRepository defines the interface for identity persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
