package ports

import (
	"context"

	"github.com/christianotieno/product-catalog/internal/core/domain"
)

// ProductInput carries all client-supplied product fields for create and
// full-replace update.
type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	Category      string
	StockQuantity int
}

// ListPageInput carries the pagination query parameters as received from
// the client, before validation.
type ListPageInput struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string // "asc" or "desc"
}

// Page is the pagination envelope returned to clients.
type Page struct {
	Items         []*domain.Product
	TotalElements int64
	TotalPages    int
	Number        int
	First         bool
	Last          bool
}

// ProductService owns catalog business rules and orchestrates the
// repository and the category cache.
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	List(ctx context.Context, input ListPageInput) (*Page, error)
	Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	// AdjustStock applies a signed stock delta. Zero deltas and decreases
	// below zero are rejected as validation errors.
	AdjustStock(ctx context.Context, id int64, delta int) (*domain.Product, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]*domain.Product, error)
	ByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	LowStock(ctx context.Context) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// CategoryCache is an optional read-through cache for the distinct
// category list. Implementations must tolerate concurrent use.
type CategoryCache interface {
	Get(ctx context.Context) ([]string, bool, error)
	Set(ctx context.Context, categories []string) error
	Invalidate(ctx context.Context) error
}
