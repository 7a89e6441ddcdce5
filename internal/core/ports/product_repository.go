package ports

import (
	"context"

	"github.com/christianotieno/product-catalog/internal/core/domain"
)

// SearchCriteria is a partial filter over the catalog. Every present
// field is ANDed; zero values impose no constraint.
type SearchCriteria struct {
	Name        string   // case-insensitive substring match
	Category    string   // exact match
	MinPrice    *float64 // inclusive lower bound
	MaxPrice    *float64 // inclusive upper bound
	InStockOnly bool     // stock_quantity > 0
}

// PageRequest describes one page of an ordered listing.
type PageRequest struct {
	Page     int    // zero-based
	Size     int    // >= 1
	SortBy   string // column name, already validated by the service
	SortDesc bool
}

// ProductPage is one page of products plus the unfiltered total.
type ProductPage struct {
	Items         []*domain.Product
	TotalElements int64
}

// ProductRepository defines persistence operations for catalog items.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindPage(ctx context.Context, req PageRequest) (*ProductPage, error)
	// Update replaces all mutable fields of the row identified by p.ID.
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, criteria SearchCriteria) ([]*domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	FindLowStock(ctx context.Context, threshold int) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}
