package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/christianotieno/product-catalog/internal/api/metrics"
	"github.com/christianotieno/product-catalog/internal/core/domain"
	"github.com/christianotieno/product-catalog/internal/core/ports"
)

const (
	maxPrice = 999999.99
	maxStock = 999999
)

// sortColumns whitelists the client-facing sort fields and maps them to
// database columns. Unknown fields are rejected before any query runs.
var sortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"price":         "price",
	"category":      "category",
	"stockQuantity": "stock_quantity",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

// ProductService owns product business rules: invariant validation,
// timestamp assignment, stock bounds, and category cache upkeep.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.CategoryCache // optional, may be nil
	logger zerolog.Logger
}

// NewProductService constructs a ProductService. cache may be nil, in
// which case the category list is always read from the repository.
func NewProductService(repo ports.ProductRepository, cache ports.CategoryCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

var _ ports.ProductService = (*ProductService)(nil)

// validateInput checks every product invariant and reports all
// violations at once rather than stopping at the first.
func validateInput(input ports.ProductInput) error {
	var violations []string

	name := strings.TrimSpace(input.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 255 {
		violations = append(violations, "name must be between 2 and 255 characters")
	}
	if utf8.RuneCountInString(input.Description) > 1000 {
		violations = append(violations, "description cannot exceed 1000 characters")
	}
	if input.Price <= 0 {
		violations = append(violations, "price must be greater than 0")
	} else if input.Price > maxPrice {
		violations = append(violations, "price cannot exceed 999999.99")
	} else if cents := input.Price * 100; math.Abs(cents-math.Round(cents)) > 1e-6 {
		violations = append(violations, "price must have at most 2 decimal places")
	}
	if utf8.RuneCountInString(input.Category) > 100 {
		violations = append(violations, "category cannot exceed 100 characters")
	}
	if input.StockQuantity < 0 {
		violations = append(violations, "stock quantity cannot be negative")
	} else if input.StockQuantity > maxStock {
		violations = append(violations, "stock quantity cannot exceed 999999")
	}

	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

// Create validates the input and persists a new product with
// created = updated = now.
func (s *ProductService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Price:         input.Price,
		Category:      input.Category,
		StockQuantity: input.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	metrics.ProductsCreatedTotal.Inc()
	s.logger.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("product created")
	s.invalidateCategories(ctx)

	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindAll(ctx)
}

// List returns one page of products. The page index is zero-based.
func (s *ProductService) List(ctx context.Context, input ports.ListPageInput) (*ports.Page, error) {
	var violations []string
	if input.Page < 0 {
		violations = append(violations, "page must not be negative")
	}
	if input.Size < 1 {
		violations = append(violations, "size must be at least 1")
	}

	sortBy := input.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		violations = append(violations, fmt.Sprintf("unknown sort field %q", input.SortBy))
	}

	sortDesc := false
	switch strings.ToLower(input.SortDir) {
	case "", "asc":
	case "desc":
		sortDesc = true
	default:
		violations = append(violations, "sortDir must be asc or desc")
	}

	if len(violations) > 0 {
		return nil, domain.NewValidationError(violations...)
	}

	result, err := s.repo.FindPage(ctx, ports.PageRequest{
		Page:     input.Page,
		Size:     input.Size,
		SortBy:   column,
		SortDesc: sortDesc,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((result.TotalElements + int64(input.Size) - 1) / int64(input.Size))
	return &ports.Page{
		Items:         result.Items,
		TotalElements: result.TotalElements,
		TotalPages:    totalPages,
		Number:        input.Page,
		First:         input.Page == 0,
		Last:          input.Page >= totalPages-1,
	}, nil
}

// Update replaces all mutable fields and refreshes the updated timestamp.
func (s *ProductService) Update(ctx context.Context, id int64, input ports.ProductInput) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = input.Description
	existing.Price = input.Price
	existing.Category = input.Category
	existing.StockQuantity = input.StockQuantity
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")
	s.invalidateCategories(ctx)

	return updated, nil
}

// Delete permanently removes a product. There is no soft delete.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ProductsDeletedTotal.Inc()
	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	s.invalidateCategories(ctx)

	return nil
}

// AdjustStock applies a signed delta to the stock quantity. A zero delta
// is rejected: the API distinguishes add from subtract only through the
// sign, so zero carries no intent. A failed adjustment leaves the stored
// quantity untouched.
func (s *ProductService) AdjustStock(ctx context.Context, id int64, delta int) (*domain.Product, error) {
	if delta == 0 {
		return nil, domain.NewValidationError("quantity must be non-zero")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := product.StockQuantity + delta
	if next < 0 {
		return nil, domain.NewValidationError("insufficient stock")
	}
	if next > maxStock {
		return nil, domain.NewValidationError("stock quantity cannot exceed 999999")
	}

	product.StockQuantity = next
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	direction := "increase"
	if delta < 0 {
		direction = "decrease"
	}
	metrics.StockAdjustmentsTotal.WithLabelValues(direction).Inc()
	s.logger.Info().Int64("product_id", id).Int("delta", delta).Int("stock", next).Msg("stock adjusted")

	return updated, nil
}

// Search applies the AND-composed criteria. An inverted price range
// simply matches nothing.
func (s *ProductService) Search(ctx context.Context, criteria ports.SearchCriteria) ([]*domain.Product, error) {
	criteria.Name = strings.TrimSpace(criteria.Name)
	criteria.Category = strings.TrimSpace(criteria.Category)
	return s.repo.Search(ctx, criteria)
}

func (s *ProductService) ByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.FindByCategory(ctx, category)
}

func (s *ProductService) LowStock(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindLowStock(ctx, domain.LowStockThreshold)
}

// Categories returns the distinct category list, served from the cache
// when one is configured and warm.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		} else if ok {
			metrics.CategoryCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.CategoryCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}

	return categories, nil
}

// invalidateCategories drops the cached category list after any mutation.
// Cache failures are logged and otherwise ignored: the store remains the
// source of truth.
func (s *ProductService) invalidateCategories(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("category cache invalidation failed")
	}
}
