package handler

import (
	"fmt"
	"time"

	"github.com/christianotieno/product-catalog/internal/core/domain"
)

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Category:       p.Category,
		StockQuantity:  p.StockQuantity,
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.UTC().Format(time.RFC3339),
		InStock:        p.InStock(),
		LowStock:       p.LowStock(),
		FormattedPrice: fmt.Sprintf("$%.2f", p.Price),
	}
}

func toProductResponses(products []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
