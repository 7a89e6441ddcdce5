package domain

import "time"

// LowStockThreshold is the stock quantity below which a product is
// reported as low-stock.
const LowStockThreshold = 10

// Product is a catalog item. Description and Category are optional and
// stored as empty strings when absent.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	Category      string    `json:"category,omitempty"`
	StockQuantity int       `json:"stockQuantity"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// LowStock reports whether the stock quantity is below LowStockThreshold.
func (p *Product) LowStock() bool {
	return p.StockQuantity < LowStockThreshold
}
