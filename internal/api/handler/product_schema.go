package handler

// productRequest carries the client-supplied fields for product create
// and full-replace update.
type productRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=255"`
	Description   string  `json:"description" validate:"max=1000"`
	Price         float64 `json:"price" validate:"required,gt=0,lte=999999.99"`
	Category      string  `json:"category" validate:"max=100"`
	StockQuantity int     `json:"stockQuantity" validate:"gte=0,lte=999999"`
}

// productResponse is the product DTO, including the derived flags
// computed on read.
type productResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Price          float64 `json:"price"`
	Category       string  `json:"category,omitempty"`
	StockQuantity  int     `json:"stockQuantity"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
	InStock        bool    `json:"inStock"`
	LowStock       bool    `json:"lowStock"`
	FormattedPrice string  `json:"formattedPrice"`
}

// pageResponse is the pagination envelope for GET /products.
type pageResponse struct {
	Content       []productResponse `json:"content"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	Number        int               `json:"number"`
	First         bool              `json:"first"`
	Last          bool              `json:"last"`
}
