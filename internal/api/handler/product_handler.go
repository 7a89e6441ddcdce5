package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/christianotieno/product-catalog/internal/core/domain"
	"github.com/christianotieno/product-catalog/internal/core/ports"
)

// ProductHandler exposes the catalog endpoints.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products with pagination and sorting.
//
// @Summary      List products (paginated)
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page     query  int     false  "Zero-based page index"  default(0)
// @Param        size     query  int     false  "Page size"              default(10)
// @Param        sortBy   query  string  false  "Sort field"
// @Param        sortDir  query  string  false  "asc or desc"
// @Success      200  {object}  pageResponse
// @Failure      400  {object}  map[string]any
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return err
	}
	size, err := queryInt(c, "size", 10)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), ports.ListPageInput{
		Page:    page,
		Size:    size,
		SortBy:  c.QueryParam("sortBy"),
		SortDir: c.QueryParam("sortDir"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pageResponse{
		Content:       toProductResponses(result.Items),
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		Number:        result.Number,
		First:         result.First,
		Last:          result.Last,
	})
}

// GetAll handles GET /products/all.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  productResponse
// @Router       /products/all [get]
func (h *ProductHandler) GetAll(c echo.Context) error {
	products, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// Get handles GET /products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Product ID"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  map[string]any
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product fields"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string]any
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), ports.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// Update handles PUT /products/:id as a full replace of mutable fields.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product ID"
// @Param        body  body      productRequest  true  "Product fields"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Update(c.Request().Context(), id, ports.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete handles DELETE /products/:id. Deletion is permanent.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  int  true  "Product ID"
// @Success      204
// @Failure      404  {object}  map[string]any
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AdjustStock handles PUT /products/:id/stock?quantity=<signed int>.
//
// @Summary      Adjust stock
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id        path   int  true  "Product ID"
// @Param        quantity  query  int  true  "Signed stock delta"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /products/{id}/stock [put]
func (h *ProductHandler) AdjustStock(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	quantity := c.QueryParam("quantity")
	delta, err := strconv.Atoi(quantity)
	if err != nil {
		return domain.NewValidationError("quantity must be a signed integer")
	}

	product, err := h.service.AdjustStock(c.Request().Context(), id, delta)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Search handles GET /products/search with optional AND-composed filters.
//
// @Summary      Search products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        name      query  string   false  "Name substring (case-insensitive)"
// @Param        category  query  string   false  "Exact category"
// @Param        minPrice  query  number   false  "Minimum price (inclusive)"
// @Param        maxPrice  query  number   false  "Maximum price (inclusive)"
// @Param        inStock   query  boolean  false  "Only products with stock > 0"
// @Success      200  {array}   productResponse
// @Failure      400  {object}  map[string]any
// @Router       /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	criteria := ports.SearchCriteria{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
	}

	minPrice, err := queryFloat(c, "minPrice")
	if err != nil {
		return err
	}
	criteria.MinPrice = minPrice

	maxPrice, err := queryFloat(c, "maxPrice")
	if err != nil {
		return err
	}
	criteria.MaxPrice = maxPrice

	if raw := c.QueryParam("inStock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.NewValidationError("inStock must be a boolean")
		}
		criteria.InStockOnly = inStock
	}

	products, err := h.service.Search(c.Request().Context(), criteria)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// ByCategory handles GET /products/category/:category.
//
// @Summary      List products in a category
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        category  path  string  true  "Category name"
// @Success      200  {array}  productResponse
// @Router       /products/category/{category} [get]
func (h *ProductHandler) ByCategory(c echo.Context) error {
	products, err := h.service.ByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// LowStock handles GET /products/low-stock.
//
// @Summary      List low-stock products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  productResponse
// @Router       /products/low-stock [get]
func (h *ProductHandler) LowStock(c echo.Context) error {
	products, err := h.service.LowStock(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// Categories handles GET /products/categories.
//
// @Summary      List distinct categories
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  string
// @Router       /products/categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name + " must be an integer")
	}
	return n, nil
}

func queryFloat(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.NewValidationError(name + " must be a number")
	}
	return &f, nil
}
