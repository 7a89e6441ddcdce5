package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/christianotieno/product-catalog/internal/core/domain"
	"github.com/christianotieno/product-catalog/internal/core/ports"
)

type stubProductService struct {
	createFn      func(ctx context.Context, input ports.ProductInput) (*domain.Product, error)
	getFn         func(ctx context.Context, id int64) (*domain.Product, error)
	getAllFn      func(ctx context.Context) ([]*domain.Product, error)
	listFn        func(ctx context.Context, input ports.ListPageInput) (*ports.Page, error)
	updateFn      func(ctx context.Context, id int64, input ports.ProductInput) (*domain.Product, error)
	deleteFn      func(ctx context.Context, id int64) error
	adjustStockFn func(ctx context.Context, id int64, delta int) (*domain.Product, error)
	searchFn      func(ctx context.Context, criteria ports.SearchCriteria) ([]*domain.Product, error)
	byCategoryFn  func(ctx context.Context, category string) ([]*domain.Product, error)
	lowStockFn    func(ctx context.Context) ([]*domain.Product, error)
	categoriesFn  func(ctx context.Context) ([]string, error)
}

func (s *stubProductService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return s.getAllFn(ctx)
}

func (s *stubProductService) List(ctx context.Context, input ports.ListPageInput) (*ports.Page, error) {
	return s.listFn(ctx, input)
}

func (s *stubProductService) Update(ctx context.Context, id int64, input ports.ProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubProductService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubProductService) AdjustStock(ctx context.Context, id int64, delta int) (*domain.Product, error) {
	return s.adjustStockFn(ctx, id, delta)
}

func (s *stubProductService) Search(ctx context.Context, criteria ports.SearchCriteria) ([]*domain.Product, error) {
	return s.searchFn(ctx, criteria)
}

func (s *stubProductService) ByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.byCategoryFn(ctx, category)
}

func (s *stubProductService) LowStock(ctx context.Context) ([]*domain.Product, error) {
	return s.lowStockFn(ctx)
}

func (s *stubProductService) Categories(ctx context.Context) ([]string, error) {
	return s.categoriesFn(ctx)
}

func testProduct() *domain.Product {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Product{
		ID:            1,
		Name:          "Widget",
		Description:   "A fine widget",
		Price:         9.99,
		Category:      "tools",
		StockQuantity: 5,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestProductHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		createFn: func(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
			if input.Name != "Widget" || input.Price != 9.99 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return testProduct(), nil
		},
	}
	h := NewProductHandler(stub)

	body := `{"name":"Widget","description":"A fine widget","price":9.99,"category":"tools","stockQuantity":5}`
	req := jsonRequest(http.MethodPost, "/products", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["formattedPrice"] != "$9.99" {
		t.Fatalf("expected formatted price $9.99, got %v", resp["formattedPrice"])
	}
	if resp["inStock"] != true || resp["lowStock"] != true {
		t.Fatalf("unexpected derived flags: %+v", resp)
	}
}

func TestProductHandler_Create_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		createFn: func(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewProductHandler(stub)

	// Missing name and non-positive price violate two rules at once.
	req := jsonRequest(http.MethodPost, "/products", `{"price":-1}`)
	c := e.NewContext(req, httptest.NewRecorder())

	var ve *domain.ValidationError
	if err := h.Create(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) < 2 {
		t.Fatalf("expected multiple violations, got %v", ve.Violations)
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		getFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewProductHandler(stub)

	req := jsonRequest(http.MethodGet, "/products/404", "")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("404")

	if err := h.Get(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductHandler_List_Defaults(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		listFn: func(ctx context.Context, input ports.ListPageInput) (*ports.Page, error) {
			if input.Page != 0 || input.Size != 10 {
				t.Fatalf("expected default page=0 size=10, got %+v", input)
			}
			return &ports.Page{
				Items:         []*domain.Product{testProduct()},
				TotalElements: 1,
				TotalPages:    1,
				Number:        0,
				First:         true,
				Last:          true,
			}, nil
		},
	}
	h := NewProductHandler(stub)

	req := jsonRequest(http.MethodGet, "/products", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["totalElements"] != float64(1) || resp["first"] != true || resp["last"] != true {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	content, ok := resp["content"].([]any)
	if !ok || len(content) != 1 {
		t.Fatalf("expected one item in content, got %+v", resp["content"])
	}
}

func TestProductHandler_List_PassesSortParams(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		listFn: func(ctx context.Context, input ports.ListPageInput) (*ports.Page, error) {
			if input.Page != 2 || input.Size != 5 || input.SortBy != "price" || input.SortDir != "desc" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.Page{Number: 2, First: false, Last: true}, nil
		},
	}
	h := NewProductHandler(stub)

	req := jsonRequest(http.MethodGet, "/products?page=2&size=5&sortBy=price&sortDir=desc", "")
	c := e.NewContext(req, httptest.NewRecorder())

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestProductHandler_List_NonNumericPage(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(&stubProductService{})

	req := jsonRequest(http.MethodGet, "/products?page=abc", "")
	c := e.NewContext(req, httptest.NewRecorder())

	var ve *domain.ValidationError
	if err := h.List(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestProductHandler_AdjustStock(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		adjustStockFn: func(ctx context.Context, id int64, delta int) (*domain.Product, error) {
			if id != 1 || delta != -3 {
				t.Fatalf("unexpected args: %d %d", id, delta)
			}
			p := testProduct()
			p.StockQuantity = 2
			return p, nil
		},
	}
	h := NewProductHandler(stub)

	req := jsonRequest(http.MethodPut, "/products/1/stock?quantity=-3", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.AdjustStock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_AdjustStock_NonNumericQuantity(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(&stubProductService{})

	req := jsonRequest(http.MethodPut, "/products/1/stock?quantity=lots", "")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("1")

	var ve *domain.ValidationError
	if err := h.AdjustStock(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestProductHandler_Search_PassesCriteria(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		searchFn: func(ctx context.Context, criteria ports.SearchCriteria) ([]*domain.Product, error) {
			if criteria.Name != "wid" || criteria.Category != "tools" {
				t.Fatalf("unexpected criteria: %+v", criteria)
			}
			if criteria.MinPrice == nil || *criteria.MinPrice != 5 {
				t.Fatalf("expected minPrice 5, got %v", criteria.MinPrice)
			}
			if criteria.MaxPrice == nil || *criteria.MaxPrice != 50 {
				t.Fatalf("expected maxPrice 50, got %v", criteria.MaxPrice)
			}
			if !criteria.InStockOnly {
				t.Fatalf("expected inStockOnly")
			}
			return []*domain.Product{testProduct()}, nil
		},
	}
	h := NewProductHandler(stub)

	req := jsonRequest(http.MethodGet, "/products/search?name=wid&category=tools&minPrice=5&maxPrice=50&inStock=true", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Search_BadPrice(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(&stubProductService{})

	req := jsonRequest(http.MethodGet, "/products/search?minPrice=cheap", "")
	c := e.NewContext(req, httptest.NewRecorder())

	var ve *domain.ValidationError
	if err := h.Search(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestProductHandler_ByCategory(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		byCategoryFn: func(ctx context.Context, category string) ([]*domain.Product, error) {
			if category != "tools" {
				t.Fatalf("unexpected category: %s", category)
			}
			return []*domain.Product{testProduct()}, nil
		},
	}
	h := NewProductHandler(stub)

	req := jsonRequest(http.MethodGet, "/products/category/tools", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("category")
	c.SetParamValues("tools")

	if err := h.ByCategory(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Categories(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		categoriesFn: func(ctx context.Context) ([]string, error) {
			return []string{"gadgets", "tools"}, nil
		},
	}
	h := NewProductHandler(stub)

	req := jsonRequest(http.MethodGet, "/products/categories", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Categories(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var categories []string
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %v", categories)
	}
}

func TestProductHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		deleteFn: func(ctx context.Context, id int64) error {
			if id != 3 {
				t.Fatalf("unexpected id: %d", id)
			}
			return nil
		},
	}
	h := NewProductHandler(stub)

	req := jsonRequest(http.MethodDelete, "/products/3", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
