package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/christianotieno/product-catalog/internal/core/domain"
)

func policyCheck(t *testing.T, method, path, role string) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(ContextRole, role)
	}

	return Policy(DefaultRules)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func expectStatus(t *testing.T, err error, want int) {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError with code %d, got %v", want, err)
	}
	if he.Code != want {
		t.Fatalf("expected %d, got %d", want, he.Code)
	}
}

func TestPolicy_PublicRoutes(t *testing.T) {
	for _, path := range []string{"/auth/login", "/auth/register", "/health", "/health/ready", "/metrics"} {
		if err := policyCheck(t, http.MethodPost, path, ""); err != nil {
			t.Fatalf("expected %s to be public, got %v", path, err)
		}
	}
}

func TestPolicy_ProductsRead_AllowsBothRoles(t *testing.T) {
	for _, role := range []string{domain.RoleUser, domain.RoleAdmin} {
		if err := policyCheck(t, http.MethodGet, "/products", role); err != nil {
			t.Fatalf("expected GET /products to allow %s, got %v", role, err)
		}
		if err := policyCheck(t, http.MethodGet, "/products/42", role); err != nil {
			t.Fatalf("expected GET /products/42 to allow %s, got %v", role, err)
		}
	}
}

func TestPolicy_ProductsWrite_AdminOnly(t *testing.T) {
	if err := policyCheck(t, http.MethodPost, "/products", domain.RoleAdmin); err != nil {
		t.Fatalf("expected POST /products to allow admin, got %v", err)
	}

	expectStatus(t, policyCheck(t, http.MethodPost, "/products", domain.RoleUser), http.StatusForbidden)
	expectStatus(t, policyCheck(t, http.MethodDelete, "/products/42", domain.RoleUser), http.StatusForbidden)
	expectStatus(t, policyCheck(t, http.MethodPut, "/products/42/stock", domain.RoleUser), http.StatusForbidden)
}

func TestPolicy_UserManagement_AdminOnly(t *testing.T) {
	if err := policyCheck(t, http.MethodGet, "/auth/users", domain.RoleAdmin); err != nil {
		t.Fatalf("expected GET /auth/users to allow admin, got %v", err)
	}

	expectStatus(t, policyCheck(t, http.MethodGet, "/auth/users", domain.RoleUser), http.StatusForbidden)
	expectStatus(t, policyCheck(t, http.MethodDelete, "/auth/users/7", domain.RoleUser), http.StatusForbidden)
}

func TestPolicy_Unauthenticated_ProtectedRoute(t *testing.T) {
	expectStatus(t, policyCheck(t, http.MethodGet, "/products", ""), http.StatusUnauthorized)
	expectStatus(t, policyCheck(t, http.MethodGet, "/auth/users", ""), http.StatusUnauthorized)
	expectStatus(t, policyCheck(t, http.MethodGet, "/anything-else", ""), http.StatusUnauthorized)
}

func TestPolicy_CatchAll_AnyAuthenticated(t *testing.T) {
	if err := policyCheck(t, http.MethodGet, "/anything-else", domain.RoleUser); err != nil {
		t.Fatalf("expected catch-all to allow authenticated user, got %v", err)
	}
}

func TestPolicy_FirstMatchWins(t *testing.T) {
	// GET /products matches the read rule before the write rule, so a
	// plain USER passes; the same path with POST hits the write rule.
	if err := policyCheck(t, http.MethodGet, "/products/search", domain.RoleUser); err != nil {
		t.Fatalf("expected search to be readable by USER, got %v", err)
	}
	expectStatus(t, policyCheck(t, http.MethodPost, "/products/search", domain.RoleUser), http.StatusForbidden)
}
