package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/christianotieno/product-catalog/internal/core/domain"
)

// Rule maps (HTTP method, path pattern) to an access requirement. A nil
// Methods slice matches every method. Patterns are literal paths, or a
// prefix followed by "/**" which also matches the prefix itself.
type Rule struct {
	Methods []string
	Pattern string
	// Public routes skip authentication entirely.
	Public bool
	// Roles allowed on the route. Empty (non-public) means any
	// authenticated identity.
	Roles []string
}

// DefaultRules is the authorization table, evaluated top-down with first
// match winning.
var DefaultRules = []Rule{
	{Pattern: "/auth/login", Public: true},
	{Pattern: "/auth/register", Public: true},
	{Pattern: "/health/**", Public: true},
	{Pattern: "/metrics", Public: true},
	{Pattern: "/swagger/**", Public: true},
	{Methods: []string{http.MethodGet}, Pattern: "/products/**", Roles: []string{domain.RoleUser, domain.RoleAdmin}},
	{Methods: []string{http.MethodPost, http.MethodPut, http.MethodDelete}, Pattern: "/products/**", Roles: []string{domain.RoleAdmin}},
	{Pattern: "/auth/users/**", Roles: []string{domain.RoleAdmin}},
	{Pattern: "/**"},
}

func (r Rule) matches(method, path string) bool {
	if len(r.Methods) > 0 {
		found := false
		for _, m := range r.Methods {
			if m == method {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if prefix, ok := strings.CutSuffix(r.Pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Pattern
}

func (r Rule) allows(role string) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Policy enforces the rule table against the claims attached by Auth.
// Unauthenticated requests to protected routes get 401; authenticated
// requests whose role does not satisfy the matched rule get 403.
func Policy(rules []Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			path := c.Request().URL.Path

			for _, rule := range rules {
				if !rule.matches(method, path) {
					continue
				}
				if rule.Public {
					return next(c)
				}

				role, _ := c.Get(ContextRole).(string)
				if role == "" {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
				if !rule.allows(role) {
					return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
				}
				return next(c)
			}

			// No rule matched; the table ends with a catch-all, so this is
			// only reachable with a custom rule set.
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
	}
}
