package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/christianotieno/product-catalog/internal/core/domain"
	"github.com/christianotieno/product-catalog/internal/core/ports"
)

// Context keys under which verified claims are stored for the request.
const (
	ContextEmail  = "email"
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Auth verifies the bearer token and populates the request context with
// the embedded claims. A missing or malformed Authorization header lets
// the request proceed unauthenticated; the policy middleware decides
// whether the route allows that. A present but unverifiable token is
// rejected outright. Expired and invalid tokens produce the same client
// response and are distinguished only in the server log.
func Auth(codec ports.TokenCodec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				reason := "invalid"
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = "expired"
				}
				log.Warn().
					Str("reason", reason).
					Str("path", c.Request().URL.Path).
					Msg("bearer token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ContextEmail, claims.Subject)
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}
