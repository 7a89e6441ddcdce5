package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/christianotieno/product-catalog/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the consistent JSON envelope
//     {status, error, message, path, timestamp}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, title, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			Status:    code,
			Error:     title,
			Message:   msg,
			Path:      c.Request().URL.Path,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (code int, title, msg string) {
	// Validation failures carry the full list of violations.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Validation failed", ve.Error()
	}

	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, http.StatusText(he.Code), fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Authentication failed", "invalid email or password"
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Authentication failed", "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access denied", "access forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Resource not found", "user not found"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "Resource not found", "product not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Conflict", "email already registered"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal error", "internal server error"
}
