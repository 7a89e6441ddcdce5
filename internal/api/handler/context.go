package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/christianotieno/product-catalog/internal/api/middleware"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware.
// A missing role means the policy middleware did not run or the route was
// wired without it; fail closed with 401.
func ctxIdentity(c echo.Context) (userID int64, email, role string, err error) {
	role, _ = c.Get(middleware.ContextRole).(string)
	if role == "" {
		return 0, "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ = c.Get(middleware.ContextUserID).(int64)
	email, _ = c.Get(middleware.ContextEmail).(string)
	return userID, email, role, nil
}
