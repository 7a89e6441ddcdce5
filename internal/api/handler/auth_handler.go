package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/christianotieno/product-catalog/internal/core/domain"
	"github.com/christianotieno/product-catalog/internal/core/ports"
)

// AuthHandler exposes authentication and identity management endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func toAuthResponse(result *ports.AuthResult) authResponse {
	return authResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		UserID:    result.User.ID,
		Email:     result.User.Email,
		Role:      result.User.Role,
	}
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// Register creates a new account with role USER and returns a JWT token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toAuthResponse(result))
}

// ListUsers returns every registered identity.
//
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]any
// @Router       /auth/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns a single identity by id.
//
// @Summary      Get user by id
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]any
// @Router       /auth/users/{id} [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUserRole changes the role of an identity.
//
// @Summary      Update user role
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int     true  "User ID"
// @Param        role  query     string  true  "New role (USER or ADMIN)"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]any
// @Router       /auth/users/{id}/role [put]
func (h *AuthHandler) UpdateUserRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.UpdateUserRole(c.Request().Context(), id, c.QueryParam("role"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser permanently removes an identity. Admins cannot delete their
// own account.
//
// @Summary      Delete user
// @Tags         auth
// @Security     BearerAuth
// @Param        id  path  int  true  "User ID"
// @Success      204
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /auth/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	actorID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.authService.DeleteUser(c.Request().Context(), actorID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id must be a positive integer")
	}
	return id, nil
}
