package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/service"
)

// UserHandler bundles roster HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateUserRequest carries either a role change (admin path) or a profile
// change (settings path). Exactly which is determined by the fields present.
type UpdateUserRequest struct {
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "failed to list users"})
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary Update a user's role or profile
// @Tags users
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{email} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	email := c.Param("email")
	claims := currentClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error()})
	}
	if req.Role == "" && req.Name == "" && req.Password == "" {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "nothing to update"})
	}

	ctx := c.Request().Context()

	if req.Role != "" {
		if claims.Role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{Error: "forbidden"})
		}
		if _, err := h.svc.UpdateRole(ctx, claims.Email, email, req.Role); err != nil {
			httpErr := apperrors.MapErrorToHTTP(err)
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "user updated"})
	}

	// Profile path: only the account holder or an admin may rewrite
	// name/password.
	if claims.Role != model.RoleAdmin && !strings.EqualFold(claims.Email, email) {
		return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{Error: "forbidden"})
	}
	if _, err := h.svc.UpdateProfile(ctx, email, req.Name, req.Password); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user updated"})
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{email} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: "unauthorized"})
	}

	if err := h.svc.DeleteUser(c.Request().Context(), claims.Email, c.Param("email")); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}
