package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "ideahub/internal/errors"
	"ideahub/internal/service"
)

// IdeaHandler bundles idea board HTTP handlers.
type IdeaHandler struct {
	svc service.IdeaService
}

// NewIdeaHandler creates a handler layer.
func NewIdeaHandler(svc service.IdeaService) *IdeaHandler {
	return &IdeaHandler{svc: svc}
}

// CreateIdeaRequest represents an idea submission.
type CreateIdeaRequest struct {
	Content string `json:"content" validate:"required"`
	Author  string `json:"author"`
}

// ListIdeas godoc
// @Summary List ideas, newest first
// @Tags ideas
// @Produce json
// @Success 200 {array} model.Idea
// @Router /ideas [get]
func (h *IdeaHandler) ListIdeas(c echo.Context) error {
	ideas, err := h.svc.ListIdeas(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "failed to list ideas"})
	}
	return c.JSON(http.StatusOK, ideas)
}

// CreateIdea godoc
// @Summary Submit an idea
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body CreateIdeaRequest true "Idea payload"
// @Success 201 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Router /ideas [post]
func (h *IdeaHandler) CreateIdea(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: "unauthorized"})
	}

	var req CreateIdeaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error()})
	}

	author := req.Author
	if author == "" {
		author = claims.Name
	}

	idea, err := h.svc.CreateIdea(c.Request().Context(), req.Content, author)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "failed to create idea"})
	}
	return c.JSON(http.StatusCreated, idea)
}

// DeleteIdea godoc
// @Summary Delete an idea
// @Tags ideas
// @Produce json
// @Param id path int true "Idea ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ideas/{id} [delete]
func (h *IdeaHandler) DeleteIdea(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid id"})
	}

	if err := h.svc.DeleteIdea(c.Request().Context(), id, claims.Name, claims.Role); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "idea deleted"})
}
