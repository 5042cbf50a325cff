package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventstaffing/internal/delivery/http/helpers"
	"eventstaffing/internal/domain"
)

// CategoryRequest is the request body for creating or replacing a position category.
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Validate implements Validator.
func (c CategoryRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

type CategoryController struct {
	Logger *slog.Logger
	Repo   domain.PositionCategoryRepository
}

func NewCategoryController(logger *slog.Logger, repo domain.PositionCategoryRepository) *CategoryController {
	return &CategoryController{Logger: logger, Repo: repo}
}

// Create godoc
// @Summary Create a position category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CategoryRequest true "Category data"
// @Success 201 {object} helpers.APIResponse "data contains the created category"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /position-categories [post]
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOrganizer(w, r); !ok {
		return
	}
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	category := &domain.PositionCategory{
		Name:  strings.TrimSpace(req.Name),
		Color: req.Color,
		Icon:  req.Icon,
	}
	if err := c.Repo.Create(r.Context(), category); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, category)
}

// GetByID godoc
// @Summary Get a position category by ID
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID"
// @Success 200 {object} helpers.APIResponse "data contains the category"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /position-categories/{categoryID} [get]
func (c *CategoryController) GetByID(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	if categoryID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing categoryID")
		return
	}
	category, err := c.Repo.GetByID(r.Context(), categoryID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, category)
}

// List godoc
// @Summary List position categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains a list of categories"
// @Router /position-categories [get]
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Repo.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, categories)
}

// Update godoc
// @Summary Replace a position category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID"
// @Param body body CategoryRequest true "Category data"
// @Success 200 {object} helpers.APIResponse "data contains the updated category"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /position-categories/{categoryID} [put]
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	if categoryID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing categoryID")
		return
	}
	if _, ok := requireOrganizer(w, r); !ok {
		return
	}
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	category := &domain.PositionCategory{
		ID:    categoryID,
		Name:  strings.TrimSpace(req.Name),
		Color: req.Color,
		Icon:  req.Icon,
	}
	if err := c.Repo.Update(r.Context(), category); err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a position category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /position-categories/{categoryID} [delete]
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	if categoryID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing categoryID")
		return
	}
	if _, ok := requireOrganizer(w, r); !ok {
		return
	}
	if err := c.Repo.Delete(r.Context(), categoryID); err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
