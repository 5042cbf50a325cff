package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventstaffing/internal/delivery/http/helpers"
	"eventstaffing/internal/delivery/http/middleware"
	"eventstaffing/internal/domain"
)

// AssignRequest is the request body for POST /positions/{positionID}/assign.
type AssignRequest struct {
	UserID string `json:"user_id"`
}

// Validate implements Validator.
func (a AssignRequest) Validate() []string {
	if a.UserID == "" {
		return []string{"user_id is required"}
	}
	return nil
}

// ChangeStateRequest is the request body for PATCH /employments/{employmentID}/state.
type ChangeStateRequest struct {
	State string `json:"state"`
}

// Validate implements Validator.
func (c ChangeStateRequest) Validate() []string {
	if !domain.EmploymentState(strings.ToLower(c.State)).Valid() {
		return []string{"state must be one of \"pending\", \"accepted\", \"rejected\", \"done\""}
	}
	return nil
}

// SetRatingRequest is the request body for PATCH /employments/{employmentID}/rating.
type SetRatingRequest struct {
	Rating int `json:"rating"`
}

// Validate implements Validator.
func (s SetRatingRequest) Validate() []string {
	if s.Rating < domain.MinRating || s.Rating > domain.MaxRating {
		return []string{"rating must be between 0 and 5"}
	}
	return nil
}

type EmploymentController struct {
	Logger  *slog.Logger
	Service domain.EmploymentService
}

func NewEmploymentController(logger *slog.Logger, svc domain.EmploymentService) *EmploymentController {
	return &EmploymentController{Logger: logger, Service: svc}
}

func (c *EmploymentController) logInternal(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}

// Register godoc
// @Summary Register for a job position
// @Description Creates a pending employment for the authenticated user. Fails with 409 when the event has ended, the user is already registered, or the position is full.
// @Tags employments
// @Produce json
// @Security BearerAuth
// @Param positionID path string true "Position ID"
// @Success 201 {object} helpers.APIResponse "data contains the created employment"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /positions/{positionID}/register [post]
func (c *EmploymentController) Register(w http.ResponseWriter, r *http.Request) {
	positionID := r.PathValue("positionID")
	if positionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing positionID")
		return
	}
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	employment, err := c.Service.Register(r.Context(), requester.ID, positionID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, employment)
}

// Assign godoc
// @Summary Assign a user to a job position
// @Description Creates an accepted employment directly. The requester must be the event owner, a manager, or an admin. Fails with 409 when the event has ended, the user is already registered, or the position is full.
// @Tags employments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param positionID path string true "Position ID"
// @Param body body AssignRequest true "User to assign"
// @Success 201 {object} helpers.APIResponse "data contains the created employment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /positions/{positionID}/assign [post]
func (c *EmploymentController) Assign(w http.ResponseWriter, r *http.Request) {
	positionID := r.PathValue("positionID")
	if positionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing positionID")
		return
	}
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req AssignRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	employment, err := c.Service.Assign(r.Context(), requester, req.UserID, positionID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, employment)
}

// GetByID godoc
// @Summary Get an employment by ID
// @Tags employments
// @Produce json
// @Security BearerAuth
// @Param employmentID path string true "Employment ID"
// @Success 200 {object} helpers.APIResponse "data contains the employment"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /employments/{employmentID} [get]
func (c *EmploymentController) GetByID(w http.ResponseWriter, r *http.Request) {
	employmentID := r.PathValue("employmentID")
	if employmentID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing employmentID")
		return
	}
	employment, err := c.Service.GetByID(r.Context(), employmentID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, employment)
}

// ListByPosition godoc
// @Summary List a position's employments
// @Tags employments
// @Produce json
// @Security BearerAuth
// @Param positionID path string true "Position ID"
// @Param state query string false "Filter by state"
// @Success 200 {object} helpers.APIResponse "data contains a list of employments"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /positions/{positionID}/employments [get]
func (c *EmploymentController) ListByPosition(w http.ResponseWriter, r *http.Request) {
	positionID := r.PathValue("positionID")
	if positionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing positionID")
		return
	}
	filter := domain.EmploymentFilter{PositionID: &positionID}
	if v := r.URL.Query().Get("state"); v != "" {
		state := domain.EmploymentState(strings.ToLower(v))
		if !state.Valid() {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid state filter")
			return
		}
		filter.State = &state
	}
	employments, err := c.Service.List(r.Context(), filter)
	if err != nil {
		c.logInternal(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, employments)
}

// ListMine godoc
// @Summary List the authenticated user's employments
// @Tags employments
// @Produce json
// @Security BearerAuth
// @Param state query string false "Filter by state"
// @Success 200 {object} helpers.APIResponse "data contains a list of employments"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/employments [get]
func (c *EmploymentController) ListMine(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	filter := domain.EmploymentFilter{UserID: &requester.ID}
	if v := r.URL.Query().Get("state"); v != "" {
		state := domain.EmploymentState(strings.ToLower(v))
		if !state.Valid() {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid state filter")
			return
		}
		filter.State = &state
	}
	employments, err := c.Service.List(r.Context(), filter)
	if err != nil {
		c.logInternal(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, employments)
}

// ChangeState godoc
// @Summary Change an employment's state
// @Description Applies a declared transition (pending to accepted, pending to rejected, accepted to done). Undeclared transitions fail with 422. Accepting into a full position fails with 409.
// @Tags employments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employmentID path string true "Employment ID"
// @Param body body ChangeStateRequest true "Target state"
// @Success 200 {object} helpers.APIResponse "data contains the updated employment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (position full)"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_state"
// @Router /employments/{employmentID}/state [patch]
func (c *EmploymentController) ChangeState(w http.ResponseWriter, r *http.Request) {
	employmentID := r.PathValue("employmentID")
	if employmentID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing employmentID")
		return
	}
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req ChangeStateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	state := domain.EmploymentState(strings.ToLower(req.State))
	employment, err := c.Service.ChangeState(r.Context(), requester, employmentID, state)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, employment)
}

// SetRating godoc
// @Summary Rate a worker's employment
// @Description Sets the rating (0 to 5) regardless of the employment's state. The requester must manage the position's event.
// @Tags employments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employmentID path string true "Employment ID"
// @Param body body SetRatingRequest true "Rating"
// @Success 200 {object} helpers.APIResponse "data contains the updated employment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /employments/{employmentID}/rating [patch]
func (c *EmploymentController) SetRating(w http.ResponseWriter, r *http.Request) {
	employmentID := r.PathValue("employmentID")
	if employmentID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing employmentID")
		return
	}
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SetRatingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	employment, err := c.Service.SetRating(r.Context(), requester, employmentID, req.Rating)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, employment)
}

// Delete godoc
// @Summary Delete an employment
// @Description Removes the employment regardless of its state. The requester must manage the position's event.
// @Tags employments
// @Produce json
// @Security BearerAuth
// @Param employmentID path string true "Employment ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /employments/{employmentID} [delete]
func (c *EmploymentController) Delete(w http.ResponseWriter, r *http.Request) {
	employmentID := r.PathValue("employmentID")
	if employmentID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing employmentID")
		return
	}
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), requester, employmentID); err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
