package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"eventstaffing/internal/delivery/http/helpers"
	"eventstaffing/internal/delivery/http/middleware"
	"eventstaffing/internal/domain"
)

// CreatePositionRequest is the request body for POST /events/{eventID}/positions.
type CreatePositionRequest struct {
	Name                    string  `json:"name"`
	Description             string  `json:"description"`
	Salary                  float64 `json:"salary"`
	Currency                string  `json:"currency"`
	Capacity                int     `json:"capacity"`
	InstructionsHTML        string  `json:"instructions_html"`
	IsOpenedForRegistration bool    `json:"is_opened_for_registration"`
	PositionCategoryID      string  `json:"position_category_id"`
}

// Validate implements Validator.
func (c CreatePositionRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Salary < 0 {
		errs = append(errs, "salary must not be negative")
	}
	if !domain.SalaryCurrency(strings.ToUpper(c.Currency)).Valid() {
		errs = append(errs, "currency must be \"CZK\" or \"EUR\"")
	}
	if c.Capacity < 1 {
		errs = append(errs, "capacity must be at least 1")
	}
	if c.PositionCategoryID == "" {
		errs = append(errs, "position_category_id is required")
	}
	return errs
}

// UpdatePositionRequest is the request body for PATCH /positions/{positionID}.
// All fields optional; omitted fields are unchanged.
type UpdatePositionRequest struct {
	Name                    *string  `json:"name"`
	Description             *string  `json:"description"`
	Salary                  *float64 `json:"salary"`
	Currency                *string  `json:"currency"`
	Capacity                *int     `json:"capacity"`
	InstructionsHTML        *string  `json:"instructions_html"`
	IsOpenedForRegistration *bool    `json:"is_opened_for_registration"`
	PositionCategoryID      *string  `json:"position_category_id"`
}

// Validate implements Validator.
func (u UpdatePositionRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if u.Currency != nil && !domain.SalaryCurrency(strings.ToUpper(*u.Currency)).Valid() {
		errs = append(errs, "currency must be \"CZK\" or \"EUR\"")
	}
	return errs
}

type PositionController struct {
	Logger  *slog.Logger
	Service domain.JobPositionService
}

func NewPositionController(logger *slog.Logger, svc domain.JobPositionService) *PositionController {
	return &PositionController{Logger: logger, Service: svc}
}

func (c *PositionController) logInternal(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}

// Create godoc
// @Summary Create a job position on an event
// @Description Only the event owner, a manager, or an admin can create positions. Fails with 409 when the event has already ended.
// @Tags positions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CreatePositionRequest true "Position data"
// @Success 201 {object} helpers.APIResponse "data contains the created position"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event ended)"
// @Router /events/{eventID}/positions [post]
func (c *PositionController) Create(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreatePositionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	position := &domain.JobPosition{
		Name:                    strings.TrimSpace(req.Name),
		Description:             req.Description,
		Salary:                  req.Salary,
		Currency:                domain.SalaryCurrency(strings.ToUpper(req.Currency)),
		Capacity:                req.Capacity,
		InstructionsHTML:        req.InstructionsHTML,
		IsOpenedForRegistration: req.IsOpenedForRegistration,
		EventID:                 eventID,
		PositionCategoryID:      req.PositionCategoryID,
	}
	if err := c.Service.CreatePosition(r.Context(), requester, position); err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, position)
}

// GetByID godoc
// @Summary Get a job position by ID
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param positionID path string true "Position ID"
// @Success 200 {object} helpers.APIResponse "data contains the position"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /positions/{positionID} [get]
func (c *PositionController) GetByID(w http.ResponseWriter, r *http.Request) {
	positionID := r.PathValue("positionID")
	if positionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing positionID")
		return
	}
	position, err := c.Service.GetPositionByID(r.Context(), positionID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, position)
}

// Occupancy godoc
// @Summary Get a position's slot occupancy
// @Description Returns how many slots are filled (accepted or done employments) against the position's capacity.
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param positionID path string true "Position ID"
// @Success 200 {object} helpers.APIResponse "data contains occupied and capacity counts"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /positions/{positionID}/occupancy [get]
func (c *PositionController) Occupancy(w http.ResponseWriter, r *http.Request) {
	positionID := r.PathValue("positionID")
	if positionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing positionID")
		return
	}
	occupancy, err := c.Service.GetPositionOccupancy(r.Context(), positionID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, occupancy)
}

// ListWorkedByMe godoc
// @Summary List the event's positions the authenticated user worked
// @Description Returns the positions on the event where the user holds an accepted or done employment.
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains a list of positions"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/me/worked-events/{eventID}/positions [get]
func (c *PositionController) ListWorkedByMe(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	positions, err := c.Service.ListPositionsWorkedByUser(r.Context(), requester.ID, eventID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, positions)
}

// ListByEvent godoc
// @Summary List an event's job positions
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param is_opened_for_registration query bool false "Filter by registration status"
// @Success 200 {object} helpers.APIResponse "data contains a list of positions"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/positions [get]
func (c *PositionController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	filter := domain.JobPositionFilter{EventID: &eventID}
	if v := r.URL.Query().Get("is_opened_for_registration"); v != "" {
		open, err := strconv.ParseBool(v)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "is_opened_for_registration must be a boolean")
			return
		}
		filter.IsOpenedForRegistration = &open
	}
	positions, err := c.Service.ListPositions(r.Context(), filter)
	if err != nil {
		c.logInternal(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, positions)
}

// Update godoc
// @Summary Update a job position
// @Description Applies a partial update. Only the event owner, a manager, or an admin can update.
// @Tags positions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param positionID path string true "Position ID"
// @Param body body UpdatePositionRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated position"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /positions/{positionID} [patch]
func (c *PositionController) Update(w http.ResponseWriter, r *http.Request) {
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
	var req UpdatePositionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	patch := domain.JobPositionPatch{
		Name:                    req.Name,
		Description:             req.Description,
		Salary:                  req.Salary,
		Capacity:                req.Capacity,
		InstructionsHTML:        req.InstructionsHTML,
		IsOpenedForRegistration: req.IsOpenedForRegistration,
		PositionCategoryID:      req.PositionCategoryID,
	}
	if req.Currency != nil {
		currency := domain.SalaryCurrency(strings.ToUpper(*req.Currency))
		patch.Currency = &currency
	}
	position, err := c.Service.UpdatePosition(r.Context(), requester, positionID, patch)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, position)
}

// Delete godoc
// @Summary Delete a job position
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param positionID path string true "Position ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /positions/{positionID} [delete]
func (c *PositionController) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.DeletePosition(r.Context(), requester, positionID); err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
