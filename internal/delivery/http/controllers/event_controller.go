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

// CreateEventRequest is the request body for POST /events. Dates are
// calendar days in YYYY-MM-DD form.
type CreateEventRequest struct {
	Name        string `json:"name"`
	DateStart   string `json:"date_start"`
	DateEnd     string `json:"date_end"`
	ImgURL      string `json:"img_url"`
	Description string `json:"description"`
	IsDraft     bool   `json:"is_draft"`
	VenueID     string `json:"venue_id"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.DateStart == "" {
		errs = append(errs, "date_start is required")
	} else if _, err := helpers.ParseDate(c.DateStart); err != nil {
		errs = append(errs, "date_start must be a YYYY-MM-DD date")
	}
	if c.DateEnd == "" {
		errs = append(errs, "date_end is required")
	} else if _, err := helpers.ParseDate(c.DateEnd); err != nil {
		errs = append(errs, "date_end must be a YYYY-MM-DD date")
	}
	if c.VenueID == "" {
		errs = append(errs, "venue_id is required")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All
// fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Name        *string `json:"name"`
	DateStart   *string `json:"date_start"`
	DateEnd     *string `json:"date_end"`
	ImgURL      *string `json:"img_url"`
	Description *string `json:"description"`
	IsDraft     *bool   `json:"is_draft"`
	VenueID     *string `json:"venue_id"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if u.DateStart != nil {
		if _, err := helpers.ParseDate(*u.DateStart); err != nil {
			errs = append(errs, "date_start must be a YYYY-MM-DD date")
		}
	}
	if u.DateEnd != nil {
		if _, err := helpers.ParseDate(*u.DateEnd); err != nil {
			errs = append(errs, "date_end must be a YYYY-MM-DD date")
		}
	}
	return errs
}

// AddManagerRequest is the request body for POST /events/{eventID}/managers.
type AddManagerRequest struct {
	UserID string `json:"user_id"`
}

// Validate implements Validator.
func (a AddManagerRequest) Validate() []string {
	if a.UserID == "" {
		return []string{"user_id is required"}
	}
	return nil
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

func (c *EventController) logInternal(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}

// Create godoc
// @Summary Create an event
// @Description Creates a staffed event. The authenticated user becomes the event owner. Dates are inclusive calendar days.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireOrganizer(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	dateStart, _ := helpers.ParseDate(req.DateStart)
	dateEnd, _ := helpers.ParseDate(req.DateEnd)
	event := &domain.Event{
		Name:        strings.TrimSpace(req.Name),
		DateStart:   dateStart,
		DateEnd:     dateEnd,
		ImgURL:      req.ImgURL,
		Description: req.Description,
		IsDraft:     req.IsDraft,
		VenueID:     req.VenueID,
	}
	if err := c.Service.CreateEvent(r.Context(), requester, event); err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetByID godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// List godoc
// @Summary List events
// @Description Lists events, optionally filtered by owner, venue, or draft status.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param owner_id query string false "Filter by owner"
// @Param venue_id query string false "Filter by venue"
// @Param is_draft query bool false "Filter by draft status"
// @Success 200 {object} helpers.APIResponse "data contains a list of events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.EventFilter
	if v := r.URL.Query().Get("owner_id"); v != "" {
		filter.OwnerID = &v
	}
	if v := r.URL.Query().Get("venue_id"); v != "" {
		filter.VenueID = &v
	}
	if v := r.URL.Query().Get("is_draft"); v != "" {
		isDraft, err := strconv.ParseBool(v)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "is_draft must be a boolean")
			return
		}
		filter.IsDraft = &isDraft
	}
	events, err := c.Service.ListEvents(r.Context(), filter)
	if err != nil {
		c.logInternal(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListWorked godoc
// @Summary List events the authenticated user has worked on
// @Description Returns events where the user holds an accepted or done employment.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains a list of events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/worked-events [get]
func (c *EventController) ListWorked(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListEventsWorkedByUser(r.Context(), requester.ID)
	if err != nil {
		c.logInternal(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListManaged godoc
// @Summary List events the authenticated user manages
// @Description Returns events where the user holds a manager relation. Owned events are listed via GET /events?owner_id=.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains a list of events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/managed-events [get]
func (c *EventController) ListManaged(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListEventsManagedByUser(r.Context(), requester.ID)
	if err != nil {
		c.logInternal(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Update godoc
// @Summary Update an event
// @Description Applies a partial update. Only the owner, a manager, or an admin can update.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
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
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	patch := domain.EventPatch{
		Name:        req.Name,
		ImgURL:      req.ImgURL,
		Description: req.Description,
		IsDraft:     req.IsDraft,
		VenueID:     req.VenueID,
	}
	if req.DateStart != nil {
		d, _ := helpers.ParseDate(*req.DateStart)
		patch.DateStart = &d
	}
	if req.DateEnd != nil {
		d, _ := helpers.ParseDate(*req.DateEnd)
		patch.DateEnd = &d
	}
	event, err := c.Service.UpdateEvent(r.Context(), requester, eventID, patch)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Only the owner, a manager, or an admin can delete.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.DeleteEvent(r.Context(), requester, eventID); err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddManager godoc
// @Summary Grant a user management rights on an event
// @Description Only the owner, an existing manager, or an admin can grant. Duplicate grants respond with 409.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body AddManagerRequest true "User to grant"
// @Success 201 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already a manager)"
// @Router /events/{eventID}/managers [post]
func (c *EventController) AddManager(w http.ResponseWriter, r *http.Request) {
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
	var req AddManagerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.AddManager(r.Context(), requester, eventID, req.UserID); err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, map[string]string{"status": "manager added"})
}

// RemoveManager godoc
// @Summary Revoke a user's management rights on an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/managers/{userID} [delete]
func (c *EventController) RemoveManager(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	userID := r.PathValue("userID")
	if eventID == "" || userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or userID")
		return
	}
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RemoveManager(r.Context(), requester, eventID, userID); err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "manager removed"})
}

// ListManagers godoc
// @Summary List an event's managers
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains a list of users"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/managers [get]
func (c *EventController) ListManagers(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	managers, err := c.Service.ListManagers(r.Context(), eventID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, managers)
}
