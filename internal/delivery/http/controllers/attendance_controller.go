package controllers

import (
	"log/slog"
	"net/http"

	"eventstaffing/internal/delivery/http/helpers"
	"eventstaffing/internal/delivery/http/middleware"
	"eventstaffing/internal/domain"
)

// LogHoursRequest is the request body for POST /employments/{employmentID}/worked-hours.
type LogHoursRequest struct {
	Date        string  `json:"date"`
	HoursWorked float64 `json:"hours_worked"`
}

// Validate implements Validator.
func (l LogHoursRequest) Validate() []string {
	var errs []string
	if l.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := helpers.ParseDate(l.Date); err != nil {
		errs = append(errs, "date must be a YYYY-MM-DD date")
	}
	if l.HoursWorked < domain.MinHoursWorked || l.HoursWorked > domain.MaxHoursWorked {
		errs = append(errs, "hours_worked must be between 1 and 24")
	}
	return errs
}

// UpdateHoursRequest is the request body for PUT /employments/{employmentID}/worked-hours/{entryID}.
// Only the hours can change; the entry's date is fixed.
type UpdateHoursRequest struct {
	HoursWorked float64 `json:"hours_worked"`
}

// Validate implements Validator.
func (u UpdateHoursRequest) Validate() []string {
	if u.HoursWorked < domain.MinHoursWorked || u.HoursWorked > domain.MaxHoursWorked {
		return []string{"hours_worked must be between 1 and 24"}
	}
	return nil
}

type AttendanceController struct {
	Logger          *slog.Logger
	Service         domain.AttendanceService
	WorkedHoursRepo domain.WorkedHoursRepository
}

func NewAttendanceController(logger *slog.Logger, svc domain.AttendanceService, repo domain.WorkedHoursRepository) *AttendanceController {
	return &AttendanceController{Logger: logger, Service: svc, WorkedHoursRepo: repo}
}

func (c *AttendanceController) logInternal(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}

// LogHours godoc
// @Summary Log hours worked on a day
// @Description Creates an attendance entry for the day. Only the worker who owns the accepted employment can log, the date must fall inside the event's window, and each day can be logged once.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employmentID path string true "Employment ID"
// @Param body body LogHoursRequest true "Day and hours"
// @Success 201 {object} helpers.APIResponse "data contains the created entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (hours bounds, outside event window)"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (day already logged)"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_state (employment not accepted)"
// @Router /employments/{employmentID}/worked-hours [post]
func (c *AttendanceController) LogHours(w http.ResponseWriter, r *http.Request) {
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
	var req LogHoursRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	date, _ := helpers.ParseDate(req.Date)
	entry, err := c.Service.LogHours(r.Context(), requester, employmentID, date, req.HoursWorked, nil)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, entry)
}

// UpdateHours godoc
// @Summary Overwrite the hours of a logged day
// @Description Replaces the hours of an existing entry. The entry's date and employment are unchanged. Same ownership, state, and window rules as logging apply.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employmentID path string true "Employment ID"
// @Param entryID path string true "Worked hours entry ID"
// @Param body body UpdateHoursRequest true "New hours"
// @Success 200 {object} helpers.APIResponse "data contains the updated entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_state (employment not accepted)"
// @Router /employments/{employmentID}/worked-hours/{entryID} [put]
func (c *AttendanceController) UpdateHours(w http.ResponseWriter, r *http.Request) {
	employmentID := r.PathValue("employmentID")
	entryID := r.PathValue("entryID")
	if employmentID == "" || entryID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing employmentID or entryID")
		return
	}
	requester, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateHoursRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	// The entry's own date drives the window check on the update path.
	existing, err := c.WorkedHoursRepo.GetByID(r.Context(), entryID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	entry, err := c.Service.LogHours(r.Context(), requester, employmentID, existing.Date, req.HoursWorked, &entryID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entry)
}

// Ledger godoc
// @Summary Get an employment's day-by-day attendance ledger
// @Description Returns one row per calendar day of the event's inclusive window, in date order. Days without logged hours carry a null entry.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param employmentID path string true "Employment ID"
// @Success 200 {object} helpers.APIResponse "data contains the ledger days"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /employments/{employmentID}/worked-hours [get]
func (c *AttendanceController) Ledger(w http.ResponseWriter, r *http.Request) {
	employmentID := r.PathValue("employmentID")
	if employmentID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing employmentID")
		return
	}
	ledger, err := c.Service.Ledger(r.Context(), employmentID)
	if err != nil {
		if !helpers.WriteDomainError(w, err) {
			c.logInternal(r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ledger)
}
