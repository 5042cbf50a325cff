package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventstaffing/internal/delivery/http/controllers"
	"eventstaffing/internal/delivery/http/middleware"
	"eventstaffing/internal/domain"
)

// Controllers bundles the HTTP controllers wired by NewRouter.
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Venue      *controllers.VenueController
	Category   *controllers.CategoryController
	Event      *controllers.EventController
	Position   *controllers.PositionController
	Employment *controllers.EmploymentController
	Attendance *controllers.AttendanceController
}

// NewRouter initializes the HTTP router with all application routes.
// Everything except signup, login, and the swagger UI requires a Bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, users domain.UserRepository) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, users)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Users
	mux.HandleFunc("GET /users/me", auth(c.User.Me))
	mux.HandleFunc("GET /users/me/employments", auth(c.Employment.ListMine))
	mux.HandleFunc("GET /users/me/worked-events", auth(c.Event.ListWorked))
	mux.HandleFunc("GET /users/me/worked-events/{eventID}/positions", auth(c.Position.ListWorkedByMe))
	mux.HandleFunc("GET /users/me/managed-events", auth(c.Event.ListManaged))
	mux.HandleFunc("GET /users", auth(c.User.List))
	mux.HandleFunc("GET /users/{userID}", auth(c.User.GetByID))
	mux.HandleFunc("PATCH /users/{userID}", auth(c.User.Update))
	mux.HandleFunc("DELETE /users/{userID}", auth(c.User.Delete))

	// Venues
	mux.HandleFunc("POST /venues", auth(c.Venue.Create))
	mux.HandleFunc("GET /venues", auth(c.Venue.List))
	mux.HandleFunc("GET /venues/{venueID}", auth(c.Venue.GetByID))
	mux.HandleFunc("PUT /venues/{venueID}", auth(c.Venue.Update))
	mux.HandleFunc("DELETE /venues/{venueID}", auth(c.Venue.Delete))

	// Position categories
	mux.HandleFunc("POST /position-categories", auth(c.Category.Create))
	mux.HandleFunc("GET /position-categories", auth(c.Category.List))
	mux.HandleFunc("GET /position-categories/{categoryID}", auth(c.Category.GetByID))
	mux.HandleFunc("PUT /position-categories/{categoryID}", auth(c.Category.Update))
	mux.HandleFunc("DELETE /position-categories/{categoryID}", auth(c.Category.Delete))

	// Events
	mux.HandleFunc("POST /events", auth(c.Event.Create))
	mux.HandleFunc("GET /events", auth(c.Event.List))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetByID))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Event.Update))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.Delete))
	mux.HandleFunc("POST /events/{eventID}/managers", auth(c.Event.AddManager))
	mux.HandleFunc("GET /events/{eventID}/managers", auth(c.Event.ListManagers))
	mux.HandleFunc("DELETE /events/{eventID}/managers/{userID}", auth(c.Event.RemoveManager))

	// Job positions
	mux.HandleFunc("POST /events/{eventID}/positions", auth(c.Position.Create))
	mux.HandleFunc("GET /events/{eventID}/positions", auth(c.Position.ListByEvent))
	mux.HandleFunc("GET /positions/{positionID}", auth(c.Position.GetByID))
	mux.HandleFunc("GET /positions/{positionID}/occupancy", auth(c.Position.Occupancy))
	mux.HandleFunc("PATCH /positions/{positionID}", auth(c.Position.Update))
	mux.HandleFunc("DELETE /positions/{positionID}", auth(c.Position.Delete))

	// Employments
	mux.HandleFunc("POST /positions/{positionID}/register", auth(c.Employment.Register))
	mux.HandleFunc("POST /positions/{positionID}/assign", auth(c.Employment.Assign))
	mux.HandleFunc("GET /positions/{positionID}/employments", auth(c.Employment.ListByPosition))
	mux.HandleFunc("GET /employments/{employmentID}", auth(c.Employment.GetByID))
	mux.HandleFunc("PATCH /employments/{employmentID}/state", auth(c.Employment.ChangeState))
	mux.HandleFunc("PATCH /employments/{employmentID}/rating", auth(c.Employment.SetRating))
	mux.HandleFunc("DELETE /employments/{employmentID}", auth(c.Employment.Delete))

	// Attendance
	mux.HandleFunc("POST /employments/{employmentID}/worked-hours", auth(c.Attendance.LogHours))
	mux.HandleFunc("GET /employments/{employmentID}/worked-hours", auth(c.Attendance.Ledger))
	mux.HandleFunc("PUT /employments/{employmentID}/worked-hours/{entryID}", auth(c.Attendance.UpdateHours))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
