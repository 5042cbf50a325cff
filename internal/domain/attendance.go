package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for the attendance ledger.
var (
	// ErrEmploymentNotAccepted is returned when logging hours against an
	// employment that is not in the accepted state.
	ErrEmploymentNotAccepted = errors.New("employment is in the wrong state for logging hours")
	// ErrOutsideEventWindow is returned when the logged date falls outside
	// the owning event's date window.
	ErrOutsideEventWindow = errors.New("date is outside the event's date window")
	// ErrDuplicateDay is returned when an entry already exists for the
	// (employment, date) pair.
	ErrDuplicateDay = errors.New("hours already logged for this day")
)

// Worked-hours bounds for a single day.
const (
	MinHoursWorked = 1.0
	MaxHoursWorked = 24.0
)

// WorkedHours is a single day's logged attendance entry tied to one
// accepted employment. At most one row exists per (employment, date).
// swagger:model WorkedHours
type WorkedHours struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	HoursWorked  float64   `json:"hours_worked"`
	EmploymentID string    `json:"employment_id"`
}

// LedgerDay is one calendar day of an employment's attendance ledger.
// Entry is nil for days with no logged hours.
type LedgerDay struct {
	Date  time.Time    `json:"date"`
	Entry *WorkedHours `json:"entry"`
}

// WorkedHoursRepository defines the interface for attendance storage.
type WorkedHoursRepository interface {
	// Create inserts the entry. A duplicate (employment, date) pair fails
	// with ErrDuplicateDay.
	Create(ctx context.Context, hours *WorkedHours) error
	GetByID(ctx context.Context, id string) (*WorkedHours, error)
	GetByEmploymentAndDate(ctx context.Context, employmentID string, date time.Time) (*WorkedHours, error)
	ListByEmploymentID(ctx context.Context, employmentID string) ([]*WorkedHours, error)
	// UpdateHours overwrites the entry's hours; date and employment are
	// never changed by an update.
	UpdateHours(ctx context.Context, id string, hoursWorked float64) (*WorkedHours, error)
	Delete(ctx context.Context, id string) error
}

// AttendanceService is the date-scoped attendance ledger.
type AttendanceService interface {
	// LogHours creates an entry for the day, or overwrites an existing
	// entry's hours when existingID is non-nil. The employment must be
	// accepted and the date inside the owning event's window.
	LogHours(ctx context.Context, requester *User, employmentID string, date time.Time, hoursWorked float64, existingID *string) (*WorkedHours, error)
	// Ledger returns one LedgerDay per calendar day of the owning event's
	// inclusive window, in date order, with nil entries for unlogged days.
	Ledger(ctx context.Context, employmentID string) ([]LedgerDay, error)
}
