package domain

import (
	"context"
	"errors"
	"time"
)

// ErrEventEnded is returned when creating a position or registration under
// an event whose date_end has passed.
var ErrEventEnded = errors.New("event has already ended")

// Event is a scheduled occurrence with a date window, owned by an
// organizer, hosting job positions. DateStart and DateEnd are calendar
// dates (midnight UTC), DateStart <= DateEnd.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DateStart   time.Time `json:"date_start"`
	DateEnd     time.Time `json:"date_end"`
	ImgURL      string    `json:"img_url"`
	Description string    `json:"description"`
	IsDraft     bool      `json:"is_draft"`
	VenueID     string    `json:"venue_id"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ended reports whether the event's window is entirely before the given day.
func (e *Event) Ended(today time.Time) bool {
	return Day(e.DateEnd).Before(Day(today))
}

// InWindow reports whether the given calendar day falls inside the event's
// inclusive [DateStart, DateEnd] window.
func (e *Event) InWindow(date time.Time) bool {
	d := Day(date)
	return !d.Before(Day(e.DateStart)) && !d.After(Day(e.DateEnd))
}

// EventFilter narrows List. Nil fields match everything.
type EventFilter struct {
	OwnerID  *string
	VenueID  *string
	IsDraft  *bool
	DateFrom *time.Time
	DateTo   *time.Time
}

// EventPatch carries a partial event update; nil fields are unchanged.
type EventPatch struct {
	Name        *string
	DateStart   *time.Time
	DateEnd     *time.Time
	ImgURL      *string
	Description *string
	IsDraft     *bool
	VenueID     *string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	// ListWorkedByUser returns events hosting a position the user holds an
	// accepted or done employment on.
	ListWorkedByUser(ctx context.Context, userID string) ([]*Event, error)
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines event CRUD and manager edits. Every mutation is
// gated by the Authorizer; requester is the authenticated user.
type EventService interface {
	CreateEvent(ctx context.Context, requester *User, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	ListEventsWorkedByUser(ctx context.Context, userID string) ([]*Event, error)
	// ListEventsManagedByUser returns events the user holds a manager
	// relation on. Owned events are not included.
	ListEventsManagedByUser(ctx context.Context, userID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, requester *User, eventID string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, requester *User, eventID string) error

	AddManager(ctx context.Context, requester *User, eventID, userID string) error
	RemoveManager(ctx context.Context, requester *User, eventID, userID string) error
	ListManagers(ctx context.Context, eventID string) ([]*User, error)
}
