package domain

import (
	"context"
	"errors"
)

// ErrAlreadyManager is returned when adding a user who already manages the event.
var ErrAlreadyManager = errors.New("already a manager of this event")

// EventManagerRelation grants a user management authority over an event,
// distinct from ownership. Existence is the whole state.
// swagger:model EventManagerRelation
type EventManagerRelation struct {
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
}

// EventManagerRepository defines the interface for manager relation storage.
type EventManagerRepository interface {
	Add(ctx context.Context, eventID, userID string) error
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	ListByEventID(ctx context.Context, eventID string) ([]*EventManagerRelation, error)
	ListByUserID(ctx context.Context, userID string) ([]*EventManagerRelation, error)
	Remove(ctx context.Context, eventID, userID string) error
}

// Authorizer decides whether a requester may mutate an event's
// sub-resources. The predicate is pure and evaluated fresh on every
// mutating request; relations can change between requests.
type Authorizer interface {
	// CanManageEvent reports whether the user is an admin, the event's
	// owner, or holds a manager relation on the event.
	CanManageEvent(ctx context.Context, user *User, event *Event) (bool, error)
}
