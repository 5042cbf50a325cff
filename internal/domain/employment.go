package domain

import (
	"context"
	"errors"
)

// Sentinel errors for the employment state machine.
var (
	// ErrAlreadyRegistered is returned when an employment already exists
	// for the (user, position) pair.
	ErrAlreadyRegistered = errors.New("user is already registered for this position")
	// ErrPositionFull is returned when an accepted employment would exceed
	// the position's capacity.
	ErrPositionFull = errors.New("job position is already full")
	// ErrIllegalTransition is returned when a state change is not in the
	// declared transition table.
	ErrIllegalTransition = errors.New("illegal employment state transition")
)

// EmploymentState is an employment's lifecycle state.
type EmploymentState string

const (
	EmploymentPending  EmploymentState = "pending"
	EmploymentAccepted EmploymentState = "accepted"
	EmploymentRejected EmploymentState = "rejected"
	EmploymentDone     EmploymentState = "done"
)

// Valid reports whether the state is one of the declared states.
func (s EmploymentState) Valid() bool {
	switch s {
	case EmploymentPending, EmploymentAccepted, EmploymentRejected, EmploymentDone:
		return true
	}
	return false
}

// OccupiesSlot reports whether the state counts against the position's
// capacity ceiling.
func (s EmploymentState) OccupiesSlot() bool {
	return s == EmploymentAccepted || s == EmploymentDone
}

// CanTransition is the transition table: pending -> accepted,
// pending -> rejected, accepted -> done. Rejected and done are terminal.
func (s EmploymentState) CanTransition(to EmploymentState) bool {
	switch s {
	case EmploymentPending:
		return to == EmploymentAccepted || to == EmploymentRejected
	case EmploymentAccepted:
		return to == EmploymentDone
	}
	return false
}

// Rating bounds for an employment.
const (
	MinRating = 0
	MaxRating = 5
)

// Employment is a worker's registration against a job position. At most
// one employment exists per (user, position) pair.
// swagger:model Employment
type Employment struct {
	ID         string          `json:"id"`
	Rating     int             `json:"rating"`
	State      EmploymentState `json:"state"`
	UserID     string          `json:"user_id"`
	PositionID string          `json:"position_id"`
}

// EmploymentFilter narrows List. Nil fields match everything.
type EmploymentFilter struct {
	PositionID *string
	UserID     *string
	State      *EmploymentState
	Rating     *int
}

// EmploymentRepository defines the interface for employment storage. The
// write operations are single atomic statements so the capacity ceiling
// and the (user, position) uniqueness hold under concurrent writers.
type EmploymentRepository interface {
	// Create inserts the employment. When the state occupies a slot the
	// insert is guarded by the position's capacity and fails with
	// ErrPositionFull when the ceiling is reached. A duplicate
	// (user, position) pair fails with ErrAlreadyRegistered.
	Create(ctx context.Context, employment *Employment) error
	GetByID(ctx context.Context, id string) (*Employment, error)
	GetByUserAndPosition(ctx context.Context, userID, positionID string) (*Employment, error)
	List(ctx context.Context, filter EmploymentFilter) ([]*Employment, error)
	// CountOccupying returns how many employments on the position are in a
	// slot-occupying state (accepted or done).
	CountOccupying(ctx context.Context, positionID string) (int, error)
	// SetState updates the state only. Accept guards the update with the
	// position's capacity and fails with ErrPositionFull when the row
	// would exceed it.
	SetState(ctx context.Context, id string, state EmploymentState) (*Employment, error)
	// SetRating updates the rating only.
	SetRating(ctx context.Context, id string, rating int) (*Employment, error)
	Delete(ctx context.Context, id string) error
}

// EmploymentService is the registration state machine: capacity-gated
// creation, the declared transition table, rating updates, and
// unconditional deletion.
type EmploymentService interface {
	// Register creates a pending self-registration for the position.
	Register(ctx context.Context, userID, positionID string) (*Employment, error)
	// Assign creates an accepted employment directly (organizer-initiated);
	// the requester must manage the position's event.
	Assign(ctx context.Context, requester *User, userID, positionID string) (*Employment, error)
	GetByID(ctx context.Context, id string) (*Employment, error)
	List(ctx context.Context, filter EmploymentFilter) ([]*Employment, error)
	// ChangeState applies a declared transition; the requester must manage
	// the position's event. Undeclared transitions fail with
	// ErrIllegalTransition.
	ChangeState(ctx context.Context, requester *User, id string, state EmploymentState) (*Employment, error)
	// SetRating updates the rating independent of state.
	SetRating(ctx context.Context, requester *User, id string, rating int) (*Employment, error)
	// Delete removes the employment unconditionally.
	Delete(ctx context.Context, requester *User, id string) error
}
