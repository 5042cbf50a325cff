package domain

import (
	"context"
	"time"
)

// SalaryCurrency is the currency a position's salary is paid in.
type SalaryCurrency string

const (
	CurrencyCZK SalaryCurrency = "CZK"
	CurrencyEUR SalaryCurrency = "EUR"
)

// Valid reports whether the currency is one of the supported currencies.
func (c SalaryCurrency) Valid() bool {
	return c == CurrencyCZK || c == CurrencyEUR
}

// JobPosition is a staffing slot type under an event with a fixed
// capacity. Its registration window is implicitly bounded by the owning
// event's date_end.
// swagger:model JobPosition
type JobPosition struct {
	ID                      string         `json:"id"`
	Name                    string         `json:"name"`
	Description             string         `json:"description"`
	Salary                  float64        `json:"salary"`
	Currency                SalaryCurrency `json:"currency"`
	Capacity                int            `json:"capacity"`
	InstructionsHTML        string         `json:"instructions_html"`
	IsOpenedForRegistration bool           `json:"is_opened_for_registration"`
	EventID                 string         `json:"event_id"`
	PositionCategoryID      string         `json:"position_category_id"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
}

// JobPositionFilter narrows List. Nil fields match everything.
type JobPositionFilter struct {
	EventID                 *string
	PositionCategoryID      *string
	IsOpenedForRegistration *bool
}

// JobPositionPatch carries a partial position update; nil fields are unchanged.
type JobPositionPatch struct {
	Name                    *string
	Description             *string
	Salary                  *float64
	Currency                *SalaryCurrency
	Capacity                *int
	InstructionsHTML        *string
	IsOpenedForRegistration *bool
	PositionCategoryID      *string
}

// JobPositionRepository defines the interface for position storage.
type JobPositionRepository interface {
	Create(ctx context.Context, position *JobPosition) error
	GetByID(ctx context.Context, id string) (*JobPosition, error)
	List(ctx context.Context, filter JobPositionFilter) ([]*JobPosition, error)
	// ListWorkedByUserOnEvent returns the event's positions the user holds
	// an accepted or done employment on.
	ListWorkedByUserOnEvent(ctx context.Context, userID, eventID string) ([]*JobPosition, error)
	Update(ctx context.Context, id string, patch JobPositionPatch) (*JobPosition, error)
	Delete(ctx context.Context, id string) error
}

// JobPositionService defines position CRUD. Mutations are gated by the
// Authorizer against the position's parent event.
type JobPositionService interface {
	CreatePosition(ctx context.Context, requester *User, position *JobPosition) error
	GetPositionByID(ctx context.Context, positionID string) (*JobPosition, error)
	// GetPositionOccupancy reports how many slots the position has filled
	// (accepted or done employments) against its capacity.
	GetPositionOccupancy(ctx context.Context, positionID string) (*PositionOccupancy, error)
	ListPositions(ctx context.Context, filter JobPositionFilter) ([]*JobPosition, error)
	// ListPositionsWorkedByUser returns the event's positions the user holds
	// an accepted or done employment on.
	ListPositionsWorkedByUser(ctx context.Context, userID, eventID string) ([]*JobPosition, error)
	UpdatePosition(ctx context.Context, requester *User, positionID string, patch JobPositionPatch) (*JobPosition, error)
	DeletePosition(ctx context.Context, requester *User, positionID string) error
}

// PositionOccupancy is a position's filled slot count against its capacity.
type PositionOccupancy struct {
	PositionID string `json:"position_id"`
	Occupied   int    `json:"occupied"`
	Capacity   int    `json:"capacity"`
}
