package domain

import "context"

// PositionCategory groups job positions (e.g. bar staff, security).
// swagger:model PositionCategory
type PositionCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// PositionCategoryRepository defines the interface for category storage.
type PositionCategoryRepository interface {
	Create(ctx context.Context, category *PositionCategory) error
	GetByID(ctx context.Context, id string) (*PositionCategory, error)
	List(ctx context.Context) ([]*PositionCategory, error)
	Update(ctx context.Context, category *PositionCategory) error
	Delete(ctx context.Context, id string) error
}
