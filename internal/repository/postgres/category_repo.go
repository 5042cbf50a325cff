package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventstaffing/internal/domain"
)

type positionCategoryRepository struct {
	DB *sql.DB
}

func NewPositionCategoryRepository(db *sql.DB) domain.PositionCategoryRepository {
	return &positionCategoryRepository{
		DB: db,
	}
}

func (r *positionCategoryRepository) Create(ctx context.Context, c *domain.PositionCategory) error {
	query := `
		INSERT INTO position_categories (name, color, icon)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, c.Name, c.Color, c.Icon).Scan(&c.ID)
}

func (r *positionCategoryRepository) GetByID(ctx context.Context, id string) (*domain.PositionCategory, error) {
	query := `SELECT id, name, color, icon FROM position_categories WHERE id = $1`
	c := &domain.PositionCategory{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Color, &c.Icon)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *positionCategoryRepository) List(ctx context.Context) ([]*domain.PositionCategory, error) {
	query := `SELECT id, name, color, icon FROM position_categories ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := make([]*domain.PositionCategory, 0)
	for rows.Next() {
		c := &domain.PositionCategory{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *positionCategoryRepository) Update(ctx context.Context, c *domain.PositionCategory) error {
	query := `UPDATE position_categories SET name = $2, color = $3, icon = $4 WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Color, c.Icon)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *positionCategoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM position_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
