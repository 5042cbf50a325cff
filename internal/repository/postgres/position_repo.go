package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventstaffing/internal/domain"
)

type jobPositionRepository struct {
	DB *sql.DB
}

func NewJobPositionRepository(db *sql.DB) domain.JobPositionRepository {
	return &jobPositionRepository{
		DB: db,
	}
}

const positionColumns = `id, name, description, salary, currency, capacity, instructions_html, is_opened_for_registration, event_id, position_category_id, created_at, updated_at`

func scanPosition(row interface{ Scan(...any) error }) (*domain.JobPosition, error) {
	p := &domain.JobPosition{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Salary, &p.Currency, &p.Capacity,
		&p.InstructionsHTML, &p.IsOpenedForRegistration, &p.EventID,
		&p.PositionCategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *jobPositionRepository) Create(ctx context.Context, p *domain.JobPosition) error {
	query := `
		INSERT INTO job_positions (name, description, salary, currency, capacity, instructions_html, is_opened_for_registration, event_id, position_category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Salary, string(p.Currency), p.Capacity,
		p.InstructionsHTML, p.IsOpenedForRegistration, p.EventID,
		p.PositionCategoryID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *jobPositionRepository) GetByID(ctx context.Context, id string) (*domain.JobPosition, error) {
	query := `SELECT ` + positionColumns + ` FROM job_positions WHERE id = $1`
	p, err := scanPosition(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *jobPositionRepository) List(ctx context.Context, filter domain.JobPositionFilter) ([]*domain.JobPosition, error) {
	query := `SELECT ` + positionColumns + ` FROM job_positions WHERE 1=1`
	args := []any{}
	if filter.EventID != nil {
		args = append(args, *filter.EventID)
		query += fmt.Sprintf(" AND event_id = $%d", len(args))
	}
	if filter.PositionCategoryID != nil {
		args = append(args, *filter.PositionCategoryID)
		query += fmt.Sprintf(" AND position_category_id = $%d", len(args))
	}
	if filter.IsOpenedForRegistration != nil {
		args = append(args, *filter.IsOpenedForRegistration)
		query += fmt.Sprintf(" AND is_opened_for_registration = $%d", len(args))
	}
	query += ` ORDER BY name`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	positions := make([]*domain.JobPosition, 0)
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (r *jobPositionRepository) ListWorkedByUserOnEvent(ctx context.Context, userID, eventID string) ([]*domain.JobPosition, error) {
	query := `
		SELECT p.id, p.name, p.description, p.salary, p.currency, p.capacity, p.instructions_html, p.is_opened_for_registration, p.event_id, p.position_category_id, p.created_at, p.updated_at
		FROM job_positions p
		JOIN employments em ON em.position_id = p.id
		WHERE em.user_id = $1 AND p.event_id = $2 AND em.state IN ('accepted', 'done')
		ORDER BY p.name
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	positions := make([]*domain.JobPosition, 0)
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (r *jobPositionRepository) Update(ctx context.Context, id string, patch domain.JobPositionPatch) (*domain.JobPosition, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Salary != nil {
		add("salary", *patch.Salary)
	}
	if patch.Currency != nil {
		add("currency", string(*patch.Currency))
	}
	if patch.Capacity != nil {
		add("capacity", *patch.Capacity)
	}
	if patch.InstructionsHTML != nil {
		add("instructions_html", *patch.InstructionsHTML)
	}
	if patch.IsOpenedForRegistration != nil {
		add("is_opened_for_registration", *patch.IsOpenedForRegistration)
	}
	if patch.PositionCategoryID != nil {
		add("position_category_id", *patch.PositionCategoryID)
	}
	if len(args) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE job_positions SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), len(args), positionColumns)
	p, err := scanPosition(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *jobPositionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM job_positions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
