package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventstaffing/internal/domain"
)

type employmentRepository struct {
	DB *sql.DB
}

func NewEmploymentRepository(db *sql.DB) domain.EmploymentRepository {
	return &employmentRepository{
		DB: db,
	}
}

const employmentColumns = `id, rating, state, user_id, position_id`

func scanEmployment(row interface{ Scan(...any) error }) (*domain.Employment, error) {
	e := &domain.Employment{}
	if err := row.Scan(&e.ID, &e.Rating, &e.State, &e.UserID, &e.PositionID); err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts the employment in a single statement. For slot-occupying
// states the insert only succeeds while the count of accepted/done rows on
// the position is strictly below its capacity, so the ceiling holds even
// when concurrent writers race for the last slot. The unique index on
// (user_id, position_id) backs the one-registration-per-pair invariant.
func (r *employmentRepository) Create(ctx context.Context, e *domain.Employment) error {
	var err error
	if e.State.OccupiesSlot() {
		query := `
			INSERT INTO employments (rating, state, user_id, position_id)
			SELECT $1, $2::employment_state, $3, $4
			WHERE (
				SELECT COUNT(*) FROM employments
				WHERE position_id = $4 AND state IN ('accepted', 'done')
			) < (SELECT capacity FROM job_positions WHERE id = $4)
			RETURNING id
		`
		err = r.DB.QueryRowContext(ctx, query, e.Rating, string(e.State), e.UserID, e.PositionID).Scan(&e.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrPositionFull
		}
	} else {
		query := `
			INSERT INTO employments (rating, state, user_id, position_id)
			VALUES ($1, $2::employment_state, $3, $4)
			RETURNING id
		`
		err = r.DB.QueryRowContext(ctx, query, e.Rating, string(e.State), e.UserID, e.PositionID).Scan(&e.ID)
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *employmentRepository) GetByID(ctx context.Context, id string) (*domain.Employment, error) {
	query := `SELECT ` + employmentColumns + ` FROM employments WHERE id = $1`
	e, err := scanEmployment(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *employmentRepository) GetByUserAndPosition(ctx context.Context, userID, positionID string) (*domain.Employment, error) {
	query := `SELECT ` + employmentColumns + ` FROM employments WHERE user_id = $1 AND position_id = $2`
	e, err := scanEmployment(r.DB.QueryRowContext(ctx, query, userID, positionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *employmentRepository) List(ctx context.Context, filter domain.EmploymentFilter) ([]*domain.Employment, error) {
	query := `SELECT ` + employmentColumns + ` FROM employments WHERE 1=1`
	args := []any{}
	if filter.PositionID != nil {
		args = append(args, *filter.PositionID)
		query += fmt.Sprintf(" AND position_id = $%d", len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.State != nil {
		args = append(args, string(*filter.State))
		query += fmt.Sprintf(" AND state = $%d", len(args))
	}
	if filter.Rating != nil {
		args = append(args, *filter.Rating)
		query += fmt.Sprintf(" AND rating = $%d", len(args))
	}
	query += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	employments := make([]*domain.Employment, 0)
	for rows.Next() {
		e, err := scanEmployment(rows)
		if err != nil {
			return nil, err
		}
		employments = append(employments, e)
	}
	return employments, rows.Err()
}

func (r *employmentRepository) CountOccupying(ctx context.Context, positionID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM employments
		WHERE position_id = $1 AND state IN ('accepted', 'done')
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, positionID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SetState updates the state only. A transition into a slot-occupying
// state is guarded by the position's capacity in the same statement; the
// row itself is excluded from the count so accepted -> done always passes.
func (r *employmentRepository) SetState(ctx context.Context, id string, state domain.EmploymentState) (*domain.Employment, error) {
	query := `
		UPDATE employments SET state = $2::employment_state
		WHERE id = $1
		RETURNING ` + employmentColumns
	if state.OccupiesSlot() {
		query = `
			UPDATE employments e SET state = $2::employment_state
			WHERE e.id = $1 AND (
				SELECT COUNT(*) FROM employments
				WHERE position_id = e.position_id AND state IN ('accepted', 'done') AND id <> e.id
			) < (SELECT capacity FROM job_positions WHERE id = e.position_id)
			RETURNING ` + employmentColumns
	}
	e, err := scanEmployment(r.DB.QueryRowContext(ctx, query, id, string(state)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if !state.OccupiesSlot() {
				return nil, domain.ErrNotFound
			}
			// Guarded update matched no row: distinguish a missing
			// employment from a full position.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrPositionFull
		}
		return nil, err
	}
	return e, nil
}

func (r *employmentRepository) SetRating(ctx context.Context, id string, rating int) (*domain.Employment, error) {
	query := `
		UPDATE employments SET rating = $2
		WHERE id = $1
		RETURNING ` + employmentColumns
	e, err := scanEmployment(r.DB.QueryRowContext(ctx, query, id, rating))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *employmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM employments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
