package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"eventstaffing/internal/domain"
)

type workedHoursRepository struct {
	DB *sql.DB
}

func NewWorkedHoursRepository(db *sql.DB) domain.WorkedHoursRepository {
	return &workedHoursRepository{
		DB: db,
	}
}

const workedHoursColumns = `id, date, hours_worked, employment_id`

func scanWorkedHours(row interface{ Scan(...any) error }) (*domain.WorkedHours, error) {
	w := &domain.WorkedHours{}
	if err := row.Scan(&w.ID, &w.Date, &w.HoursWorked, &w.EmploymentID); err != nil {
		return nil, err
	}
	w.Date = domain.Day(w.Date)
	return w, nil
}

// Create inserts the entry. The unique index on (employment_id, date)
// backs the one-entry-per-day invariant under concurrent writers.
func (r *workedHoursRepository) Create(ctx context.Context, w *domain.WorkedHours) error {
	query := `
		INSERT INTO worked_hours (date, hours_worked, employment_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, domain.Day(w.Date), w.HoursWorked, w.EmploymentID).Scan(&w.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateDay
		}
		return err
	}
	return nil
}

func (r *workedHoursRepository) GetByID(ctx context.Context, id string) (*domain.WorkedHours, error) {
	query := `SELECT ` + workedHoursColumns + ` FROM worked_hours WHERE id = $1`
	w, err := scanWorkedHours(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *workedHoursRepository) GetByEmploymentAndDate(ctx context.Context, employmentID string, date time.Time) (*domain.WorkedHours, error) {
	query := `SELECT ` + workedHoursColumns + ` FROM worked_hours WHERE employment_id = $1 AND date = $2`
	w, err := scanWorkedHours(r.DB.QueryRowContext(ctx, query, employmentID, domain.Day(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *workedHoursRepository) ListByEmploymentID(ctx context.Context, employmentID string) ([]*domain.WorkedHours, error) {
	query := `SELECT ` + workedHoursColumns + ` FROM worked_hours WHERE employment_id = $1 ORDER BY date`
	rows, err := r.DB.QueryContext(ctx, query, employmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]*domain.WorkedHours, 0)
	for rows.Next() {
		w, err := scanWorkedHours(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, w)
	}
	return entries, rows.Err()
}

// UpdateHours overwrites the hours only; date and employment are never
// changed by an update.
func (r *workedHoursRepository) UpdateHours(ctx context.Context, id string, hoursWorked float64) (*domain.WorkedHours, error) {
	query := `
		UPDATE worked_hours SET hours_worked = $2
		WHERE id = $1
		RETURNING ` + workedHoursColumns
	w, err := scanWorkedHours(r.DB.QueryRowContext(ctx, query, id, hoursWorked))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *workedHoursRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM worked_hours WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
