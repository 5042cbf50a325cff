package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventstaffing/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, name, date_start, date_end, img_url, description, is_draft, venue_id, owner_id, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Name, &e.DateStart, &e.DateEnd, &e.ImgURL, &e.Description,
		&e.IsDraft, &e.VenueID, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, date_start, date_end, img_url, description, is_draft, venue_id, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.DateStart, e.DateEnd, e.ImgURL, e.Description,
		e.IsDraft, e.VenueID, e.OwnerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []any{}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if filter.VenueID != nil {
		args = append(args, *filter.VenueID)
		query += fmt.Sprintf(" AND venue_id = $%d", len(args))
	}
	if filter.IsDraft != nil {
		args = append(args, *filter.IsDraft)
		query += fmt.Sprintf(" AND is_draft = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, domain.Day(*filter.DateFrom))
		query += fmt.Sprintf(" AND date_end >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, domain.Day(*filter.DateTo))
		query += fmt.Sprintf(" AND date_start <= $%d", len(args))
	}
	query += ` ORDER BY date_start, name`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListWorkedByUser(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT DISTINCT e.id, e.name, e.date_start, e.date_end, e.img_url, e.description, e.is_draft, e.venue_id, e.owner_id, e.created_at, e.updated_at
		FROM events e
		JOIN job_positions p ON p.event_id = e.id
		JOIN employments em ON em.position_id = p.id
		WHERE em.user_id = $1 AND em.state IN ('accepted', 'done')
		ORDER BY e.date_start, e.name
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.DateStart != nil {
		add("date_start", domain.Day(*patch.DateStart))
	}
	if patch.DateEnd != nil {
		add("date_end", domain.Day(*patch.DateEnd))
	}
	if patch.ImgURL != nil {
		add("img_url", *patch.ImgURL)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.IsDraft != nil {
		add("is_draft", *patch.IsDraft)
	}
	if patch.VenueID != nil {
		add("venue_id", *patch.VenueID)
	}
	if len(args) == 0 {
		// No fields to update; just fetch the current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), len(args), eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
