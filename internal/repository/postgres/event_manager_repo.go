package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"eventstaffing/internal/domain"
)

type eventManagerRepository struct {
	DB *sql.DB
}

func NewEventManagerRepository(db *sql.DB) domain.EventManagerRepository {
	return &eventManagerRepository{
		DB: db,
	}
}

func (r *eventManagerRepository) Add(ctx context.Context, eventID, userID string) error {
	query := `
		INSERT INTO event_manager_relations (user_id, event_id)
		VALUES ($1, $2)
	`
	_, err := r.DB.ExecContext(ctx, query, userID, eventID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyManager
		}
		return err
	}
	return nil
}

func (r *eventManagerRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM event_manager_relations
			WHERE event_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *eventManagerRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventManagerRelation, error) {
	query := `
		SELECT user_id, event_id FROM event_manager_relations
		WHERE event_id = $1
		ORDER BY user_id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	relations := make([]*domain.EventManagerRelation, 0)
	for rows.Next() {
		rel := &domain.EventManagerRelation{}
		if err := rows.Scan(&rel.UserID, &rel.EventID); err != nil {
			return nil, err
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

func (r *eventManagerRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EventManagerRelation, error) {
	query := `
		SELECT user_id, event_id FROM event_manager_relations
		WHERE user_id = $1
		ORDER BY event_id
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	relations := make([]*domain.EventManagerRelation, 0)
	for rows.Next() {
		rel := &domain.EventManagerRelation{}
		if err := rows.Scan(&rel.UserID, &rel.EventID); err != nil {
			return nil, err
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

func (r *eventManagerRepository) Remove(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM event_manager_relations WHERE event_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
