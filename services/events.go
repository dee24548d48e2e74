package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"catering-backend/db"
	"catering-backend/models"
)

const eventTypeColumns = `
	event_type_id, event_name, minimum_guests, description, icon_url,
	image_url, is_active`

func scanEventType(row pgx.Row) (*models.EventType, error) {
	var e models.EventType
	err := row.Scan(&e.ID, &e.Name, &e.MinimumGuests, &e.Description,
		&e.IconURL, &e.ImageURL, &e.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEventTypes returns the occasions shown on the order form. Inactive
// types stay hidden from customers but remain visible to admins.
func ListEventTypes(ctx context.Context, includeInactive bool) ([]models.EventType, error) {
	query := `SELECT ` + eventTypeColumns + ` FROM event_types`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY event_name`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	defer rows.Close()

	var types []models.EventType
	for rows.Next() {
		e, err := scanEventType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, *e)
	}
	return types, rows.Err()
}

func CreateEventType(ctx context.Context, e models.EventType) (*models.EventType, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return nil, invalid("event_name is required")
	}
	if e.MinimumGuests < 0 {
		return nil, invalid("minimum_guests must be >= 0")
	}
	return scanEventType(db.Pool.QueryRow(ctx, `
		INSERT INTO event_types (event_name, minimum_guests, description, icon_url, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING `+eventTypeColumns,
		e.Name, e.MinimumGuests, e.Description, e.IconURL, e.ImageURL,
	))
}

func UpdateEventType(ctx context.Context, id int64, e models.EventType) (*models.EventType, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return nil, invalid("event_name is required")
	}
	return scanEventType(db.Pool.QueryRow(ctx, `
		UPDATE event_types SET
			event_name = $1, minimum_guests = $2, description = $3,
			icon_url = $4, image_url = $5, is_active = $6
		WHERE event_type_id = $7
		RETURNING `+eventTypeColumns,
		e.Name, e.MinimumGuests, e.Description, e.IconURL, e.ImageURL,
		e.IsActive, id,
	))
}

func DeleteEventType(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM event_types WHERE event_type_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event type %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
