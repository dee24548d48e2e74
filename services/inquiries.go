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

// CreateInquiry stores a contact-form message for the dashboard.
func CreateInquiry(ctx context.Context, name, phone, email, message string) (*models.ContactInquiry, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	if name == "" {
		return nil, invalid("name is required")
	}
	if message == "" {
		return nil, invalid("message is required")
	}
	var q models.ContactInquiry
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO contact_inquiries (name, phone, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING inquiry_id, name, phone, email, message, inquiry_date, status`,
		name, phone, strings.TrimSpace(email), message,
	).Scan(&q.ID, &q.Name, &q.Phone, &q.Email, &q.Message, &q.InquiryDate, &q.Status)
	if err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return &q, nil
}

// ListInquiries returns contact messages, newest first.
func ListInquiries(ctx context.Context) ([]models.ContactInquiry, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT inquiry_id, name, phone, email, message, inquiry_date, status
		FROM contact_inquiries
		ORDER BY inquiry_date DESC, inquiry_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []models.ContactInquiry
	for rows.Next() {
		var q models.ContactInquiry
		if err := rows.Scan(&q.ID, &q.Name, &q.Phone, &q.Email, &q.Message,
			&q.InquiryDate, &q.Status); err != nil {
			return nil, err
		}
		inquiries = append(inquiries, q)
	}
	return inquiries, rows.Err()
}

// SetInquiryStatus lets an admin mark a message handled.
func SetInquiryStatus(ctx context.Context, id int64, status string) (*models.ContactInquiry, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, invalid("status is required")
	}
	var q models.ContactInquiry
	err := db.Pool.QueryRow(ctx, `
		UPDATE contact_inquiries SET status = $1
		WHERE inquiry_id = $2
		RETURNING inquiry_id, name, phone, email, message, inquiry_date, status`,
		status, id,
	).Scan(&q.ID, &q.Name, &q.Phone, &q.Email, &q.Message, &q.InquiryDate, &q.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update inquiry %d: %w", id, err)
	}
	return &q, nil
}
