package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"catering-backend/db"
	"catering-backend/models"
)

const customerColumns = `
	customer_id, full_name, phone_number, email, password_hash,
	total_orders_count, created_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.FullName, &c.PhoneNumber, &c.Email,
		&c.PasswordHash, &c.TotalOrdersCount, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RegisterCustomer creates credentials for an email. If a guest row already
// exists for the email it is claimed, so earlier guest orders show up in the
// new account's history. Registering an email that already has a password
// fails with ErrEmailTaken.
func RegisterCustomer(ctx context.Context, fullName, phone, email, password string) (*models.Customer, error) {
	email = strings.TrimSpace(email)
	fullName = strings.TrimSpace(fullName)
	switch {
	case fullName == "":
		return nil, invalid("full_name is required")
	case email == "" || !strings.Contains(email, "@"):
		return nil, invalid("a valid email is required")
	case len(password) < 6:
		return nil, invalid("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var customer *models.Customer
	err = db.WithTx(ctx, func(tx pgx.Tx) error {
		existing, err := scanCustomer(tx.QueryRow(ctx,
			`SELECT `+customerColumns+` FROM customers WHERE lower(email) = lower($1) FOR UPDATE`,
			email,
		))
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if existing != nil {
			if existing.IsRegistered() {
				return ErrEmailTaken
			}
			customer, err = scanCustomer(tx.QueryRow(ctx, `
				UPDATE customers SET
					full_name = $1, phone_number = $2, password_hash = $3
				WHERE customer_id = $4
				RETURNING `+customerColumns,
				fullName, phone, string(hash), existing.ID,
			))
			return err
		}
		customer, err = scanCustomer(tx.QueryRow(ctx, `
			INSERT INTO customers (full_name, phone_number, email, password_hash)
			VALUES ($1, $2, $3, $4)
			RETURNING `+customerColumns,
			fullName, phone, email, string(hash),
		))
		return err
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// AuthenticateCustomer checks the password. Unknown emails and wrong
// passwords return the same error so the login form cannot probe accounts.
func AuthenticateCustomer(ctx context.Context, email, password string) (*models.Customer, error) {
	c, err := GetCustomerByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !c.IsRegistered() {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*c.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return c, nil
}

func GetCustomer(ctx context.Context, customerID int64) (*models.Customer, error) {
	return scanCustomer(db.Pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, customerID))
}

func GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return scanCustomer(db.Pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email)))
}

// UpdateCustomerProfile edits name and phone. Email is the account key and
// cannot change here.
func UpdateCustomerProfile(ctx context.Context, customerID int64, fullName, phone string) (*models.Customer, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, invalid("full_name is required")
	}
	return scanCustomer(db.Pool.QueryRow(ctx, `
		UPDATE customers SET full_name = $1, phone_number = $2
		WHERE customer_id = $3
		RETURNING `+customerColumns,
		fullName, phone, customerID,
	))
}

// ResetPassword sets a new password after a verified reset code.
func ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 6 {
		return invalid("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	tag, err := db.Pool.Exec(ctx, `
		UPDATE customers SET password_hash = $1
		WHERE lower(email) = lower($2)`,
		string(hash), strings.TrimSpace(email),
	)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CustomerSummary is a dashboard row: a customer plus spend across their
// Paid and Delivered orders.
type CustomerSummary struct {
	models.Customer
	TotalSpent float64 `json:"total_spent"`
}

// ListCustomers returns all customers for the dashboard, newest first.
func ListCustomers(ctx context.Context) ([]CustomerSummary, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT c.customer_id, c.full_name, c.phone_number, c.email,
			c.password_hash, c.total_orders_count, c.created_at,
			COALESCE(SUM(o.total_amount) FILTER (WHERE o.status IN ('Paid', 'Delivered')), 0)::float8
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.customer_id
		GROUP BY c.customer_id
		ORDER BY c.created_at DESC, c.customer_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []CustomerSummary
	for rows.Next() {
		var s CustomerSummary
		if err := rows.Scan(&s.ID, &s.FullName, &s.PhoneNumber, &s.Email,
			&s.PasswordHash, &s.TotalOrdersCount, &s.CreatedAt, &s.TotalSpent); err != nil {
			return nil, err
		}
		customers = append(customers, s)
	}
	return customers, rows.Err()
}
