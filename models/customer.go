package models

import "time"

// Customer is a row from customers. A NULL password hash means the row was
// auto-created for a guest order and the person never registered.
type Customer struct {
	ID               int64     `json:"customer_id"`
	FullName         string    `json:"full_name"`
	PhoneNumber      string    `json:"phone_number"`
	Email            string    `json:"email"`
	PasswordHash     *string   `json:"-"`
	TotalOrdersCount int       `json:"total_orders_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsRegistered reports whether the customer has credentials.
func (c *Customer) IsRegistered() bool {
	return c.PasswordHash != nil && *c.PasswordHash != ""
}
