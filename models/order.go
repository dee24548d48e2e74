package models

import "time"

// Order statuses. Pending is the initial status; Delivered and Cancelled are
// terminal for cancellation purposes.
const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusPaid      = "Paid"
	OrderStatusCancelled = "Cancelled"
	OrderStatusDelivered = "Delivered"
)

const (
	PaymentMethodOnline = "online"
	PaymentMethodCOD    = "cod"
)

// Order is a row from the orders table. Contact fields are snapshotted at
// order time and do not follow later customer edits.
type Order struct {
	ID                    int64      `json:"order_id"`
	CustomerID            *int64     `json:"customer_id,omitempty"`
	CustomerName          string     `json:"customer_name"`
	PhoneNumber           string     `json:"phone_number"`
	Email                 string     `json:"email"`
	EventType             string     `json:"event_type"`
	NumberOfGuests        int        `json:"number_of_guests"`
	EventDate             string     `json:"event_date"`
	EventTime             string     `json:"event_time"`
	VenueAddress          string     `json:"venue_address"`
	SpecialRequirements   string     `json:"special_requirements"`
	Status                string     `json:"status"`
	CancellationRequested bool       `json:"cancellation_requested"`
	TotalAmount           float64    `json:"total_amount"`
	PaymentMethod         string     `json:"payment_method"`
	GatewayOrderID        string     `json:"gateway_order_id,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             *time.Time `json:"updated_at,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line of an order. PriceAtOrderTime is frozen from the menu
// row inside the creation transaction and survives later price changes.
type OrderItem struct {
	ID               int64   `json:"order_menu_id"`
	OrderID          int64   `json:"order_id"`
	MenuItemID       int64   `json:"menu_item_id"`
	ItemName         string  `json:"item_name"`
	Quantity         int     `json:"quantity"`
	PriceAtOrderTime float64 `json:"price_at_order_time"`
}

type OrderLineInput struct {
	MenuItemID int64 `json:"id" binding:"required"`
	Quantity   int   `json:"qty"`
}

type CreateOrderInput struct {
	CustomerID          *int64
	CustomerName        string
	PhoneNumber         string
	Email               string
	EventType           string
	NumberOfGuests      int
	EventDate           string
	EventTime           string
	VenueAddress        string
	SpecialRequirements string
	PaymentMethod       string
	Lines               []OrderLineInput
}

// IsTerminal reports whether no further status changes are accepted.
func IsTerminal(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPaid,
		OrderStatusCancelled, OrderStatusDelivered:
		return true
	}
	return false
}
