package services

import (
	"context"
	"fmt"

	"catering-backend/db"
	"catering-backend/models"
)

// DashboardStats is the summary block at the top of the admin dashboard.
type DashboardStats struct {
	TotalOrders       int     `json:"total_orders"`
	PendingOrders     int     `json:"pending_orders"`
	ConfirmedOrders   int     `json:"confirmed_orders"`
	PaidOrders        int     `json:"paid_orders"`
	DeliveredOrders   int     `json:"delivered_orders"`
	CancelledOrders   int     `json:"cancelled_orders"`
	PendingCancels    int     `json:"pending_cancellations"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalCustomers    int     `json:"total_customers"`
	TotalMenuItems    int     `json:"total_menu_items"`
	LowStockItems     int     `json:"low_stock_items"`
	TotalInquiries    int     `json:"total_inquiries"`
	NewInquiries      int     `json:"new_inquiries"`
}

// GetDashboardStats computes the dashboard summary. Revenue counts Paid and
// Delivered orders only.
func GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var s DashboardStats
	err := db.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*)::int,
			COUNT(*) FILTER (WHERE status = 'Pending')::int,
			COUNT(*) FILTER (WHERE status = 'Confirmed')::int,
			COUNT(*) FILTER (WHERE status = 'Paid')::int,
			COUNT(*) FILTER (WHERE status = 'Delivered')::int,
			COUNT(*) FILTER (WHERE status = 'Cancelled')::int,
			COUNT(*) FILTER (WHERE cancellation_requested)::int,
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('Paid', 'Delivered')), 0)::float8
		FROM orders`,
	).Scan(&s.TotalOrders, &s.PendingOrders, &s.ConfirmedOrders, &s.PaidOrders,
		&s.DeliveredOrders, &s.CancelledOrders, &s.PendingCancels, &s.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `SELECT COUNT(*)::int FROM customers`).Scan(&s.TotalCustomers)
	if err != nil {
		return nil, fmt.Errorf("customer stats: %w", err)
	}
	err = db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)::int, COUNT(*) FILTER (WHERE stock_quantity <= $1)::int
		FROM menu_items`,
		models.LowStockThreshold,
	).Scan(&s.TotalMenuItems, &s.LowStockItems)
	if err != nil {
		return nil, fmt.Errorf("menu stats: %w", err)
	}
	err = db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)::int, COUNT(*) FILTER (WHERE status = 'New')::int
		FROM contact_inquiries`,
	).Scan(&s.TotalInquiries, &s.NewInquiries)
	if err != nil {
		return nil, fmt.Errorf("inquiry stats: %w", err)
	}
	return &s, nil
}

// CustomerStats is the per-customer summary on the profile page.
type CustomerStats struct {
	CustomerID  int64   `json:"customer_id"`
	TotalOrders int     `json:"total_orders"`
	TotalSpent  float64 `json:"total_spent"`
	LastOrderID *int64  `json:"last_order_id,omitempty"`
}

func GetCustomerStats(ctx context.Context, customerID int64) (*CustomerStats, error) {
	s := CustomerStats{CustomerID: customerID}
	err := db.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*)::int,
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('Paid', 'Delivered')), 0)::float8,
			MAX(order_id)
		FROM orders
		WHERE customer_id = $1`,
		customerID,
	).Scan(&s.TotalOrders, &s.TotalSpent, &s.LastOrderID)
	if err != nil {
		return nil, fmt.Errorf("customer stats %d: %w", customerID, err)
	}
	return &s, nil
}

// TopMenuItems lists the most ordered items for the dashboard.
func TopMenuItems(ctx context.Context, limit int) ([]TopItem, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT m.item_id, m.item_name, COALESCE(SUM(omi.quantity), 0)::int AS ordered
		FROM menu_items m
		LEFT JOIN order_menu_items omi ON omi.menu_item_id = m.item_id
		GROUP BY m.item_id, m.item_name
		ORDER BY ordered DESC, m.item_id
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top menu items: %w", err)
	}
	defer rows.Close()

	var items []TopItem
	for rows.Next() {
		var t TopItem
		if err := rows.Scan(&t.ItemID, &t.ItemName, &t.TotalOrdered); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

type TopItem struct {
	ItemID       int64  `json:"item_id"`
	ItemName     string `json:"item_name"`
	TotalOrdered int    `json:"total_ordered"`
}
