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

// CreateOrder validates the request, freezes prices, decrements stock and
// inserts the order with its lines in a single transaction. Menu rows are
// locked with FOR UPDATE so two concurrent orders cannot both spend the same
// stock. Unknown item IDs fail the whole order.
func CreateOrder(ctx context.Context, input models.CreateOrderInput) (*models.Order, error) {
	if err := validateOrderInput(&input); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(input.Lines))
	qtyByID := make(map[int64]int, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			line.Quantity = 1
		}
		if _, dup := qtyByID[line.MenuItemID]; dup {
			qtyByID[line.MenuItemID] += line.Quantity
			continue
		}
		qtyByID[line.MenuItemID] = line.Quantity
		ids = append(ids, line.MenuItemID)
	}

	var order *models.Order
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT item_id, item_name, price_per_plate
			FROM menu_items
			WHERE item_id = ANY($1)
			FOR UPDATE`,
			ids,
		)
		if err != nil {
			return fmt.Errorf("lock menu rows: %w", err)
		}
		type lockedItem struct {
			name  string
			price float64
		}
		locked := make(map[int64]lockedItem, len(ids))
		for rows.Next() {
			var id int64
			var it lockedItem
			if err := rows.Scan(&id, &it.name, &it.price); err != nil {
				rows.Close()
				return err
			}
			locked[id] = it
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		for _, id := range ids {
			if _, ok := locked[id]; !ok {
				return invalid(fmt.Sprintf("menu item %d does not exist", id))
			}
		}

		var total float64
		for id, qty := range qtyByID {
			total += locked[id].price * float64(qty)
		}

		customerID, err := ensureCustomerTx(ctx, tx, input)
		if err != nil {
			return err
		}

		o := &models.Order{
			CustomerID:          customerID,
			CustomerName:        input.CustomerName,
			PhoneNumber:         input.PhoneNumber,
			Email:               strings.TrimSpace(input.Email),
			EventType:           input.EventType,
			NumberOfGuests:      input.NumberOfGuests,
			EventDate:           input.EventDate,
			EventTime:           input.EventTime,
			VenueAddress:        input.VenueAddress,
			SpecialRequirements: input.SpecialRequirements,
			Status:              models.OrderStatusPending,
			TotalAmount:         total,
			PaymentMethod:       input.PaymentMethod,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO orders (
				customer_id, customer_name, phone_number, email, event_type,
				number_of_guests, event_date, event_time, venue_address,
				special_requirements, status, total_amount, payment_method
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING order_id, created_at`,
			o.CustomerID, o.CustomerName, o.PhoneNumber, o.Email, o.EventType,
			o.NumberOfGuests, o.EventDate, o.EventTime, o.VenueAddress,
			o.SpecialRequirements, o.Status, o.TotalAmount, o.PaymentMethod,
		).Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for id, qty := range qtyByID {
			item := locked[id]
			var lineID int64
			err := tx.QueryRow(ctx, `
				INSERT INTO order_menu_items (order_id, menu_item_id, quantity, price_at_order_time)
				VALUES ($1, $2, $3, $4)
				RETURNING order_menu_id`,
				o.ID, id, qty, item.price,
			).Scan(&lineID)
			if err != nil {
				return fmt.Errorf("insert order line: %w", err)
			}
			o.Items = append(o.Items, models.OrderItem{
				ID:               lineID,
				OrderID:          o.ID,
				MenuItemID:       id,
				ItemName:         item.name,
				Quantity:         qty,
				PriceAtOrderTime: item.price,
			})
		}

		if err := decrementStockTx(ctx, tx, qtyByID); err != nil {
			return err
		}
		if o.CustomerID != nil {
			_, err = tx.Exec(ctx, `
				UPDATE customers SET total_orders_count = total_orders_count + 1
				WHERE customer_id = $1`,
				*o.CustomerID,
			)
			if err != nil {
				return fmt.Errorf("bump customer order count: %w", err)
			}
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func validateOrderInput(input *models.CreateOrderInput) error {
	input.Email = strings.TrimSpace(input.Email)
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	switch {
	case input.CustomerName == "":
		return invalid("customer_name is required")
	case input.Email == "" || !strings.Contains(input.Email, "@"):
		return invalid("a valid email is required")
	case len(input.Lines) == 0:
		return invalid("order must contain at least one item")
	case input.NumberOfGuests <= 0:
		return invalid("number_of_guests must be positive")
	}
	if input.PaymentMethod != models.PaymentMethodOnline {
		input.PaymentMethod = models.PaymentMethodCOD
	}
	return nil
}

// ensureCustomerTx links the order to an existing customer by email, or
// creates a guest row (no password) so order history survives registration.
func ensureCustomerTx(ctx context.Context, tx pgx.Tx, input models.CreateOrderInput) (*int64, error) {
	if input.CustomerID != nil {
		return input.CustomerID, nil
	}
	var id int64
	err := tx.QueryRow(ctx, `
		SELECT customer_id FROM customers WHERE lower(email) = lower($1)`,
		input.Email,
	).Scan(&id)
	if err == nil {
		return &id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO customers (full_name, phone_number, email)
		VALUES ($1, $2, $3)
		RETURNING customer_id`,
		input.CustomerName, input.PhoneNumber, input.Email,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create guest customer: %w", err)
	}
	return &id, nil
}

const orderColumns = `
	order_id, customer_id, customer_name, phone_number, email, event_type,
	number_of_guests, event_date, event_time, venue_address,
	special_requirements, status, cancellation_requested, total_amount,
	payment_method, gateway_order_id, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.PhoneNumber, &o.Email,
		&o.EventType, &o.NumberOfGuests, &o.EventDate, &o.EventTime,
		&o.VenueAddress, &o.SpecialRequirements, &o.Status,
		&o.CancellationRequested, &o.TotalAmount, &o.PaymentMethod,
		&o.GatewayOrderID, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrder returns the order with its lines.
func GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	o, err := scanOrder(db.Pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID))
	if err != nil {
		return nil, err
	}
	if err := attachItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func attachItems(ctx context.Context, o *models.Order) error {
	rows, err := db.Pool.Query(ctx, `
		SELECT omi.order_menu_id, omi.order_id, omi.menu_item_id,
			m.item_name, omi.quantity, omi.price_at_order_time
		FROM order_menu_items omi
		JOIN menu_items m ON m.item_id = omi.menu_item_id
		WHERE omi.order_id = $1
		ORDER BY omi.order_menu_id`,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.ItemName,
			&it.Quantity, &it.PriceAtOrderTime); err != nil {
			return err
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

// ListOrders returns orders for the dashboard, newest first, optionally
// filtered by status.
func ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if status != "" {
		if !models.ValidStatus(status) {
			return nil, invalid("unknown status " + status)
		}
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, order_id DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := attachItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// OrdersForCustomer returns the customer's order history, newest first.
func OrdersForCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1
		ORDER BY created_at DESC, order_id DESC`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := attachItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// OrdersByEmail is the guest order-tracking lookup.
func OrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE lower(email) = lower($1)
		ORDER BY created_at DESC, order_id DESC`,
		strings.TrimSpace(email),
	)
	if err != nil {
		return nil, fmt.Errorf("list orders by email: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// CanTransition reports whether an order may move from one status to another.
// Terminal states accept nothing; every other move made by an admin is
// allowed.
func CanTransition(from, to string) bool {
	if !models.ValidStatus(to) {
		return false
	}
	if models.IsTerminal(from) {
		return false
	}
	return from != to
}

// SetOrderStatus applies an admin status change and returns the updated
// order along with the status it moved from. Cancelling restores stock in
// the same transaction; flags are cleared so a resolved order never shows a
// pending cancellation request.
func SetOrderStatus(ctx context.Context, orderID int64, newStatus string) (*models.Order, string, error) {
	if !models.ValidStatus(newStatus) {
		return nil, "", invalid("unknown status " + newStatus)
	}
	var updated *models.Order
	var oldStatus string
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		o, err := scanOrder(tx.QueryRow(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE order_id = $1 FOR UPDATE`, orderID))
		if err != nil {
			return err
		}
		oldStatus = o.Status
		if !CanTransition(o.Status, newStatus) {
			return fmt.Errorf("%w: cannot move order %d from %s to %s",
				ErrConflict, orderID, o.Status, newStatus)
		}
		if newStatus == models.OrderStatusCancelled {
			if err := restoreStockTx(ctx, tx, orderID); err != nil {
				return err
			}
		}
		row := tx.QueryRow(ctx, `
			UPDATE orders SET
				status = $1,
				cancellation_requested = false,
				updated_at = now()
			WHERE order_id = $2
			RETURNING `+orderColumns,
			newStatus, orderID,
		)
		updated, err = scanOrder(row)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return updated, oldStatus, nil
}
