package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"catering-backend/db"
)

// ClampedDecrement returns the stock after removing qty, never below zero.
func ClampedDecrement(stock, qty int) int {
	stock -= qty
	if stock < 0 {
		return 0
	}
	return stock
}

// AvailableAfter reports the availability flag for a stock level.
func AvailableAfter(stock int) bool { return stock > 0 }

// decrementStockTx reduces stock for each ordered line inside the caller's
// transaction. The rows must already be locked with FOR UPDATE. Stock is
// clamped at zero and the availability flag is kept in sync.
func decrementStockTx(ctx context.Context, tx pgx.Tx, lines map[int64]int) error {
	for itemID, qty := range lines {
		_, err := tx.Exec(ctx, `
			UPDATE menu_items SET
				stock_quantity = GREATEST(0, stock_quantity - $1),
				total_orders_count = total_orders_count + 1,
				is_available = (GREATEST(0, stock_quantity - $1) > 0)
			WHERE item_id = $2`,
			qty, itemID,
		)
		if err != nil {
			return fmt.Errorf("decrement stock item %d: %w", itemID, err)
		}
	}
	return nil
}

// restoreStockTx puts an order's quantities back, used when an order is
// cancelled. Restored items become available again.
func restoreStockTx(ctx context.Context, tx pgx.Tx, orderID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE menu_items m SET
			stock_quantity = m.stock_quantity + omi.quantity,
			is_available = true
		FROM order_menu_items omi
		WHERE omi.order_id = $1 AND omi.menu_item_id = m.item_id`,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("restore stock order %d: %w", orderID, err)
	}
	return nil
}

// SetStock is the admin stock override. It keeps the availability flag in
// sync and returns the updated quantity.
func SetStock(ctx context.Context, itemID int64, quantity int) (int, error) {
	if quantity < 0 {
		return 0, invalid("stock_quantity must be >= 0")
	}
	var updated int
	err := db.Pool.QueryRow(ctx, `
		UPDATE menu_items SET
			stock_quantity = $1,
			is_available = ($1 > 0)
		WHERE item_id = $2
		RETURNING stock_quantity`,
		quantity, itemID,
	).Scan(&updated)
	if err == pgx.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("set stock item %d: %w", itemID, err)
	}
	return updated, nil
}

// LowStockItems lists items at or below the low-stock reporting threshold.
func LowStockItems(ctx context.Context, threshold int) ([]LowStockItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT item_id, item_name, stock_quantity, is_available
		FROM menu_items
		WHERE stock_quantity <= $1
		ORDER BY stock_quantity, item_id`,
		threshold,
	)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var items []LowStockItem
	for rows.Next() {
		var it LowStockItem
		if err := rows.Scan(&it.ItemID, &it.ItemName, &it.StockQuantity, &it.IsAvailable); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type LowStockItem struct {
	ItemID        int64  `json:"item_id"`
	ItemName      string `json:"item_name"`
	StockQuantity int    `json:"stock_quantity"`
	IsAvailable   bool   `json:"is_available"`
}
