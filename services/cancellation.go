package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"catering-backend/db"
	"catering-backend/models"
)

// RequestCancellation flags the order for admin review. The status itself
// does not change until an admin approves; repeat requests are idempotent.
func RequestCancellation(ctx context.Context, orderID int64) (*models.Order, error) {
	var updated *models.Order
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		o, err := scanOrder(tx.QueryRow(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE order_id = $1 FOR UPDATE`, orderID))
		if err != nil {
			return err
		}
		if models.IsTerminal(o.Status) {
			return fmt.Errorf("%w: order %d is already %s", ErrConflict, orderID, o.Status)
		}
		if o.CancellationRequested {
			updated = o
			return nil
		}
		row := tx.QueryRow(ctx, `
			UPDATE orders SET cancellation_requested = true, updated_at = now()
			WHERE order_id = $1
			RETURNING `+orderColumns,
			orderID,
		)
		updated, err = scanOrder(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ApproveCancellation moves a flagged order to Cancelled and restores its
// stock in the same transaction. The status the order moved from is returned
// for the change notification.
func ApproveCancellation(ctx context.Context, orderID int64) (*models.Order, string, error) {
	var updated *models.Order
	var oldStatus string
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		o, err := scanOrder(tx.QueryRow(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE order_id = $1 FOR UPDATE`, orderID))
		if err != nil {
			return err
		}
		if !o.CancellationRequested {
			return fmt.Errorf("%w: order %d has no pending cancellation request", ErrConflict, orderID)
		}
		if models.IsTerminal(o.Status) {
			return fmt.Errorf("%w: order %d is already %s", ErrConflict, orderID, o.Status)
		}
		oldStatus = o.Status
		if err := restoreStockTx(ctx, tx, orderID); err != nil {
			return err
		}
		row := tx.QueryRow(ctx, `
			UPDATE orders SET
				status = $1,
				cancellation_requested = false,
				updated_at = now()
			WHERE order_id = $2
			RETURNING `+orderColumns,
			models.OrderStatusCancelled, orderID,
		)
		updated, err = scanOrder(row)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return updated, oldStatus, nil
}

// RejectCancellation clears the request flag and leaves the status alone.
func RejectCancellation(ctx context.Context, orderID int64) (*models.Order, error) {
	var updated *models.Order
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		o, err := scanOrder(tx.QueryRow(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE order_id = $1 FOR UPDATE`, orderID))
		if err != nil {
			return err
		}
		if !o.CancellationRequested {
			return fmt.Errorf("%w: order %d has no pending cancellation request", ErrConflict, orderID)
		}
		row := tx.QueryRow(ctx, `
			UPDATE orders SET cancellation_requested = false, updated_at = now()
			WHERE order_id = $1
			RETURNING `+orderColumns,
			orderID,
		)
		updated, err = scanOrder(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// PendingCancellations lists orders waiting for a cancellation decision.
func PendingCancellations(ctx context.Context) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		WHERE cancellation_requested
		ORDER BY updated_at DESC NULLS LAST, order_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cancellation requests: %w", err)
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
