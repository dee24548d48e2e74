package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	razorpay "github.com/razorpay/razorpay-go"

	"catering-backend/db"
	"catering-backend/models"
)

// PaymentGateway creates gateway orders and verifies payment callbacks.
type PaymentGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

func NewPaymentGateway(keyID, keySecret string) *PaymentGateway {
	return &PaymentGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// KeyID is exposed to the checkout page so the payment widget can open.
func (g *PaymentGateway) KeyID() string { return g.keyID }

// InitiatePayment creates a gateway order for an existing Pending order and
// stores the gateway reference. Amounts are converted to the smallest
// currency unit. Re-initiating returns a fresh gateway order; only the last
// reference is kept.
func (g *PaymentGateway) InitiatePayment(ctx context.Context, orderID int64) (*PaymentInit, error) {
	o, err := GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != models.OrderStatusPending && o.Status != models.OrderStatusConfirmed {
		return nil, fmt.Errorf("%w: order %d is %s and cannot be paid", ErrConflict, orderID, o.Status)
	}

	amountPaise := int64(math.Round(o.TotalAmount * 100))
	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("order_%d", orderID),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayError, err)
	}
	gatewayOrderID, _ := body["id"].(string)
	if gatewayOrderID == "" {
		return nil, fmt.Errorf("%w: gateway returned no order id", ErrGatewayError)
	}

	_, err = db.Pool.Exec(ctx, `
		UPDATE orders SET gateway_order_id = $1, updated_at = now()
		WHERE order_id = $2`,
		gatewayOrderID, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("store gateway order id: %w", err)
	}

	return &PaymentInit{
		OrderID:        orderID,
		GatewayOrderID: gatewayOrderID,
		AmountPaise:    amountPaise,
		Currency:       "INR",
		KeyID:          g.keyID,
	}, nil
}

type PaymentInit struct {
	OrderID        int64  `json:"order_id"`
	GatewayOrderID string `json:"gateway_order_id"`
	AmountPaise    int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}

// VerifySignature checks the gateway callback signature: HMAC-SHA256 of
// "<gateway_order_id>|<payment_id>" under the key secret, hex encoded.
func VerifySignature(keySecret, gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(keySecret))
	fmt.Fprintf(mac, "%s|%s", gatewayOrderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ConfirmPayment validates the callback and marks the order Paid, returning
// the updated order, the status it moved from and whether a transition
// actually happened. Confirming an already-Paid order is a no-op so gateway
// retries stay harmless; a bad signature returns ErrSignatureInvalid and
// changes nothing.
func (g *PaymentGateway) ConfirmPayment(ctx context.Context, orderID int64, paymentID, signature string) (*models.Order, string, bool, error) {
	var updated *models.Order
	var oldStatus string
	changed := false
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		o, err := scanOrder(tx.QueryRow(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE order_id = $1 FOR UPDATE`, orderID))
		if err != nil {
			return err
		}
		oldStatus = o.Status
		if o.Status == models.OrderStatusPaid {
			updated = o
			return nil
		}
		if models.IsTerminal(o.Status) {
			return fmt.Errorf("%w: order %d is %s", ErrConflict, orderID, o.Status)
		}
		if o.GatewayOrderID == "" {
			return fmt.Errorf("%w: order %d has no initiated payment", ErrConflict, orderID)
		}
		if !VerifySignature(g.keySecret, o.GatewayOrderID, paymentID, signature) {
			return ErrSignatureInvalid
		}
		row := tx.QueryRow(ctx, `
			UPDATE orders SET status = $1, updated_at = now()
			WHERE order_id = $2
			RETURNING `+orderColumns,
			models.OrderStatusPaid, orderID,
		)
		updated, err = scanOrder(row)
		changed = err == nil
		return err
	})
	if err != nil {
		return nil, "", false, err
	}
	return updated, oldStatus, changed, nil
}

// PaymentCancelled handles the customer abandoning the payment widget. The
// order moves to Cancelled and its stock is restored, same as any other
// cancellation. Cancelling an already-Cancelled order is a no-op.
func PaymentCancelled(ctx context.Context, orderID int64) (*models.Order, string, error) {
	var updated *models.Order
	var oldStatus string
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		o, err := scanOrder(tx.QueryRow(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE order_id = $1 FOR UPDATE`, orderID))
		if err != nil {
			return err
		}
		oldStatus = o.Status
		if o.Status == models.OrderStatusCancelled {
			updated = o
			return nil
		}
		if models.IsTerminal(o.Status) || o.Status == models.OrderStatusPaid {
			return fmt.Errorf("%w: order %d is %s", ErrConflict, orderID, o.Status)
		}
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
