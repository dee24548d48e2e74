package services

import (
	"context"
	"testing"

	"catering-backend/db"
	"catering-backend/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusPending, models.OrderStatusPaid, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusConfirmed, models.OrderStatusDelivered, true},
		{models.OrderStatusPaid, models.OrderStatusDelivered, true},
		{models.OrderStatusPaid, models.OrderStatusCancelled, true},
		{models.OrderStatusDelivered, models.OrderStatusPending, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
		{models.OrderStatusCancelled, models.OrderStatusPaid, false},
		{models.OrderStatusPending, models.OrderStatusPending, false},
		{models.OrderStatusPending, "Shipped", false},
		{models.OrderStatusPending, "", false},
	}
	for _, tt := range tests {
		got := CanTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidateOrderInput(t *testing.T) {
	valid := func() models.CreateOrderInput {
		return models.CreateOrderInput{
			CustomerName:   "Asha Rao",
			Email:          "asha@example.com",
			NumberOfGuests: 25,
			Lines:          []models.OrderLineInput{{MenuItemID: 1, Quantity: 2}},
		}
	}

	in := valid()
	if err := validateOrderInput(&in); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if in.PaymentMethod != models.PaymentMethodCOD {
		t.Errorf("empty payment method should default to cod, got %q", in.PaymentMethod)
	}

	in = valid()
	in.CustomerName = "  "
	if err := validateOrderInput(&in); err == nil {
		t.Error("blank customer name should be rejected")
	}

	in = valid()
	in.Email = "not-an-email"
	if err := validateOrderInput(&in); err == nil {
		t.Error("malformed email should be rejected")
	}

	in = valid()
	in.Lines = nil
	if err := validateOrderInput(&in); err == nil {
		t.Error("empty item list should be rejected")
	}

	in = valid()
	in.NumberOfGuests = 0
	if err := validateOrderInput(&in); err == nil {
		t.Error("zero guests should be rejected")
	}

	in = valid()
	in.PaymentMethod = models.PaymentMethodOnline
	if err := validateOrderInput(&in); err != nil {
		t.Fatalf("online payment rejected: %v", err)
	}
	if in.PaymentMethod != models.PaymentMethodOnline {
		t.Errorf("online payment method should be kept, got %q", in.PaymentMethod)
	}
}

// Integration test for order creation (requires DB). Skip if db.Pool is nil
// or -short.
func TestCreateOrder_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping order integration test in short mode")
	}
	if db.Pool == nil {
		t.Skip("skipping order integration test: no DB pool")
	}
	ctx := context.Background()

	var itemID int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO menu_items (item_name, price_per_plate, stock_quantity, is_available)
		VALUES ('Test Paneer Tikka', 250, 10, true)
		RETURNING item_id`).Scan(&itemID)
	if err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	defer func() {
		_, _ = db.Pool.Exec(ctx, `DELETE FROM order_menu_items WHERE menu_item_id = $1`, itemID)
		_, _ = db.Pool.Exec(ctx, `DELETE FROM menu_items WHERE item_id = $1`, itemID)
	}()

	order, err := CreateOrder(ctx, models.CreateOrderInput{
		CustomerName:   "Integration Tester",
		Email:          "integration-order@example.com",
		NumberOfGuests: 20,
		Lines:          []models.OrderLineInput{{MenuItemID: itemID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.TotalAmount != 750 {
		t.Errorf("total = %v, want 750", order.TotalAmount)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %q, want Pending", order.Status)
	}
	if len(order.Items) != 1 || order.Items[0].PriceAtOrderTime != 250 {
		t.Errorf("unexpected order lines: %+v", order.Items)
	}

	item, err := GetMenuItem(ctx, itemID)
	if err != nil {
		t.Fatalf("GetMenuItem: %v", err)
	}
	if item.StockQuantity != 7 {
		t.Errorf("stock after order = %d, want 7", item.StockQuantity)
	}

	// Cancelling restores the stock and flips the order terminal.
	cancelled, oldStatus, err := SetOrderStatus(ctx, order.ID, models.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("SetOrderStatus: %v", err)
	}
	if cancelled.Status != models.OrderStatusCancelled || oldStatus != models.OrderStatusPending {
		t.Errorf("transition = %q -> %q, want Pending -> Cancelled", oldStatus, cancelled.Status)
	}
	item, _ = GetMenuItem(ctx, itemID)
	if item.StockQuantity != 10 {
		t.Errorf("stock after cancel = %d, want 10", item.StockQuantity)
	}
	if _, _, err := SetOrderStatus(ctx, order.ID, models.OrderStatusConfirmed); err == nil {
		t.Error("cancelled order accepted a status change")
	}
}
