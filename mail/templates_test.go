package mail

import (
	"strings"
	"testing"

	"catering-backend/models"
)

func testOrder() *models.Order {
	return &models.Order{
		ID:             15,
		CustomerName:   "Meera Iyer",
		EventType:      "Wedding",
		EventDate:      "2026-10-12",
		EventTime:      "18:00",
		VenueAddress:   "12 Lake View Road",
		NumberOfGuests: 120,
		TotalAmount:    36000,
		Items: []models.OrderItem{
			{ItemName: "Veg Biryani", Quantity: 120, PriceAtOrderTime: 180},
			{ItemName: "Gulab Jamun", Quantity: 120, PriceAtOrderTime: 120},
		},
	}
}

func TestOrderConfirmationHTML(t *testing.T) {
	html, err := OrderConfirmationHTML(testOrder())
	if err != nil {
		t.Fatalf("OrderConfirmationHTML: %v", err)
	}
	for _, want := range []string{"Meera Iyer", "#15", "Wedding", "Veg Biryani", "36000.00"} {
		if !strings.Contains(html, want) {
			t.Errorf("confirmation mail missing %q", want)
		}
	}
}

func TestOrderCancelledHTML(t *testing.T) {
	html, err := OrderCancelledHTML(testOrder(), "venue unavailable")
	if err != nil {
		t.Fatalf("OrderCancelledHTML: %v", err)
	}
	if !strings.Contains(html, "#15") || !strings.Contains(html, "venue unavailable") {
		t.Errorf("cancellation mail missing fields: %s", html)
	}

	html, err = OrderCancelledHTML(testOrder(), "")
	if err != nil {
		t.Fatalf("OrderCancelledHTML: %v", err)
	}
	if strings.Contains(html, "Reason:") {
		t.Error("empty reason should not render a Reason line")
	}
}

func TestOTPHTML(t *testing.T) {
	html := OTPHTML("123456")
	if !strings.Contains(html, "123456") {
		t.Error("otp mail missing code")
	}
	html = OTPHTML("<script>")
	if strings.Contains(html, "<script>") {
		t.Error("otp code not escaped")
	}
}
