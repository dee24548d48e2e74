package mail

import (
	"fmt"
	"html/template"
	"strings"

	"catering-backend/models"
)

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`
<h2>Thank you, {{.Order.CustomerName}}!</h2>
<p>Your catering order #{{.Order.ID}} has been received.</p>
<p><b>Event:</b> {{.Order.EventType}} on {{.Order.EventDate}} at {{.Order.EventTime}}<br>
<b>Guests:</b> {{.Order.NumberOfGuests}}<br>
<b>Venue:</b> {{.Order.VenueAddress}}</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Item</th><th>Qty</th><th>Price</th></tr>
{{range .Order.Items}}<tr><td>{{.ItemName}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .PriceAtOrderTime}}</td></tr>
{{end}}</table>
<p><b>Total: {{printf "%.2f" .Order.TotalAmount}}</b></p>
<p>We will contact you shortly to confirm the details.</p>
`))

var orderCancelledTmpl = template.Must(template.New("order_cancelled").Parse(`
<h2>Order #{{.Order.ID}} cancelled</h2>
<p>Hi {{.Order.CustomerName}}, your catering order for {{.Order.EventDate}} has been cancelled.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
<p>If this was a paid order, the refund will be processed to the original payment method.</p>
`))

type orderMailData struct {
	Order  *models.Order
	Reason string
}

// OrderConfirmationHTML renders the customer confirmation email body.
func OrderConfirmationHTML(order *models.Order) (string, error) {
	var b strings.Builder
	if err := orderConfirmationTmpl.Execute(&b, orderMailData{Order: order}); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return b.String(), nil
}

// OrderCancelledHTML renders the cancellation notice email body.
func OrderCancelledHTML(order *models.Order, reason string) (string, error) {
	var b strings.Builder
	if err := orderCancelledTmpl.Execute(&b, orderMailData{Order: order, Reason: reason}); err != nil {
		return "", fmt.Errorf("render cancellation: %w", err)
	}
	return b.String(), nil
}

// OTPHTML renders the one-time login code email body.
func OTPHTML(code string) string {
	return fmt.Sprintf(`<p>Your login code is <b style="font-size:1.4em">%s</b>.</p><p>It expires in 10 minutes.</p>`, template.HTMLEscapeString(code))
}
