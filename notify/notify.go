package notify

import (
	"go.uber.org/zap"

	"catering-backend/logging"
	"catering-backend/realtime"
)

// Event names pushed over websockets.
const (
	EventOrderCreated          = "order_created"
	EventOrderStatusChanged    = "order_status_changed"
	EventCancellationRequested = "cancellation_requested"
	EventCancellationApproved  = "cancellation_approved"
	EventCancellationRejected  = "cancellation_rejected"
	EventInventoryChanged      = "inventory_changed"
	EventStatsUpdated          = "stats_updated"
	EventMenuItemAdded         = "menu_item_added"
	EventMenuItemUpdated       = "menu_item_updated"
	EventMenuItemDeleted       = "menu_item_deleted"
)

// Notifier fans events out to connected dashboards, the affected customer and
// the optional admin Telegram chat. Every method is fire-and-forget: failures
// are logged, never returned, so a dead sink cannot fail an order.
type Notifier struct {
	hub      *realtime.Hub
	telegram *TelegramSink
}

func New(hub *realtime.Hub, telegram *TelegramSink) *Notifier {
	return &Notifier{hub: hub, telegram: telegram}
}

// ToAdmins pushes the event to every admin dashboard.
func (n *Notifier) ToAdmins(event string, data map[string]any) {
	n.hub.Publish(realtime.AdminChannel, realtime.Event{Name: event, Data: data})
	if n.telegram != nil {
		go n.telegram.Send(event, data)
	}
	logging.L().Debug("event to admins", zap.String("event", event))
}

// ToCustomer pushes the event to the customer's own channel, if connected.
func (n *Notifier) ToCustomer(customerID int64, event string, data map[string]any) {
	n.hub.Publish(realtime.CustomerChannel(customerID), realtime.Event{Name: event, Data: data})
}

// ToAll pushes the event to every connected client. Used for menu changes,
// which affect browsing customers and dashboards alike.
func (n *Notifier) ToAll(event string, data map[string]any) {
	n.hub.Broadcast(realtime.Event{Name: event, Data: data})
}
