package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catering-backend/auth"
	"catering-backend/logging"
	"catering-backend/mail"
	"catering-backend/models"
	"catering-backend/notify"
	"catering-backend/services"
)

type createOrderRequest struct {
	CustomerName        string                  `json:"customer_name" binding:"required"`
	PhoneNumber         string                  `json:"phone_number"`
	Email               string                  `json:"email" binding:"required"`
	EventType           string                  `json:"event_type"`
	NumberOfGuests      int                     `json:"number_of_guests"`
	EventDate           string                  `json:"event_date"`
	EventTime           string                  `json:"event_time"`
	VenueAddress        string                  `json:"venue_address"`
	SpecialRequirements string                  `json:"special_requirements"`
	PaymentMethod       string                  `json:"payment_method"`
	Items               []models.OrderLineInput `json:"items" binding:"required"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid order payload: "+err.Error())
		return
	}

	// A repeat submission within the guard window gets the original order
	// back instead of a second one.
	if prevID, dup := s.guard.Check(c.Request.Context(), req.Email); dup {
		prev, err := services.GetOrder(c.Request.Context(), prevID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"duplicate": true, "order": prev})
		return
	}

	input := models.CreateOrderInput{
		CustomerName:        req.CustomerName,
		PhoneNumber:         req.PhoneNumber,
		Email:               req.Email,
		EventType:           req.EventType,
		NumberOfGuests:      req.NumberOfGuests,
		EventDate:           req.EventDate,
		EventTime:           req.EventTime,
		VenueAddress:        req.VenueAddress,
		SpecialRequirements: req.SpecialRequirements,
		PaymentMethod:       req.PaymentMethod,
		Lines:               req.Items,
	}
	if claims := getClaims(c); claims != nil && claims.Role == auth.RoleCustomer {
		input.CustomerID = &claims.CustomerID
	}

	order, err := services.CreateOrder(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	s.guard.Mark(c.Request.Context(), order.Email, order.ID)

	go s.afterOrderCreated(order.ID)

	c.JSON(http.StatusCreated, order)
}

// afterOrderCreated runs the notification side effects on a fresh context so
// a closed request connection cannot abort them. The order is re-read to
// pick up anything the transaction computed.
func (s *Server) afterOrderCreated(orderID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	order, err := services.GetOrder(ctx, orderID)
	if err != nil {
		logging.L().Error("post-order fetch failed", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}

	s.notifier.ToAdmins(notify.EventOrderCreated, orderEventData(order))

	invData := inventoryEventData(order)
	if low, err := services.LowStockItems(ctx, models.LowStockThreshold); err == nil && len(low) > 0 {
		invData["low_stock"] = low
	}
	s.notifier.ToAdmins(notify.EventInventoryChanged, invData)
	s.broadcastStats(ctx)

	html, err := mail.OrderConfirmationHTML(order)
	if err != nil {
		logging.L().Error("render confirmation mail", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	subject := "Your catering order #" + strconv.FormatInt(order.ID, 10)
	if err := s.mailer.Send(ctx, order.CustomerName, order.Email, subject, html); err != nil {
		logging.L().Warn("confirmation mail failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
}

func (s *Server) broadcastStats(ctx context.Context) {
	stats, err := services.GetDashboardStats(ctx)
	if err != nil {
		logging.L().Warn("stats refresh failed", zap.Error(err))
		return
	}
	s.notifier.ToAdmins(notify.EventStatsUpdated, map[string]any{"stats": stats})
}

// broadcastStatsDetached refreshes dashboard stats on its own context, for
// call sites inside request handlers.
func (s *Server) broadcastStatsDetached() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.broadcastStats(ctx)
}

func orderEventData(o *models.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"item_name": it.ItemName,
			"quantity":  it.Quantity,
		})
	}
	data := map[string]any{
		"order_id":      o.ID,
		"customer_name": o.CustomerName,
		"status":        o.Status,
		"event_type":    o.EventType,
		"event_date":    o.EventDate,
		"total_amount":  o.TotalAmount,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	}
	if o.CustomerID != nil {
		data["customer_id"] = *o.CustomerID
	}
	if len(items) > 0 {
		data["items"] = items
	}
	return data
}

func statusEventData(o *models.Order, oldStatus string) map[string]any {
	data := orderEventData(o)
	data["old_status"] = oldStatus
	data["new_status"] = o.Status
	return data
}

func inventoryEventData(o *models.Order) map[string]any {
	ids := make([]int64, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.MenuItemID)
	}
	return map[string]any{"order_id": o.ID, "item_ids": ids}
}

// notifyStatusChanged fans a status transition out to the dashboards and the
// order's customer.
func (s *Server) notifyStatusChanged(o *models.Order, oldStatus string) {
	data := statusEventData(o, oldStatus)
	s.notifier.ToAdmins(notify.EventOrderStatusChanged, data)
	if o.CustomerID != nil {
		s.notifier.ToCustomer(*o.CustomerID, notify.EventOrderStatusChanged, data)
	}
}

func (s *Server) getOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	order, err := services.GetOrder(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// trackOrders is the guest lookup: order history by email.
func (s *Server) trackOrders(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		badRequest(c, "email query parameter is required")
		return
	}
	orders, err := services.OrdersByEmail(c.Request.Context(), email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// customerOrders serves a customer's own history; requesting another
// customer's id is forbidden.
func (s *Server) customerOrders(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid customer id")
		return
	}
	claims := getClaims(c)
	if claims.CustomerID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	orders, err := services.OrdersForCustomer(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) requestCancellation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	order, err := services.RequestCancellation(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	s.notifier.ToAdmins(notify.EventCancellationRequested, orderEventData(order))
	c.JSON(http.StatusOK, order)
}
