package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catering-backend/notify"
	"catering-backend/services"
)

type initiatePaymentRequest struct {
	OrderID int64 `json:"order_id" binding:"required"`
}

func (s *Server) initiatePayment(c *gin.Context) {
	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "order_id is required")
		return
	}
	init, err := s.gateway.InitiatePayment(c.Request.Context(), req.OrderID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, init)
}

type confirmPaymentRequest struct {
	OrderID   int64  `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

func (s *Server) confirmPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "order_id, payment_id and signature are required")
		return
	}
	order, oldStatus, changed, err := s.gateway.ConfirmPayment(
		c.Request.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		fail(c, err)
		return
	}
	// A gateway retry of an already-Paid order changes nothing and emits
	// nothing.
	if changed {
		s.notifyStatusChanged(order, oldStatus)
		go s.broadcastStatsDetached()
	}
	c.JSON(http.StatusOK, order)
}

type paymentCancelledRequest struct {
	OrderID int64 `json:"order_id" binding:"required"`
}

// paymentCancelled handles the customer closing the payment widget. The
// order is cancelled and stock returns to the pool.
func (s *Server) paymentCancelled(c *gin.Context) {
	var req paymentCancelledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "order_id is required")
		return
	}
	order, oldStatus, err := services.PaymentCancelled(c.Request.Context(), req.OrderID)
	if err != nil {
		fail(c, err)
		return
	}
	if oldStatus != order.Status {
		s.notifyStatusChanged(order, oldStatus)
		s.notifier.ToAdmins(notify.EventInventoryChanged, inventoryEventData(order))
		go s.broadcastStatsDetached()
	}
	c.JSON(http.StatusOK, order)
}
