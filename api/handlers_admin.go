package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catering-backend/logging"
	"catering-backend/mail"
	"catering-backend/models"
	"catering-backend/notify"
	"catering-backend/services"
)

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// adminLogin checks the env-configured dashboard credentials. Comparison is
// constant time; an unset admin password disables the dashboard entirely.
func (s *Server) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Admin.Username)) == 1
	passOK := s.cfg.Admin.Password != "" &&
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.Admin.Password)) == 1
	if !userOK || !passOK {
		fail(c, services.ErrBadCredentials)
		return
	}
	token, err := s.tokens.GenerateAdmin(s.cfg.Admin.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// adminVerify confirms the dashboard's stored token is still good.
func (s *Server) adminVerify(c *gin.Context) {
	claims := getClaims(c)
	c.JSON(http.StatusOK, gin.H{"valid": true, "email": claims.Email})
}

func (s *Server) adminRefresh(c *gin.Context) {
	claims := getClaims(c)
	token, err := s.tokens.GenerateAdmin(claims.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) adminListOrders(c *gin.Context) {
	orders, err := services.ListOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) adminSetOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	order, oldStatus, err := services.SetOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	s.notifyStatusChanged(order, oldStatus)
	if order.Status == models.OrderStatusCancelled {
		s.notifier.ToAdmins(notify.EventInventoryChanged, inventoryEventData(order))
		go s.sendCancellationMail(order.ID, "")
	}
	go s.broadcastStatsDetached()
	c.JSON(http.StatusOK, order)
}

func (s *Server) adminListCancellations(c *gin.Context) {
	orders, err := services.PendingCancellations(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type resolveCancelRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// adminResolveCancellation settles a pending cancellation request: approval
// cancels the order and restores stock, rejection just clears the flag.
func (s *Server) adminResolveCancellation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	var req resolveCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "approved is required")
		return
	}

	if !*req.Approved {
		order, err := services.RejectCancellation(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		data := orderEventData(order)
		s.notifier.ToAdmins(notify.EventCancellationRejected, data)
		if order.CustomerID != nil {
			s.notifier.ToCustomer(*order.CustomerID, notify.EventCancellationRejected, data)
		}
		c.JSON(http.StatusOK, order)
		return
	}

	order, oldStatus, err := services.ApproveCancellation(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	data := orderEventData(order)
	s.notifier.ToAdmins(notify.EventCancellationApproved, data)
	if order.CustomerID != nil {
		s.notifier.ToCustomer(*order.CustomerID, notify.EventCancellationApproved, data)
	}
	s.notifyStatusChanged(order, oldStatus)
	s.notifier.ToAdmins(notify.EventInventoryChanged, inventoryEventData(order))
	go s.sendCancellationMail(order.ID, "Your cancellation request was approved.")
	go s.broadcastStatsDetached()
	c.JSON(http.StatusOK, order)
}

func (s *Server) sendCancellationMail(orderID int64, reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	order, err := services.GetOrder(ctx, orderID)
	if err != nil {
		logging.L().Error("cancellation mail fetch failed", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	html, err := mail.OrderCancelledHTML(order, reason)
	if err != nil {
		logging.L().Error("render cancellation mail", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	subject := "Order #" + strconv.FormatInt(order.ID, 10) + " cancelled"
	if err := s.mailer.Send(ctx, order.CustomerName, order.Email, subject, html); err != nil {
		logging.L().Warn("cancellation mail failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
}

func (s *Server) adminListCustomers(c *gin.Context) {
	customers, err := services.ListCustomers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (s *Server) adminListInquiries(c *gin.Context) {
	inquiries, err := services.ListInquiries(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": inquiries})
}

func (s *Server) adminSetInquiryStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid inquiry id")
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	inquiry, err := services.SetInquiryStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

func (s *Server) adminStats(c *gin.Context) {
	stats, err := services.GetDashboardStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	top, err := services.TopMenuItems(c.Request.Context(), 5)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "top_items": top})
}
