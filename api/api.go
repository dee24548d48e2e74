package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"catering-backend/auth"
	"catering-backend/config"
	"catering-backend/mail"
	"catering-backend/notify"
	"catering-backend/realtime"
	"catering-backend/services"
	"catering-backend/storage"
)

// Server wires handlers to their dependencies.
type Server struct {
	cfg      *config.Config
	tokens   *auth.Manager
	hub      *realtime.Hub
	notifier *notify.Notifier
	mailer   *mail.Sender
	guard    *services.DuplicateGuard
	otp      *services.OTPService
	gateway  *services.PaymentGateway
	files    storage.Store
}

func NewServer(
	cfg *config.Config,
	tokens *auth.Manager,
	hub *realtime.Hub,
	notifier *notify.Notifier,
	mailer *mail.Sender,
	guard *services.DuplicateGuard,
	otp *services.OTPService,
	gateway *services.PaymentGateway,
	files storage.Store,
) *Server {
	return &Server{
		cfg:      cfg,
		tokens:   tokens,
		hub:      hub,
		notifier: notifier,
		mailer:   mailer,
		guard:    guard,
		otp:      otp,
		gateway:  gateway,
		files:    files,
	}
}

// Router builds the gin engine with all routes mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.MaxMultipartMemory = s.cfg.HTTP.MaxUploadBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.HTTP.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/static/uploads", s.cfg.Storage.LocalDir)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/menu", s.listMenu)
		api.GET("/menu/categories", s.listCategories)
		api.GET("/menu/low-stock", s.authRequired(auth.RoleAdmin), s.adminLowStock)
		api.GET("/menu/:id", s.getMenuItem)
		api.POST("/menu", s.authRequired(auth.RoleAdmin), s.adminCreateMenuItem)
		api.PUT("/menu/:id", s.authRequired(auth.RoleAdmin), s.adminUpdateMenuItem)
		api.PATCH("/menu/:id/stock", s.authRequired(auth.RoleAdmin), s.adminSetStock)
		api.DELETE("/menu/:id", s.authRequired(auth.RoleAdmin), s.adminDeleteMenuItem)

		api.GET("/events", s.optionalAuth(), s.listEventTypes)
		api.POST("/events", s.authRequired(auth.RoleAdmin), s.adminCreateEventType)
		api.PUT("/events/:id", s.authRequired(auth.RoleAdmin), s.adminUpdateEventType)
		api.DELETE("/events/:id", s.authRequired(auth.RoleAdmin), s.adminDeleteEventType)

		api.POST("/orders", s.optionalAuth(), s.createOrder)
		api.GET("/orders", s.authRequired(auth.RoleAdmin), s.adminListOrders)
		api.GET("/orders/track", s.trackOrders)
		api.GET("/orders/:id", s.optionalAuth(), s.getOrder)
		api.PUT("/orders/status/:id", s.authRequired(auth.RoleAdmin), s.adminSetOrderStatus)
		api.POST("/orders/:id/request-cancel", s.requestCancellation)
		api.POST("/orders/:id/resolve-cancel", s.authRequired(auth.RoleAdmin), s.adminResolveCancellation)
		api.GET("/orders/cancellations", s.authRequired(auth.RoleAdmin), s.adminListCancellations)

		api.POST("/payments/create_order", s.initiatePayment)
		api.POST("/payments/verify", s.confirmPayment)
		api.POST("/payments/cancel", s.paymentCancelled)

		api.POST("/customers/register", s.registerCustomer)
		api.POST("/customers/login", s.loginCustomer)
		api.POST("/customers/refresh", s.authRequired(auth.RoleCustomer), s.refreshCustomerToken)
		api.GET("/customers", s.authRequired(auth.RoleAdmin), s.adminListCustomers)
		api.GET("/customers/:id/orders", s.authRequired(auth.RoleCustomer), s.customerOrders)

		users := api.Group("/users")
		{
			users.GET("/profile", s.authRequired(auth.RoleCustomer), s.getProfile)
			users.PUT("/profile", s.authRequired(auth.RoleCustomer), s.updateProfile)
			users.GET("/order-history", s.authRequired(auth.RoleCustomer), s.myOrders)
			users.GET("/stats", s.authRequired(auth.RoleCustomer), s.myStats)
			users.POST("/forgot-password", s.forgotPassword)
			users.POST("/verify-otp", s.verifyOTP)
			users.POST("/reset-password", s.resetPassword)
		}

		api.GET("/stats/summary", s.authRequired(auth.RoleAdmin), s.adminStats)

		api.POST("/admin/login", s.adminLogin)
		api.GET("/admin/verify", s.authRequired(auth.RoleAdmin), s.adminVerify)
		api.POST("/admin/refresh", s.authRequired(auth.RoleAdmin), s.adminRefresh)
		api.GET("/admin/stats", s.authRequired(auth.RoleAdmin), s.adminStats)

		api.POST("/uploads/image", s.authRequired(auth.RoleAdmin), s.uploadImage)

		api.POST("/inquiries", s.createInquiry)
		api.GET("/inquiries", s.authRequired(auth.RoleAdmin), s.adminListInquiries)
		api.PATCH("/inquiries/:id/status", s.authRequired(auth.RoleAdmin), s.adminSetInquiryStatus)
	}
	r.GET("/ws", s.serveWS)
	return r
}
