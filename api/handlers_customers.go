package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catering-backend/logging"
	"catering-backend/mail"
	"catering-backend/services"
)

type registerRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

func (s *Server) registerCustomer(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "full_name, email and password are required")
		return
	}
	customer, err := services.RegisterCustomer(c.Request.Context(),
		req.FullName, req.PhoneNumber, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	token, err := s.tokens.GenerateCustomer(customer.ID, customer.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "customer": customer})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) loginCustomer(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}
	customer, err := services.AuthenticateCustomer(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	token, err := s.tokens.GenerateCustomer(customer.ID, customer.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "customer": customer})
}

// refreshCustomerToken issues a fresh token for a still-valid one.
func (s *Server) refreshCustomerToken(c *gin.Context) {
	claims := getClaims(c)
	token, err := s.tokens.GenerateCustomer(claims.CustomerID, claims.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type otpRequest struct {
	Email string `json:"email" binding:"required"`
}

// forgotPassword emails a reset code. The response does not reveal whether
// the email has an account.
func (s *Server) forgotPassword(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email is required")
		return
	}
	customer, err := services.GetCustomerByEmail(c.Request.Context(), req.Email)
	if err == nil && customer.IsRegistered() {
		code, issueErr := s.otp.Issue(c.Request.Context(), req.Email)
		if issueErr != nil {
			fail(c, issueErr)
			return
		}
		if mailErr := s.mailer.Send(c.Request.Context(), customer.FullName,
			customer.Email, "Your password reset code", mail.OTPHTML(code)); mailErr != nil {
			logging.L().Warn("otp mail failed", zap.String("email", customer.Email), zap.Error(mailErr))
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the email is registered, a code has been sent"})
}

type otpVerifyRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// verifyOTP checks the code without consuming it, so the form can advance to
// the new-password step.
func (s *Server) verifyOTP(c *gin.Context) {
	var req otpVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and code are required")
		return
	}
	if err := s.otp.Check(c.Request.Context(), req.Email, req.Code); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// resetPassword consumes the code and sets the new password.
func (s *Server) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email, code and new_password are required")
		return
	}
	if err := s.otp.Verify(c.Request.Context(), req.Email, req.Code); err != nil {
		fail(c, err)
		return
	}
	if err := services.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (s *Server) getProfile(c *gin.Context) {
	claims := getClaims(c)
	customer, err := services.GetCustomer(c.Request.Context(), claims.CustomerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

type updateProfileRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
}

func (s *Server) updateProfile(c *gin.Context) {
	claims := getClaims(c)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "full_name is required")
		return
	}
	customer, err := services.UpdateCustomerProfile(c.Request.Context(),
		claims.CustomerID, req.FullName, req.PhoneNumber)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (s *Server) myOrders(c *gin.Context) {
	claims := getClaims(c)
	orders, err := services.OrdersForCustomer(c.Request.Context(), claims.CustomerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) myStats(c *gin.Context) {
	claims := getClaims(c)
	stats, err := services.GetCustomerStats(c.Request.Context(), claims.CustomerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
