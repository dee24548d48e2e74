package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catering-backend/services"
)

type inquiryRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message" binding:"required"`
}

func (s *Server) createInquiry(c *gin.Context) {
	var req inquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name and message are required")
		return
	}
	inquiry, err := services.CreateInquiry(c.Request.Context(),
		req.Name, req.Phone, req.Email, req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}
