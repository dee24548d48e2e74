package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catering-backend/models"
	"catering-backend/services"
)

func (s *Server) listEventTypes(c *gin.Context) {
	includeInactive := c.Query("all") == "true" && getClaims(c) != nil
	types, err := services.ListEventTypes(c.Request.Context(), includeInactive)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_types": types})
}

type eventTypeRequest struct {
	Name          string `json:"event_name" binding:"required"`
	MinimumGuests int    `json:"minimum_guests"`
	Description   string `json:"description"`
	IconURL       string `json:"icon_url"`
	ImageURL      string `json:"image_url"`
	IsActive      *bool  `json:"is_active"`
}

func (s *Server) adminCreateEventType(c *gin.Context) {
	var req eventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "event_name is required")
		return
	}
	created, err := services.CreateEventType(c.Request.Context(), models.EventType{
		Name:          req.Name,
		MinimumGuests: req.MinimumGuests,
		Description:   req.Description,
		IconURL:       req.IconURL,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) adminUpdateEventType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid event type id")
		return
	}
	var req eventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "event_name is required")
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	updated, err := services.UpdateEventType(c.Request.Context(), id, models.EventType{
		Name:          req.Name,
		MinimumGuests: req.MinimumGuests,
		Description:   req.Description,
		IconURL:       req.IconURL,
		ImageURL:      req.ImageURL,
		IsActive:      active,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) adminDeleteEventType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid event type id")
		return
	}
	if err := services.DeleteEventType(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
