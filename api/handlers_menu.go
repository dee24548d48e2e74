package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catering-backend/models"
	"catering-backend/notify"
	"catering-backend/services"
)

func (s *Server) listMenu(c *gin.Context) {
	vegOnly := c.Query("veg") == "true" || c.Query("veg") == "1"
	items, err := services.ListMenu(c.Request.Context(), c.Query("category"), vegOnly)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) listCategories(c *gin.Context) {
	cats, err := services.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (s *Server) getMenuItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid item id")
		return
	}
	item, err := services.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) adminCreateMenuItem(c *gin.Context) {
	var input models.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid menu item payload: "+err.Error())
		return
	}
	item, err := services.CreateMenuItem(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	s.notifier.ToAll(notify.EventMenuItemAdded, menuEventData(item))
	c.JSON(http.StatusCreated, item)
}

func (s *Server) adminUpdateMenuItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid item id")
		return
	}
	var input models.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid menu item payload: "+err.Error())
		return
	}
	item, err := services.UpdateMenuItem(c.Request.Context(), id, input)
	if err != nil {
		fail(c, err)
		return
	}
	s.notifier.ToAll(notify.EventMenuItemUpdated, menuEventData(item))
	c.JSON(http.StatusOK, item)
}

func (s *Server) adminDeleteMenuItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid item id")
		return
	}
	if err := services.DeleteMenuItem(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	s.notifier.ToAll(notify.EventMenuItemDeleted, map[string]any{"item_id": id})
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type setStockRequest struct {
	StockQuantity *int `json:"stock_quantity" binding:"required"`
}

func (s *Server) adminSetStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid item id")
		return
	}
	var req setStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "stock_quantity is required")
		return
	}
	updated, err := services.SetStock(c.Request.Context(), id, *req.StockQuantity)
	if err != nil {
		fail(c, err)
		return
	}
	s.notifier.ToAdmins(notify.EventInventoryChanged, map[string]any{
		"item_id":        id,
		"stock_quantity": updated,
	})
	c.JSON(http.StatusOK, gin.H{"item_id": id, "stock_quantity": updated})
}

func (s *Server) adminLowStock(c *gin.Context) {
	threshold := models.LowStockThreshold
	if v := c.Query("threshold"); v != "" {
		if t, err := strconv.Atoi(v); err == nil && t >= 0 {
			threshold = t
		}
	}
	items, err := services.LowStockItems(c.Request.Context(), threshold)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "threshold": threshold})
}

func menuEventData(m *models.MenuItem) map[string]any {
	return map[string]any{
		"item_id":        m.ID,
		"item_name":      m.Name,
		"price":          m.PricePerPlate,
		"is_available":   m.IsAvailable,
		"stock_quantity": m.StockQuantity,
	}
}
