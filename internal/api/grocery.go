package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/service"
)

// GroceryHandler exposes the per-user shopping list.
type GroceryHandler struct {
	grocery *service.GroceryService
}

// NewGroceryHandler creates a GroceryHandler.
func NewGroceryHandler(grocery *service.GroceryService) *GroceryHandler {
	return &GroceryHandler{grocery: grocery}
}

// List handles GET /grocery.
func (h *GroceryHandler) List(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	items, err := h.grocery.GetList(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load grocery list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddItem handles POST /grocery/items.
func (h *GroceryHandler) AddItem(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Quantity string `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item name is required"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	item, err := h.grocery.AddItem(c.Request.Context(), userID, req.Name, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// ToggleItem handles POST /grocery/items/:id/toggle.
func (h *GroceryHandler) ToggleItem(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	if err := h.grocery.ToggleItem(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveItem handles DELETE /grocery/items/:id.
func (h *GroceryHandler) RemoveItem(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	if err := h.grocery.RemoveItem(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Clear handles DELETE /grocery.
func (h *GroceryHandler) Clear(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	if err := h.grocery.ClearList(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear grocery list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ImportPlan handles POST /grocery/import/:planId, merging a stored plan's
// ingredients into the list.
func (h *GroceryHandler) ImportPlan(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	items, err := h.grocery.ImportPlan(c.Request.Context(), userID, c.Param("planId"))
	if errors.Is(err, service.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to import meal plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
