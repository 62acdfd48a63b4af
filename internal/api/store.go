package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/models"
	"github.com/mealforge/backend/internal/service"
)

// StoreHandler exposes the store directory, owner inventory management, and
// customer orders.
type StoreHandler struct {
	stores *service.StoreService
}

// NewStoreHandler creates a StoreHandler.
func NewStoreHandler(stores *service.StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

// List handles GET /stores.
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.stores.ListStores(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list stores"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// Create handles POST /stores.
func (h *StoreHandler) Create(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, ok := currentUserUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	store, err := h.stores.CreateStore(c.Request.Context(), ownerID, req.Name, req.Address, req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create store"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"store": store})
}

// Get handles GET /stores/:id, returning the store with its inventory.
func (h *StoreHandler) Get(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}

	store, err := h.stores.GetStore(c.Request.Context(), storeID)
	if errors.Is(err, service.ErrStoreNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load store"})
		return
	}

	inventory, err := h.stores.ListInventory(c.Request.Context(), storeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inventory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store, "inventory": inventory})
}

// AddInventoryItem handles POST /stores/:id/inventory.
func (h *StoreHandler) AddInventoryItem(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}
	ownerID, ok := currentUserUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	item, err := h.stores.AddInventoryItem(c.Request.Context(), ownerID, storeID, req.Name, req.Quantity)
	if err != nil {
		h.writeStoreError(c, err, "failed to add inventory item")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateInventoryItem handles PUT /stores/:id/inventory/:itemId.
func (h *StoreHandler) UpdateInventoryItem(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	ownerID, ok := currentUserUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.stores.UpdateInventoryQuantity(c.Request.Context(), ownerID, storeID, itemID, req.Quantity); err != nil {
		h.writeStoreError(c, err, "failed to update inventory item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveInventoryItem handles DELETE /stores/:id/inventory/:itemId.
func (h *StoreHandler) RemoveInventoryItem(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	ownerID, ok := currentUserUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.stores.RemoveInventoryItem(c.Request.Context(), ownerID, storeID, itemID); err != nil {
		h.writeStoreError(c, err, "failed to remove inventory item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateOrder handles POST /stores/:id/orders.
func (h *StoreHandler) CreateOrder(c *gin.Context) {
	var req struct {
		Items []models.OrderItem `json:"items" binding:"required"`
		Note  string             `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}
	customerID, _ := middleware.CurrentUserID(c)

	order, err := h.stores.CreateOrder(c.Request.Context(), customerID, storeID, req.Items, req.Note)
	if errors.Is(err, service.ErrStoreNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListStoreOrders handles GET /stores/:id/orders (owner only).
func (h *StoreHandler) ListStoreOrders(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}
	ownerID, ok := currentUserUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orders, err := h.stores.ListStoreOrders(c.Request.Context(), ownerID, storeID)
	if err != nil {
		h.writeStoreError(c, err, "failed to list orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ListMyOrders handles GET /orders.
func (h *StoreHandler) ListMyOrders(c *gin.Context) {
	customerID, _ := middleware.CurrentUserID(c)
	orders, err := h.stores.ListCustomerOrders(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus handles PATCH /orders/:id/status (store owner only).
func (h *StoreHandler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	ownerID, ok := currentUserUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	order, err := h.stores.UpdateOrderStatus(c.Request.Context(), ownerID, orderID, req.Status)
	if errors.Is(err, service.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
		return
	}
	if errors.Is(err, service.ErrInvalidTransition) {
		c.JSON(http.StatusConflict, gin.H{"error": "order status transition not allowed"})
		return
	}
	if errors.Is(err, service.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		h.writeStoreError(c, err, "failed to update order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *StoreHandler) writeStoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrStoreNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "store does not belong to this user"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func currentUserUUID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}
