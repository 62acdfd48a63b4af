package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/models"
)

// StoreService manages stores, their inventories, and customer orders.
type StoreService struct {
	db *gorm.DB
}

// NewStoreService creates a StoreService.
func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

// CreateStore registers a new store owned by the given user.
func (s *StoreService) CreateStore(ctx context.Context, ownerID uuid.UUID, name, address, phone string) (*models.Store, error) {
	store := models.Store{
		Name:    name,
		Address: address,
		Phone:   phone,
		OwnerID: ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&store).Error; err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return &store, nil
}

// ListStores returns all stores, for the customer-facing store directory.
func (s *StoreService) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := s.db.WithContext(ctx).Order("name").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

// GetStore loads one store by ID.
func (s *StoreService) GetStore(ctx context.Context, storeID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := s.db.WithContext(ctx).First(&store, "id = ?", storeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	return &store, nil
}

// ListInventory returns a store's stocked items.
func (s *StoreService) ListInventory(ctx context.Context, storeID uuid.UUID) ([]models.InventoryItem, error) {
	if _, err := s.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).Where("store_id = ?", storeID).Order("name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// AddInventoryItem stocks a new item. Only the store owner may do this.
func (s *StoreService) AddInventoryItem(ctx context.Context, ownerID, storeID uuid.UUID, name string, quantity int) (*models.InventoryItem, error) {
	if err := s.requireOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	item := models.InventoryItem{
		StoreID:  storeID,
		Name:     name,
		Quantity: quantity,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add inventory item: %w", err)
	}
	return &item, nil
}

// UpdateInventoryQuantity sets an item's stock level.
func (s *StoreService) UpdateInventoryQuantity(ctx context.Context, ownerID, storeID, itemID uuid.UUID, quantity int) error {
	if err := s.requireOwner(ctx, ownerID, storeID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ? AND store_id = ?", itemID, storeID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update inventory item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveInventoryItem deletes an item from a store's inventory.
func (s *StoreService) RemoveInventoryItem(ctx context.Context, ownerID, storeID, itemID uuid.UUID) error {
	if err := s.requireOwner(ctx, ownerID, storeID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", itemID, storeID).
		Delete(&models.InventoryItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove inventory item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateOrder places a customer order against a store.
func (s *StoreService) CreateOrder(ctx context.Context, customerID string, storeID uuid.UUID, items []models.OrderItem, note string) (*models.Order, error) {
	if _, err := s.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("order must contain at least one item")
	}

	order := models.Order{
		StoreID:    storeID,
		CustomerID: customerID,
		Items:      items,
		Note:       note,
		Status:     models.OrderStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &order, nil
}

// ListStoreOrders returns a store's orders, newest first. Owner only.
func (s *StoreService) ListStoreOrders(ctx context.Context, ownerID, storeID uuid.UUID) ([]models.Order, error) {
	if err := s.requireOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := s.db.WithContext(ctx).Where("store_id = ?", storeID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListCustomerOrders returns a customer's own orders, newest first.
func (s *StoreService) ListCustomerOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to a new status. Only the owner of the
// order's store may do this.
func (s *StoreService) UpdateOrderStatus(ctx context.Context, ownerID uuid.UUID, orderID uuid.UUID, status string) (*models.Order, error) {
	switch status {
	case models.OrderStatusPending, models.OrderStatusAccepted, models.OrderStatusFulfilled, models.OrderStatusRejected:
	default:
		return nil, ErrInvalidStatus
	}

	var order models.Order
	err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if err := s.requireOwner(ctx, ownerID, order.StoreID); err != nil {
		return nil, err
	}

	if !allowedTransition(order.Status, status) {
		return nil, ErrInvalidTransition
	}

	order.Status = status
	if err := s.db.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return &order, nil
}

// allowedTransition restricts status changes to the forward flow: a pending
// order is accepted or rejected, an accepted one is fulfilled or rejected.
// Fulfilled and rejected are terminal.
func allowedTransition(from, to string) bool {
	switch from {
	case models.OrderStatusPending:
		return to == models.OrderStatusAccepted || to == models.OrderStatusRejected
	case models.OrderStatusAccepted:
		return to == models.OrderStatusFulfilled || to == models.OrderStatusRejected
	default:
		return false
	}
}

func (s *StoreService) requireOwner(ctx context.Context, ownerID, storeID uuid.UUID) error {
	store, err := s.GetStore(ctx, storeID)
	if err != nil {
		return err
	}
	if store.OwnerID != ownerID {
		return ErrNotOwner
	}
	return nil
}
