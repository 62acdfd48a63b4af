package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/models"
	"github.com/mealforge/backend/internal/service"
	"github.com/mealforge/backend/internal/testhelpers"
)

func setupStoreTest(t *testing.T) (*service.StoreService, uuid.UUID, *models.Store) {
	t.Helper()

	stores := service.NewStoreService(testhelpers.SetupTestDB(t))
	ownerID := uuid.New()

	store, err := stores.CreateStore(context.Background(), ownerID, "Green Grocer", "1 Market St", "555-0100")
	require.NoError(t, err)
	return stores, ownerID, store
}

func TestCreateAndListStores(t *testing.T) {
	stores, ownerID, store := setupStoreTest(t)
	ctx := context.Background()

	assert.NotEqual(t, uuid.Nil, store.ID)
	assert.Equal(t, ownerID, store.OwnerID)

	_, err := stores.CreateStore(ctx, uuid.New(), "Corner Market", "2 Main St", "")
	require.NoError(t, err)

	all, err := stores.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Corner Market", all[0].Name)
	assert.Equal(t, "Green Grocer", all[1].Name)
}

func TestGetStoreNotFound(t *testing.T) {
	stores, _, _ := setupStoreTest(t)

	_, err := stores.GetStore(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrStoreNotFound)
}

func TestInventoryOwnerOnly(t *testing.T) {
	stores, ownerID, store := setupStoreTest(t)
	ctx := context.Background()

	item, err := stores.AddInventoryItem(ctx, ownerID, store.ID, "Oats", 20)
	require.NoError(t, err)

	_, err = stores.AddInventoryItem(ctx, uuid.New(), store.ID, "Rice", 10)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	// Anyone can read the inventory.
	items, err := stores.ListInventory(ctx, store.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Oats", items[0].Name)

	require.NoError(t, stores.UpdateInventoryQuantity(ctx, ownerID, store.ID, item.ID, 5))
	items, err = stores.ListInventory(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, items[0].Quantity)

	err = stores.UpdateInventoryQuantity(ctx, ownerID, store.ID, uuid.New(), 5)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, stores.RemoveInventoryItem(ctx, ownerID, store.ID, item.ID))
	items, err = stores.ListInventory(ctx, store.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderLifecycle(t *testing.T) {
	stores, ownerID, store := setupStoreTest(t)
	ctx := context.Background()

	items := []models.OrderItem{{Name: "1 cup oats", Quantity: 2}}
	order, err := stores.CreateOrder(ctx, "customer-1", store.ID, items, "leave at door")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	_, err = stores.CreateOrder(ctx, "customer-1", store.ID, nil, "")
	assert.Error(t, err)

	mine, err := stores.ListCustomerOrders(ctx, "customer-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = stores.ListStoreOrders(ctx, uuid.New(), store.ID)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	incoming, err := stores.ListStoreOrders(ctx, ownerID, store.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)

	updated, err := stores.UpdateOrderStatus(ctx, ownerID, order.ID, models.OrderStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, updated.Status)

	_, err = stores.UpdateOrderStatus(ctx, ownerID, order.ID, "shipped")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)

	_, err = stores.UpdateOrderStatus(ctx, uuid.New(), order.ID, models.OrderStatusFulfilled)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	_, err = stores.UpdateOrderStatus(ctx, ownerID, uuid.New(), models.OrderStatusFulfilled)
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}

func TestOrderStatusMovesForwardOnly(t *testing.T) {
	stores, ownerID, store := setupStoreTest(t)
	ctx := context.Background()

	order, err := stores.CreateOrder(ctx, "customer-1", store.ID, []models.OrderItem{{Name: "oats", Quantity: 1}}, "")
	require.NoError(t, err)

	// Pending cannot jump straight to fulfilled.
	_, err = stores.UpdateOrderStatus(ctx, ownerID, order.ID, models.OrderStatusFulfilled)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = stores.UpdateOrderStatus(ctx, ownerID, order.ID, models.OrderStatusAccepted)
	require.NoError(t, err)

	updated, err := stores.UpdateOrderStatus(ctx, ownerID, order.ID, models.OrderStatusFulfilled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFulfilled, updated.Status)

	// Fulfilled is terminal.
	_, err = stores.UpdateOrderStatus(ctx, ownerID, order.ID, models.OrderStatusPending)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
	_, err = stores.UpdateOrderStatus(ctx, ownerID, order.ID, models.OrderStatusRejected)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}
