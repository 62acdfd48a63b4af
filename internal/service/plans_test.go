package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealforge/backend/internal/service"
	"github.com/mealforge/backend/internal/testhelpers"
	"github.com/mealforge/backend/internal/types"
)

func testPlan(id string) *types.MealPlan {
	return &types.MealPlan{
		ID: id,
		Meals: types.MealSlots{
			Breakfast: []types.Meal{{
				ID:          id + "-b1",
				Name:        "Oatmeal",
				Ingredients: []string{"1 cup oats"},
			}},
		},
		GeneratedOn: time.Now().UTC().Format(time.RFC3339),
	}
}

func TestSavePlanFirstPlanBecomesActive(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	plans := service.NewPlanService(db)
	ctx := context.Background()

	require.NoError(t, plans.SavePlan(ctx, "user-1", testPlan("p1")))

	active, err := plans.GetActivePlan(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, active.IsActive)

	require.NoError(t, plans.SavePlan(ctx, "user-1", testPlan("p2")))

	records, err := plans.ListPlans(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	var activeCount int
	for _, r := range records {
		if r.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestSavePlanConcurrentFirstSavesYieldOneActive(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	plans := service.NewPlanService(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, plans.SavePlan(ctx, "user-1", testPlan(fmt.Sprintf("p%d", n))))
		}(i)
	}
	wg.Wait()

	records, err := plans.ListPlans(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, records, 8)

	var activeCount int
	for _, r := range records {
		if r.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestSavePlanAssignsFreshID(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	plans := service.NewPlanService(db)
	ctx := context.Background()

	plan := testPlan("unique-id")
	require.NoError(t, plans.SavePlan(ctx, "user-1", plan))

	records, err := plans.ListPlans(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEqual(t, "unique-id", records[0].ID)
	assert.NotEmpty(t, records[0].ID)
	assert.Equal(t, "unique-id", records[0].PlanData.ID)
}

func TestListPlansScopedToUserNewestFirst(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	plans := service.NewPlanService(db)
	ctx := context.Background()

	require.NoError(t, plans.SavePlan(ctx, "user-1", testPlan("p1")))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, plans.SavePlan(ctx, "user-1", testPlan("p2")))
	require.NoError(t, plans.SavePlan(ctx, "user-2", testPlan("p3")))

	records, err := plans.ListPlans(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "p2", records[0].PlanData.ID)
	assert.Equal(t, "p1", records[1].PlanData.ID)
}

func TestGetPlanOtherUsersPlanIsNotFound(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	plans := service.NewPlanService(db)
	ctx := context.Background()

	require.NoError(t, plans.SavePlan(ctx, "user-1", testPlan("p1")))
	records, err := plans.ListPlans(ctx, "user-1")
	require.NoError(t, err)

	got, err := plans.GetPlan(ctx, "user-1", records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, records[0].ID, got.ID)

	_, err = plans.GetPlan(ctx, "user-2", records[0].ID)
	assert.ErrorIs(t, err, service.ErrPlanNotFound)
}

func TestSetActiveMovesTheFlag(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	plans := service.NewPlanService(db)
	ctx := context.Background()

	require.NoError(t, plans.SavePlan(ctx, "user-1", testPlan("p1")))
	require.NoError(t, plans.SavePlan(ctx, "user-1", testPlan("p2")))

	records, err := plans.ListPlans(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	var inactive string
	for _, r := range records {
		if !r.IsActive {
			inactive = r.ID
		}
	}
	require.NotEmpty(t, inactive)

	require.NoError(t, plans.SetActive(ctx, "user-1", inactive))

	active, err := plans.GetActivePlan(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, inactive, active.ID)

	records, err = plans.ListPlans(ctx, "user-1")
	require.NoError(t, err)
	var activeCount int
	for _, r := range records {
		if r.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestSetActiveUnknownPlanLeavesStateUntouched(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	plans := service.NewPlanService(db)
	ctx := context.Background()

	require.NoError(t, plans.SavePlan(ctx, "user-1", testPlan("p1")))

	err := plans.SetActive(ctx, "user-1", "no-such-plan")
	assert.ErrorIs(t, err, service.ErrPlanNotFound)

	// The transaction rolled back, so the original plan is still active.
	active, err := plans.GetActivePlan(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, active.IsActive)
}

func TestDeletePlan(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	plans := service.NewPlanService(db)
	ctx := context.Background()

	require.NoError(t, plans.SavePlan(ctx, "user-1", testPlan("p1")))
	records, err := plans.ListPlans(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, plans.DeletePlan(ctx, "user-1", records[0].ID))

	remaining, err := plans.ListPlans(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	err = plans.DeletePlan(ctx, "user-1", records[0].ID)
	assert.ErrorIs(t, err, service.ErrPlanNotFound)
}
