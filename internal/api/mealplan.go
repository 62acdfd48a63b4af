package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/service"
	"github.com/mealforge/backend/internal/types"
)

// MealPlanHandler exposes plan generation and the stored-plan operations.
type MealPlanHandler struct {
	planner *service.PlannerService
	plans   *service.PlanService
}

// NewMealPlanHandler creates a MealPlanHandler.
func NewMealPlanHandler(planner *service.PlannerService, plans *service.PlanService) *MealPlanHandler {
	return &MealPlanHandler{planner: planner, plans: plans}
}

// Generate handles POST /meal-plans/generate. Anonymous callers are served;
// their plans are simply not persisted. An authenticated caller's token
// identity overrides any userId in the body.
func (h *MealPlanHandler) Generate(c *gin.Context) {
	var req types.GenerateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	userID := service.AnonymousUserID
	if id, ok := middleware.CurrentUserID(c); ok {
		userID = id
	} else if req.UserID != "" {
		userID = req.UserID
	}

	result, err := h.planner.GenerateMealPlan(c.Request.Context(), req.Preferences, userID)
	if err != nil {
		status := http.StatusInternalServerError
		var provErr *service.ProviderError
		if errors.As(err, &provErr) {
			status = http.StatusBadGateway
		}
		c.JSON(status, types.ErrorResponse{Error: "Failed to generate meal plan: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.GenerateMealPlanResponse{
		MealPlan: result.Plan,
		Success:  true,
		Provider: result.Provider,
		Fallback: result.Fallback,
	})
}

// List handles GET /meal-plans.
func (h *MealPlanHandler) List(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	records, err := h.plans.ListPlans(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mealPlans": records})
}

// Get handles GET /meal-plans/:id.
func (h *MealPlanHandler) Get(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	record, err := h.plans.GetPlan(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, service.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mealPlan": record})
}

// Activate handles POST /meal-plans/:id/activate.
func (h *MealPlanHandler) Activate(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	err := h.plans.SetActive(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, service.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update active meal plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete handles DELETE /meal-plans/:id.
func (h *MealPlanHandler) Delete(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	err := h.plans.DeletePlan(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, service.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meal plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
