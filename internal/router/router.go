package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mealforge/backend/internal/api"
	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/service"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth     *api.AuthHandler
	MealPlan *api.MealPlanHandler
	Grocery  *api.GroceryHandler
	Store    *api.StoreHandler
	Health   *api.HealthHandler

	AuthService *service.AuthService
	// GenerationLimiter is optional; when nil the generate endpoint is
	// not rate limited (tests run without Redis).
	GenerationLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes.
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	if h.Health != nil {
		router.GET("/health", h.Health.Check)
	}

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", middleware.RequireAuth(h.AuthService), h.Auth.Me)
	}

	// Plan generation is open to anonymous callers; a valid token attaches
	// the plan to the account.
	generate := v1.Group("/meal-plans")
	generate.Use(middleware.OptionalAuth(h.AuthService))
	if h.GenerationLimiter != nil {
		generate.Use(h.GenerationLimiter.Middleware())
	}
	generate.POST("/generate", h.MealPlan.Generate)

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(h.AuthService))
	{
		plans := protected.Group("/meal-plans")
		{
			plans.GET("", h.MealPlan.List)
			plans.GET("/:id", h.MealPlan.Get)
			plans.POST("/:id/activate", h.MealPlan.Activate)
			plans.DELETE("/:id", h.MealPlan.Delete)
		}

		grocery := protected.Group("/grocery")
		{
			grocery.GET("", h.Grocery.List)
			grocery.DELETE("", h.Grocery.Clear)
			grocery.POST("/items", h.Grocery.AddItem)
			grocery.POST("/items/:id/toggle", h.Grocery.ToggleItem)
			grocery.DELETE("/items/:id", h.Grocery.RemoveItem)
			grocery.POST("/import/:planId", h.Grocery.ImportPlan)
		}

		stores := protected.Group("/stores")
		{
			stores.GET("", h.Store.List)
			stores.POST("", h.Store.Create)
			stores.GET("/:id", h.Store.Get)
			stores.POST("/:id/inventory", h.Store.AddInventoryItem)
			stores.PUT("/:id/inventory/:itemId", h.Store.UpdateInventoryItem)
			stores.DELETE("/:id/inventory/:itemId", h.Store.RemoveInventoryItem)
			stores.POST("/:id/orders", h.Store.CreateOrder)
			stores.GET("/:id/orders", h.Store.ListStoreOrders)
		}

		orders := protected.Group("/orders")
		{
			orders.GET("", h.Store.ListMyOrders)
			orders.PATCH("/:id/status", h.Store.UpdateOrderStatus)
		}
	}

	return router
}
