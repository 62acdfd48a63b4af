package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mealforge/backend/config"
	"github.com/mealforge/backend/internal/api"
	"github.com/mealforge/backend/internal/database"
	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/router"
	"github.com/mealforge/backend/internal/server"
	"github.com/mealforge/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db.Gorm); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	authService := service.NewAuthService(db.Gorm, cfg.JWTSecret)
	planService := service.NewPlanService(db.Gorm)
	planner := service.NewPlannerService(
		service.NewProviderRegistry(cfg),
		service.NewMealPlanExtractor(),
		planService,
	)
	groceryService := service.NewGroceryService(redisClient, planService)
	storeService := service.NewStoreService(db.Gorm)

	engine := router.SetupRouter(router.Handlers{
		Auth:              api.NewAuthHandler(authService),
		MealPlan:          api.NewMealPlanHandler(planner, planService),
		Grocery:           api.NewGroceryHandler(groceryService),
		Store:             api.NewStoreHandler(storeService),
		Health:            api.NewHealthHandler(db, redisClient),
		AuthService:       authService,
		GenerationLimiter: middleware.NewGenerationRateLimiter(redisClient),
	})

	srv := server.New(engine, cfg.ServerHost, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s...", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
