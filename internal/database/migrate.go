package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/models"
)

// RunMigrations brings the schema up to date. GORM auto-migration covers both
// the Postgres deployment and the in-memory SQLite databases the tests use.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.MealPlanRecord{},
		&models.Store{},
		&models.InventoryItem{},
		&models.Order{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
