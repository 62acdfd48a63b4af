package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/models"
	"github.com/mealforge/backend/internal/types"
)

// PlanService manages persisted meal-plan records.
type PlanService struct {
	db *gorm.DB
}

// NewPlanService creates a plan store backed by the given database.
func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{db: db}
}

// SavePlan inserts a new record for the user. The record gets its own ID
// rather than reusing the model-supplied plan id, which is not trustworthy as
// a primary key (models routinely echo the literal "unique-id" from the
// schema example). A user's first plan is marked active immediately; the count
// and insert share one transaction so two concurrent first saves cannot both
// see an empty table and both come out active.
func (s *PlanService) SavePlan(ctx context.Context, userID string, plan *types.MealPlan) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MealPlanRecord{}).
			Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count existing plans: %w", err)
		}

		record := models.MealPlanRecord{
			ID:        uuid.New().String(),
			UserID:    userID,
			Title:     fmt.Sprintf("Meal Plan - %s", time.Now().Format("Jan 2, 2006")),
			PlanData:  models.JSONBPlan(*plan),
			CreatedAt: time.Now(),
			IsActive:  count == 0,
		}

		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to store meal plan: %w", err)
		}
		return nil
	})
}

// ListPlans returns the user's plans, newest first.
func (s *PlanService) ListPlans(ctx context.Context, userID string) ([]models.MealPlanRecord, error) {
	var records []models.MealPlanRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	return records, nil
}

// GetPlan returns one of the user's plans by ID.
func (s *PlanService) GetPlan(ctx context.Context, userID, planID string) (*models.MealPlanRecord, error) {
	var record models.MealPlanRecord
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plan: %w", err)
	}
	return &record, nil
}

// GetActivePlan returns the user's currently active plan, if any.
func (s *PlanService) GetActivePlan(ctx context.Context, userID string) (*models.MealPlanRecord, error) {
	var record models.MealPlanRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active meal plan: %w", err)
	}
	return &record, nil
}

// SetActive makes the given plan the user's single active plan. The clear and
// set writes run inside one transaction so a crash or a concurrent activation
// cannot leave zero or two plans active.
func (s *PlanService) SetActive(ctx context.Context, userID, planID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MealPlanRecord{}).
			Where("user_id = ?", userID).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to clear active plans: %w", err)
		}

		res := tx.Model(&models.MealPlanRecord{}).
			Where("id = ? AND user_id = ?", planID, userID).
			Update("is_active", true)
		if res.Error != nil {
			return fmt.Errorf("failed to activate plan: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrPlanNotFound
		}
		return nil
	})
}

// DeletePlan removes one of the user's plans.
func (s *PlanService) DeletePlan(ctx context.Context, userID, planID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).
		Delete(&models.MealPlanRecord{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete meal plan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}
