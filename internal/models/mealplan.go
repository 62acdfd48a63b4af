package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mealforge/backend/internal/types"
)

// JSONBPlan stores a full meal plan as a JSONB column.
type JSONBPlan types.MealPlan

// Value implements the driver.Valuer interface.
func (p JSONBPlan) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface.
func (p *JSONBPlan) Scan(value interface{}) error {
	if value == nil {
		*p = JSONBPlan{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONBPlan: %T", value)
	}

	return json.Unmarshal(bytes, p)
}

// MealPlanRecord is a persisted generation result. At most one record per
// user carries IsActive; the plans service enforces this transactionally.
type MealPlanRecord struct {
	ID        string    `gorm:"size:64;primary_key" json:"id"`
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	PlanData  JSONBPlan `gorm:"type:jsonb;not null" json:"plan_data"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `gorm:"not null;default:false" json:"is_active"`
}

func (MealPlanRecord) TableName() string {
	return "meal_plans"
}
