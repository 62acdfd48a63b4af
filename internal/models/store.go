package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is a grocery store managed by an owner account.
type Store struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	Phone     string         `gorm:"size:32" json:"phone"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// InventoryItem is one stocked product in a store.
type InventoryItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// OrderItem is one requested line in a customer order.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// JSONBOrderItems stores order lines as a JSONB column.
type JSONBOrderItems []OrderItem

// Value implements the driver.Valuer interface.
func (o JSONBOrderItems) Value() (driver.Value, error) {
	if len(o) == 0 {
		return "[]", nil
	}
	return json.Marshal(o)
}

// Scan implements the sql.Scanner interface.
func (o *JSONBOrderItems) Scan(value interface{}) error {
	if value == nil {
		*o = JSONBOrderItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONBOrderItems: %T", value)
	}

	return json.Unmarshal(bytes, o)
}

// Order statuses move pending -> accepted -> fulfilled, or to rejected.
const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusFulfilled = "fulfilled"
	OrderStatusRejected  = "rejected"
)

// Order is a customer request against a store's inventory.
type Order struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	StoreID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id"`
	CustomerID string          `gorm:"size:64;not null;index" json:"customer_id"`
	Items      JSONBOrderItems `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	Note       string          `gorm:"type:text" json:"note"`
	Status     string          `gorm:"size:32;not null;default:'pending'" json:"status"`
}

func (ord *Order) BeforeCreate(tx *gorm.DB) error {
	if ord.ID == uuid.Nil {
		ord.ID = uuid.New()
	}
	return nil
}
