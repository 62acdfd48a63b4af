package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mealforge/backend/internal/types"
)

// Grocery categories used to group list items in the shopping view.
const (
	CategoryProduce = "produce"
	CategoryDairy   = "dairy"
	CategoryMeat    = "meat"
	CategoryBakery  = "bakery"
	CategoryPantry  = "pantry"
	CategoryFrozen  = "frozen"
	CategoryOther   = "other"
)

var categoryPatterns = []struct {
	category string
	pattern  *regexp.Regexp
}{
	{CategoryProduce, regexp.MustCompile(`(?i)\b(fruit|apple|banana|berry|orange|lemon|lime|vegetable|lettuce|spinach|kale|carrot|broccoli|onion|garlic|potato|tomato|pepper)\b`)},
	{CategoryDairy, regexp.MustCompile(`(?i)\b(milk|cheese|yogurt|cream|butter|egg)\b`)},
	{CategoryMeat, regexp.MustCompile(`(?i)\b(chicken|beef|pork|turkey|fish|salmon|shrimp|meat|sausage)\b`)},
	{CategoryBakery, regexp.MustCompile(`(?i)\b(bread|roll|bun|bagel|muffin|pastry|cake)\b`)},
	{CategoryPantry, regexp.MustCompile(`(?i)\b(rice|pasta|bean|lentil|flour|sugar|oil|vinegar|sauce|spice|herb|canned|jar|can)\b`)},
	{CategoryFrozen, regexp.MustCompile(`(?i)\b(frozen|ice|pizza)\b`)},
}

// CategorizeIngredient maps a free-text ingredient onto a grocery category
// using keyword rules. The first matching category wins.
func CategorizeIngredient(ingredient string) string {
	for _, cp := range categoryPatterns {
		if cp.pattern.MatchString(ingredient) {
			return cp.category
		}
	}
	return CategoryOther
}

// GroceryItem is one entry on a user's shopping list.
type GroceryItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Checked  bool   `json:"checked"`
	Quantity string `json:"quantity,omitempty"`
}

// NewGroceryItem builds a list entry from an ingredient string.
func NewGroceryItem(ingredient string) GroceryItem {
	return GroceryItem{
		ID:       uuid.New().String(),
		Name:     ingredient,
		Category: CategorizeIngredient(ingredient),
	}
}

// GroceryService keeps one shopping list per user in Redis.
type GroceryService struct {
	redis *redis.Client
	plans *PlanService
}

// NewGroceryService creates a grocery list service. plans is used to pull
// ingredients out of stored meal plans.
func NewGroceryService(redisClient *redis.Client, plans *PlanService) *GroceryService {
	return &GroceryService{redis: redisClient, plans: plans}
}

func groceryKey(userID string) string {
	return fmt.Sprintf("grocery:list:%s", userID)
}

// GetList returns the user's list. A user with no list gets an empty one.
func (s *GroceryService) GetList(ctx context.Context, userID string) ([]GroceryItem, error) {
	data, err := s.redis.Get(ctx, groceryKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []GroceryItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load grocery list: %w", err)
	}

	var items []GroceryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grocery list: %w", err)
	}
	return items, nil
}

// maxListRetries bounds the optimistic-concurrency retry loop on list updates.
const maxListRetries = 100

// mutate applies fn to the user's list under a WATCH on the list key, retrying
// when a concurrent writer invalidates the read, so two simultaneous updates
// from one user cannot drop each other. Returns the list as written.
func (s *GroceryService) mutate(ctx context.Context, userID string, fn func([]GroceryItem) ([]GroceryItem, error)) ([]GroceryItem, error) {
	key := groceryKey(userID)

	var result []GroceryItem
	for attempt := 0; attempt < maxListRetries; attempt++ {
		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			var items []GroceryItem
			data, err := tx.Get(ctx, key).Bytes()
			switch {
			case errors.Is(err, redis.Nil):
				items = []GroceryItem{}
			case err != nil:
				return fmt.Errorf("failed to load grocery list: %w", err)
			default:
				if err := json.Unmarshal(data, &items); err != nil {
					return fmt.Errorf("failed to unmarshal grocery list: %w", err)
				}
			}

			updated, err := fn(items)
			if err != nil {
				return err
			}

			payload, err := json.Marshal(updated)
			if err != nil {
				return fmt.Errorf("failed to marshal grocery list: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, payload, 0)
				return nil
			})
			if err == nil {
				result = updated
			}
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("failed to update grocery list: too many concurrent changes")
}

// AddItem appends a manually entered item and returns it.
func (s *GroceryService) AddItem(ctx context.Context, userID, name, quantity string) (*GroceryItem, error) {
	item := NewGroceryItem(name)
	item.Quantity = quantity

	_, err := s.mutate(ctx, userID, func(items []GroceryItem) ([]GroceryItem, error) {
		return append(items, item), nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ToggleItem flips an item's checked state.
func (s *GroceryService) ToggleItem(ctx context.Context, userID, itemID string) error {
	_, err := s.mutate(ctx, userID, func(items []GroceryItem) ([]GroceryItem, error) {
		for i := range items {
			if items[i].ID == itemID {
				items[i].Checked = !items[i].Checked
				return items, nil
			}
		}
		return nil, fmt.Errorf("grocery item %s not found", itemID)
	})
	return err
}

// RemoveItem deletes one item from the list.
func (s *GroceryService) RemoveItem(ctx context.Context, userID, itemID string) error {
	_, err := s.mutate(ctx, userID, func(items []GroceryItem) ([]GroceryItem, error) {
		for i := range items {
			if items[i].ID == itemID {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("grocery item %s not found", itemID)
	})
	return err
}

// ClearList deletes the user's entire list.
func (s *GroceryService) ClearList(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, groceryKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear grocery list: %w", err)
	}
	return nil
}

// ImportPlan merges every ingredient of a stored meal plan into the user's
// list, skipping ingredients already present (case-insensitive) so importing
// the same plan twice does not duplicate entries. Returns the updated list.
func (s *GroceryService) ImportPlan(ctx context.Context, userID, planID string) ([]GroceryItem, error) {
	record, err := s.plans.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	plan := types.MealPlan(record.PlanData)

	return s.mutate(ctx, userID, func(items []GroceryItem) ([]GroceryItem, error) {
		existing := make(map[string]bool, len(items))
		for _, item := range items {
			existing[strings.ToLower(item.Name)] = true
		}

		for _, meal := range plan.AllMeals() {
			for _, ingredient := range meal.Ingredients {
				key := strings.ToLower(ingredient)
				if existing[key] {
					continue
				}
				existing[key] = true
				items = append(items, NewGroceryItem(ingredient))
			}
		}
		return items, nil
	})
}
