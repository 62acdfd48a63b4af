package types

// Nutrition holds the macro totals for a meal or a full day.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Meal represents a single recipe inside a plan.
type Meal struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Ingredients     []string  `json:"ingredients"`
	Instructions    []string  `json:"instructions"`
	NutritionalInfo Nutrition `json:"nutritionalInfo"`
	Tags            []string  `json:"tags"`
	PrepTime        float64   `json:"prepTime"`
}

// MealSlots groups a day's meals by slot.
type MealSlots struct {
	Breakfast []Meal `json:"breakfast"`
	Lunch     []Meal `json:"lunch"`
	Dinner    []Meal `json:"dinner"`
	Snacks    []Meal `json:"snacks"`
}

// MealPlan is the structured result of a generation request. GeneratedOn is
// whatever ISO string the model produced; the extractor backfills it when the
// model omits it.
type MealPlan struct {
	ID             string    `json:"id"`
	Meals          MealSlots `json:"meals"`
	Summary        string    `json:"summary"`
	TotalNutrition Nutrition `json:"totalNutrition"`
	GeneratedOn    string    `json:"generatedOn"`
}

// AllMeals flattens the plan's meals across every slot.
func (p *MealPlan) AllMeals() []Meal {
	out := make([]Meal, 0, len(p.Meals.Breakfast)+len(p.Meals.Lunch)+len(p.Meals.Dinner)+len(p.Meals.Snacks))
	out = append(out, p.Meals.Breakfast...)
	out = append(out, p.Meals.Lunch...)
	out = append(out, p.Meals.Dinner...)
	out = append(out, p.Meals.Snacks...)
	return out
}

// Preferences is the user-supplied preference record. Values are either a
// string or a list of strings (multi-select fields such as health goals).
type Preferences map[string]interface{}

// Get returns the named option as a string. Multi-select values are joined
// with ", "; absent or empty options return "".
func (p Preferences) Get(name string) string {
	v, ok := p[name]
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return joinNonEmpty(val)
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return joinNonEmpty(parts)
	default:
		return ""
	}
}

func joinNonEmpty(parts []string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
