package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealforge/backend/internal/types"
)

func TestBuildMealPlanPromptDefaults(t *testing.T) {
	prompt := BuildMealPlanPrompt(types.Preferences{})

	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "Dietary Preferences: None specified")
	assert.Contains(t, prompt, "Allergies or Restrictions: None specified")
	assert.Contains(t, prompt, "Daily Calorie Goal: Balanced diet")
	assert.Contains(t, prompt, "Meals Per Day: 3")
	assert.Contains(t, prompt, "Cooking Skill Level: Intermediate")
	assert.Contains(t, prompt, "Additional Information: None provided")
}

func TestBuildMealPlanPromptDefaultsForNil(t *testing.T) {
	prompt := BuildMealPlanPrompt(nil)

	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "Dietary Preferences: None specified")
}

func TestBuildMealPlanPromptSubstitutesValues(t *testing.T) {
	prompt := BuildMealPlanPrompt(types.Preferences{
		"dietaryPreferences": "vegetarian",
		"calorieGoal":        "2000",
		"mealCount":          "5",
	})

	assert.Contains(t, prompt, "Dietary Preferences: vegetarian")
	assert.Contains(t, prompt, "Daily Calorie Goal: 2000")
	assert.Contains(t, prompt, "Meals Per Day: 5")
	// Untouched fields still get defaults.
	assert.Contains(t, prompt, "Cooking Skill Level: Intermediate")
}

func TestBuildMealPlanPromptMultiSelect(t *testing.T) {
	prompt := BuildMealPlanPrompt(types.Preferences{
		"dietaryPreferences": []string{"vegan", "low-sodium"},
	})

	assert.Contains(t, prompt, "Dietary Preferences: vegan, low-sodium")
}

func TestBuildMealPlanPromptStatesSchemaAndRules(t *testing.T) {
	prompt := BuildMealPlanPrompt(types.Preferences{})

	assert.Contains(t, prompt, `"generatedOn"`)
	assert.Contains(t, prompt, `"nutritionalInfo"`)
	assert.Contains(t, prompt, `"totalNutrition"`)
	assert.Contains(t, prompt, "include 2-3 options if the meal count is 5 or higher")
	assert.Contains(t, prompt, "approximate that goal")
}

func TestBuildMealPlanPromptDeterministic(t *testing.T) {
	prefs := types.Preferences{"dietaryPreferences": "keto", "mealCount": "4"}
	assert.Equal(t, BuildMealPlanPrompt(prefs), BuildMealPlanPrompt(prefs))
}

func TestBuildCustomMealPlanPrompt(t *testing.T) {
	prefs := types.Preferences{"dietaryPreferences": "pescatarian"}
	prompt := BuildCustomMealPlanPrompt(prefs, "Only use recipes from coastal Italy.")

	base := BuildMealPlanPrompt(prefs)
	assert.True(t, strings.HasPrefix(prompt, base))
	assert.Contains(t, prompt, "Only use recipes from coastal Italy.")
	// The schema constraint is restated after the custom instructions.
	assert.Contains(t, prompt[len(base):], "single JSON object")
}

func TestBuildCustomMealPlanPromptEmptyInstructions(t *testing.T) {
	prefs := types.Preferences{"mealCount": "3"}
	assert.Equal(t, BuildMealPlanPrompt(prefs), BuildCustomMealPlanPrompt(prefs, "   "))
}
