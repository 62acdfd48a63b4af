package service

import (
	"fmt"
	"strings"

	"github.com/mealforge/backend/internal/types"
)

// Default phrases substituted for absent preference fields.
const (
	defaultDietaryPrefs   = "None specified"
	defaultAllergies      = "None specified"
	defaultCalorieGoal    = "Balanced diet"
	defaultMealCount      = "3"
	defaultCookingSkill   = "Intermediate"
	defaultAdditionalInfo = "None provided"
)

const planSchemaInstructions = `Please provide the meal plan in JSON format with the following structure:
{
  "id": "unique-id",
  "meals": {
    "breakfast": [
      {
        "id": "unique-breakfast-id",
        "name": "Name of the meal",
        "description": "Brief description",
        "ingredients": ["ingredient 1", "ingredient 2", ...],
        "instructions": ["step 1", "step 2", ...],
        "nutritionalInfo": {
          "calories": number,
          "protein": number,
          "carbs": number,
          "fat": number
        },
        "tags": ["tag1", "tag2", ...],
        "prepTime": number (in minutes)
      }
    ],
    "lunch": [...],
    "dinner": [...],
    "snacks": [...]
  },
  "summary": "Brief summary of the meal plan",
  "totalNutrition": {
    "calories": number,
    "protein": number,
    "carbs": number,
    "fat": number
  },
  "generatedOn": "current-date-iso-string"
}

Ensure all values are realistic, with accurate nutritional information. Make sure to properly close all JSON arrays and objects.

Include a variety of recipes that align with the preferences. If the user has specified a calorie goal, make sure the total daily calories approximate that goal.

For snacks, include 2-3 options if the meal count is 5 or higher. Otherwise, include 0-1 snack options.

Make sure all field names are exactly as specified above, with no additional fields.`

// BuildMealPlanPrompt turns a preference record into the generation prompt.
// Absent fields get descriptive defaults so the instruction is never empty.
// Deterministic for a given record.
func BuildMealPlanPrompt(prefs types.Preferences) string {
	return fmt.Sprintf(`Generate a detailed meal plan based on the following preferences:

Dietary Preferences: %s
Allergies or Restrictions: %s
Daily Calorie Goal: %s
Meals Per Day: %s
Cooking Skill Level: %s
Additional Information: %s

%s`,
		prefOrDefault(prefs, "dietaryPreferences", defaultDietaryPrefs),
		prefOrDefault(prefs, "allergies", defaultAllergies),
		prefOrDefault(prefs, "calorieGoal", defaultCalorieGoal),
		prefOrDefault(prefs, "mealCount", defaultMealCount),
		prefOrDefault(prefs, "cookingSkill", defaultCookingSkill),
		prefOrDefault(prefs, "additionalInfo", defaultAdditionalInfo),
		planSchemaInstructions,
	)
}

// BuildCustomMealPlanPrompt appends the user's verbatim instructions after the
// base prompt and restates the schema constraint. Used for the "custom model"
// path, which has no dedicated adapter.
func BuildCustomMealPlanPrompt(prefs types.Preferences, instructions string) string {
	base := BuildMealPlanPrompt(prefs)
	instructions = strings.TrimSpace(instructions)
	if instructions == "" {
		return base
	}
	return base + fmt.Sprintf(`

Additional custom instructions from the user, to be followed as closely as possible:
%s

The response must still be a single JSON object conforming exactly to the structure specified above.`, instructions)
}

func prefOrDefault(prefs types.Preferences, name, fallback string) string {
	if v := strings.TrimSpace(prefs.Get(name)); v != "" {
		return v
	}
	return fallback
}
