package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlanJSON = `{
  "id": "plan-1",
  "meals": {
    "breakfast": [{
      "id": "b-1",
      "name": "Oatmeal with Berries",
      "description": "Warm oats topped with mixed berries.",
      "ingredients": ["1 cup oats", "1/2 cup berries"],
      "instructions": ["Cook the oats.", "Top with berries."],
      "nutritionalInfo": {"calories": 320, "protein": 10, "carbs": 55, "fat": 6},
      "tags": ["Vegetarian", "Quick"],
      "prepTime": 10
    }],
    "lunch": [],
    "dinner": [],
    "snacks": []
  },
  "summary": "A light day of meals.",
  "totalNutrition": {"calories": 320, "protein": 10, "carbs": 55, "fat": 6},
  "generatedOn": "2025-03-01T10:00:00Z"
}`

func fixedExtractor(t *testing.T) (*MealPlanExtractor, time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &MealPlanExtractor{now: func() time.Time { return now }}, now
}

func TestExtractPlainJSON(t *testing.T) {
	e, _ := fixedExtractor(t)

	plan, err := e.Extract(samplePlanJSON)
	require.NoError(t, err)
	assert.Equal(t, "plan-1", plan.ID)
	require.Len(t, plan.Meals.Breakfast, 1)
	assert.Equal(t, "Oatmeal with Berries", plan.Meals.Breakfast[0].Name)
	assert.Equal(t, 320.0, plan.TotalNutrition.Calories)
	// generatedOn was present, so it is left alone.
	assert.Equal(t, "2025-03-01T10:00:00Z", plan.GeneratedOn)
}

func TestExtractJSONEmbeddedInProse(t *testing.T) {
	e, _ := fixedExtractor(t)
	raw := "Here is your meal plan!\n```json\n" + samplePlanJSON + "\n```\nEnjoy your meals."

	plan, err := e.Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "plan-1", plan.ID)
	assert.Equal(t, "A light day of meals.", plan.Summary)
}

func TestExtractSkipsUndecodableBraces(t *testing.T) {
	e, _ := fixedExtractor(t)
	raw := "{this is not json at all} but this is: " + samplePlanJSON

	plan, err := e.Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "plan-1", plan.ID)
}

func TestExtractBackfillsMissingTimestamp(t *testing.T) {
	e, now := fixedExtractor(t)
	raw := `{"id": "plan-2", "summary": "No timestamp."}`

	plan, err := e.Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, now.Format(time.RFC3339), plan.GeneratedOn)
}

func TestExtractBackfillIsIdempotent(t *testing.T) {
	e, _ := fixedExtractor(t)

	first, err := e.Extract(samplePlanJSON)
	require.NoError(t, err)
	second, err := e.Extract(samplePlanJSON)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtractNoJSONInText(t *testing.T) {
	e, _ := fixedExtractor(t)

	plan, err := e.Extract("I'm sorry, I can't produce a meal plan right now.")
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestExtractMistypedFieldIsHardFailure(t *testing.T) {
	e, _ := fixedExtractor(t)
	// Well-formed JSON whose prepTime is a string instead of a number. The
	// plan must not come back empty; the type mismatch is a parse failure.
	raw := strings.Replace(samplePlanJSON, `"prepTime": 10`, `"prepTime": "ten minutes"`, 1)
	require.NotEqual(t, samplePlanJSON, raw)

	plan, err := e.Extract("Here you go:\n" + raw)
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestExtractInvalidJSON(t *testing.T) {
	e, _ := fixedExtractor(t)

	plan, err := e.Extract(`prefix {"id": "plan-3", "meals": } suffix`)
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}
