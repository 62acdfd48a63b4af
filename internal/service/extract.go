package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mealforge/backend/internal/types"
)

// MealPlanExtractor locates the JSON object embedded in a model's free-text
// reply and decodes it into a plan. Models are instructed to return bare
// JSON, but many wrap it in prose or markdown fences, so the extractor scans
// for the first decodable object instead of trusting the whole reply.
type MealPlanExtractor struct {
	now func() time.Time
}

// NewMealPlanExtractor creates an extractor using wall-clock time for
// timestamp backfill.
func NewMealPlanExtractor() *MealPlanExtractor {
	return &MealPlanExtractor{now: time.Now}
}

// Extract scans raw for a JSON object, decodes it, and backfills generatedOn
// with the current UTC time when the model omitted it. Boundary detection
// decodes each '{' candidate into a raw message, which succeeds for any
// syntactically valid object, so the outermost object always wins; only then
// is the object unmarshalled into the plan struct, and a type mismatch there
// is a hard failure rather than a reason to scan on to an inner object.
// It distinguishes two failures: ErrNoJSON when the text contains no opening
// brace at all, and ErrInvalidJSON when an object exists but does not decode.
// No schema validation beyond that is performed; a plan with missing meal or
// nutrition fields passes through.
func (e *MealPlanExtractor) Extract(raw string) (*types.MealPlan, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, fmt.Errorf("%w: %.80q", ErrNoJSON, raw)
	}

	var lastErr error
	for i := start; i >= 0 && i < len(raw); {
		var obj json.RawMessage
		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		if err := dec.Decode(&obj); err != nil {
			lastErr = err
		} else {
			var plan types.MealPlan
			if err := json.Unmarshal(obj, &plan); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
			e.backfill(&plan)
			return &plan, nil
		}

		next := strings.IndexByte(raw[i+1:], '{')
		if next < 0 {
			break
		}
		i += 1 + next
	}

	return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, lastErr)
}

// backfill sets generatedOn only when absent, so re-extracting a complete
// plan is a no-op.
func (e *MealPlanExtractor) backfill(plan *types.MealPlan) {
	if plan.GeneratedOn == "" {
		plan.GeneratedOn = e.now().UTC().Format(time.RFC3339)
	}
}
