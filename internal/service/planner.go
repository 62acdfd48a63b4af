package service

import (
	"context"
	"log"

	"github.com/mealforge/backend/internal/types"
)

// AnonymousUserID marks a request with no session; plans generated for it
// are returned but never persisted.
const AnonymousUserID = "anonymous"

// PlanSink persists generated plans. Failures are best-effort: the planner
// logs them and still returns the plan to the caller.
type PlanSink interface {
	SavePlan(ctx context.Context, userID string, plan *types.MealPlan) error
}

// PlannerService orchestrates one generation request: select the provider,
// build the prompt, call the model, extract the plan, persist best-effort.
// It holds no per-request state and is safe for concurrent use.
type PlannerService struct {
	registry  *ProviderRegistry
	extractor *MealPlanExtractor
	sink      PlanSink
}

// NewPlannerService creates a planner. sink may be nil, in which case no
// plan is ever persisted.
func NewPlannerService(registry *ProviderRegistry, extractor *MealPlanExtractor, sink PlanSink) *PlannerService {
	return &PlannerService{
		registry:  registry,
		extractor: extractor,
		sink:      sink,
	}
}

// GenerationResult is a generated plan plus provenance: which provider
// actually ran and whether that was a credential fallback.
type GenerationResult struct {
	Plan     *types.MealPlan
	Provider string
	Fallback bool
}

// GenerateMealPlan runs the full pipeline for one request. The stages run
// sequentially; each depends on the previous one's output. Any provider,
// extraction, or parse failure aborts the request, while a persistence
// failure is logged and the plan is still returned.
func (s *PlannerService) GenerateMealPlan(ctx context.Context, prefs types.Preferences, userID string) (*GenerationResult, error) {
	if prefs == nil {
		prefs = types.Preferences{}
	}
	if userID == "" {
		userID = AnonymousUserID
	}

	choice := ParseModelChoice(prefs.Get("modelChoice"))
	provider, fellBack, err := s.registry.Select(choice)
	if err != nil {
		return nil, err
	}

	var prompt string
	if choice == ModelCustom {
		prompt = BuildCustomMealPlanPrompt(prefs, prefs.Get("customInstructions"))
	} else {
		prompt = BuildMealPlanPrompt(prefs)
	}

	raw, err := provider.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	plan, err := s.extractor.Extract(raw)
	if err != nil {
		return nil, err
	}

	if userID != AnonymousUserID && s.sink != nil {
		if err := s.sink.SavePlan(ctx, userID, plan); err != nil {
			log.Printf("failed to store meal plan for user %s: %v", userID, err)
		}
	}

	return &GenerationResult{
		Plan:     plan,
		Provider: provider.Name(),
		Fallback: fellBack,
	}, nil
}
