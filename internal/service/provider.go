package service

import (
	"context"
	"log"

	"github.com/mealforge/backend/config"
)

// ModelChoice identifies which generative-AI backend the requester asked for.
type ModelChoice string

const (
	ModelGemini ModelChoice = "gemini"
	ModelOpenAI ModelChoice = "openai"
	ModelClaude ModelChoice = "claude"
	// ModelCustom has no adapter of its own: it reuses the default provider
	// with the custom-instructions prompt variant.
	ModelCustom ModelChoice = "custom"

	// DefaultModel is used when the request names no model, an unknown one,
	// or one whose credential is not configured.
	DefaultModel = ModelGemini
)

// Provider sends a prompt to one hosted generative-AI endpoint and returns
// the raw text of the model's reply. Implementations perform no retries; any
// failure propagates immediately.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ParseModelChoice maps a request string onto the closed model enum.
func ParseModelChoice(s string) ModelChoice {
	switch ModelChoice(s) {
	case ModelGemini, ModelOpenAI, ModelClaude, ModelCustom:
		return ModelChoice(s)
	case "":
		return DefaultModel
	default:
		log.Printf("unknown model choice %q, using %s", s, DefaultModel)
		return DefaultModel
	}
}

// ProviderRegistry holds one adapter per provider with a configured
// credential and selects the adapter for a request.
type ProviderRegistry struct {
	providers map[ModelChoice]Provider
}

// NewProviderRegistry builds adapters for every provider whose API key is
// present in the configuration.
func NewProviderRegistry(cfg *config.Config) *ProviderRegistry {
	r := &ProviderRegistry{providers: make(map[ModelChoice]Provider)}
	if cfg.GeminiAPIKey != "" {
		r.Register(ModelGemini, NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiAPIURL))
	}
	if cfg.OpenAIAPIKey != "" {
		r.Register(ModelOpenAI, NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL))
	}
	if cfg.AnthropicAPIKey != "" {
		r.Register(ModelClaude, NewClaudeProvider(cfg.AnthropicAPIKey, cfg.AnthropicAPIURL))
	}
	return r
}

// Register adds or replaces the adapter for a model choice.
func (r *ProviderRegistry) Register(choice ModelChoice, p Provider) {
	r.providers[choice] = p
}

// Select returns the adapter to invoke for the requested model. A request for
// an unconfigured provider degrades to the default adapter rather than
// failing; the returned flag reports that fallback so callers can surface it.
// The "custom" choice always resolves to the default adapter and is not a
// fallback. Select fails only when the default provider itself is missing.
func (r *ProviderRegistry) Select(choice ModelChoice) (Provider, bool, error) {
	if choice != ModelCustom {
		if p, ok := r.providers[choice]; ok {
			return p, false, nil
		}
	}

	p, ok := r.providers[DefaultModel]
	if !ok {
		return nil, false, ErrNoProvider
	}
	if choice != ModelCustom && choice != DefaultModel {
		log.Printf("no credential configured for model %q, falling back to %s", choice, DefaultModel)
		return p, true, nil
	}
	return p, false, nil
}
