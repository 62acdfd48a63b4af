package service

import (
	"errors"
	"fmt"
)

// Errors surfaced by the generation pipeline. Provider failures carry the raw
// upstream payload; extraction and parse failures are distinguished so callers
// can tell "no JSON at all" from "JSON-shaped but invalid".
var (
	ErrNoJSON        = errors.New("no JSON object found in model response")
	ErrInvalidJSON   = errors.New("could not parse JSON object from model response")
	ErrNoProvider    = errors.New("no meal-plan provider is configured")
	ErrPlanNotFound  = errors.New("meal plan not found")
	ErrStoreNotFound = errors.New("store not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrNotOwner      = errors.New("store does not belong to this user")
	ErrInvalidStatus = errors.New("invalid order status")

	ErrInvalidTransition = errors.New("order status transition not allowed")
)

// ProviderError is a hard failure from a generative-AI endpoint: a non-2xx
// response or a response missing the expected content fields.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s API error: status=%d body=%s", e.Provider, e.Status, e.Body)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Body)
}
