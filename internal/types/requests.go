package types

// GenerateMealPlanRequest is the inbound payload for plan generation.
// UserID is "anonymous" when no session exists; an authenticated request
// overrides it with the token's user ID.
type GenerateMealPlanRequest struct {
	Preferences Preferences `json:"preferences"`
	UserID      string      `json:"userId"`
}

// GenerateMealPlanResponse is the success envelope for plan generation.
type GenerateMealPlanResponse struct {
	MealPlan *MealPlan `json:"mealPlan"`
	Success  bool      `json:"success"`
	Provider string    `json:"provider,omitempty"`
	Fallback bool      `json:"fallback,omitempty"`
}

// ErrorResponse is the failure envelope shared by all handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
