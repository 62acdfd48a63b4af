package testhelpers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/service"
)

// CreateTestUserAndToken registers a user and returns its ID plus a valid
// bearer token.
func CreateTestUserAndToken(t *testing.T, db *gorm.DB, auth *service.AuthService, email string) (string, string) {
	t.Helper()

	token, err := auth.Register(context.Background(), "Test User", email, "password123")
	require.NoError(t, err)

	userID, err := auth.ValidateToken(token)
	require.NoError(t, err)
	return userID.String(), token
}

// PerformRequest runs one request through the router and records the result.
// body is JSON-marshalled when non-nil; token, when non-empty, is sent as a
// bearer credential.
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}


// DecodeJSON unmarshals a recorded response body.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// FakeProvider is a canned Provider implementation for planner tests.
type FakeProvider struct {
	ProviderName string
	Response     string
	Err          error
	Prompts      []string
}

func (f *FakeProvider) Name() string {
	if f.ProviderName == "" {
		return "fake"
	}
	return f.ProviderName
}

func (f *FakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}
