package middleware_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/service"
	"github.com/mealforge/backend/internal/testhelpers"
)

func setupAuthTest(t *testing.T) (*service.AuthService, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db, "test-secret")
	userID, token := testhelpers.CreateTestUserAndToken(t, db, auth, "mw@example.com")
	return auth, userID, token
}

func whoAmIRouter(auth *service.AuthService, required bool) *gin.Engine {
	r := gin.New()
	mw := middleware.OptionalAuth(auth)
	if required {
		mw = middleware.RequireAuth(auth)
	}
	r.GET("/whoami", mw, func(c *gin.Context) {
		id, ok := middleware.CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "authenticated": ok})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	auth, userID, token := setupAuthTest(t)
	r := whoAmIRouter(auth, true)

	w := testhelpers.PerformRequest(t, r, http.MethodGet, "/whoami", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testhelpers.PerformRequest(t, r, http.MethodGet, "/whoami", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testhelpers.PerformRequest(t, r, http.MethodGet, "/whoami", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID            string `json:"id"`
		Authenticated bool   `json:"authenticated"`
	}
	testhelpers.DecodeJSON(t, w, &resp)
	assert.True(t, resp.Authenticated)
	assert.Equal(t, userID, resp.ID)
}

func TestOptionalAuth(t *testing.T) {
	auth, userID, token := setupAuthTest(t)
	r := whoAmIRouter(auth, false)

	// Anonymous and bad-token requests both pass through unauthenticated.
	for _, tok := range []string{"", "garbage-token"} {
		w := testhelpers.PerformRequest(t, r, http.MethodGet, "/whoami", nil, tok)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Authenticated bool `json:"authenticated"`
		}
		testhelpers.DecodeJSON(t, w, &resp)
		assert.False(t, resp.Authenticated)
	}

	w := testhelpers.PerformRequest(t, r, http.MethodGet, "/whoami", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID            string `json:"id"`
		Authenticated bool   `json:"authenticated"`
	}
	testhelpers.DecodeJSON(t, w, &resp)
	assert.True(t, resp.Authenticated)
	assert.Equal(t, userID, resp.ID)
}
