package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cricket-registration-backend/internal/api/middleware"
	"cricket-registration-backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Environment:      "development",
		JWTSecret:        "test-secret",
		SessionTTL:       time.Hour,
		PaymentProvider:  "local",
		PaymentKeyID:     "rzp_test_local",
		RosterMinPlayers: 11,
		RosterMaxPlayers: 15,
		PlayerMinAge:     16,
		PlayerMaxAge:     50,
		PhotoMaxBytes:    5 * 1024 * 1024,
		AllowedOrigins:   []string{"http://localhost:3000"},
	}

	// Repositories only touch the gateway when a query runs
	deps, err := NewDependencies(nil, cfg, nil)
	require.NoError(t, err)
	return SetupRoutes(deps, cfg, "test")
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestSetupRoutes(t *testing.T) {
	router := testRouter(t)

	t.Run("liveness", func(t *testing.T) {
		recorder := serve(router, http.MethodGet, "/health/live")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("public tournament config", func(t *testing.T) {
		recorder := serve(router, http.MethodGet, "/api/tournament-config")
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("session required", func(t *testing.T) {
		for _, route := range []struct{ method, path string }{
			{http.MethodGet, "/api/auth/me"},
			{http.MethodPost, "/api/teams"},
			{http.MethodGet, "/api/teams/mine"},
			{http.MethodPost, "/api/registrations"},
			{http.MethodPost, "/api/payment/create-order"},
			{http.MethodGet, "/api/admin/stats"},
		} {
			recorder := serve(router, route.method, route.path)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code, route.path)
		}
	})

	t.Run("verify needs no session", func(t *testing.T) {
		recorder := serve(router, http.MethodPost, "/api/payment/verify")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		recorder := serve(router, http.MethodGet, "/api/nope")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "not_found")
	})
}
