package payment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanlabs/namegen-proxy/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: slog.LevelError, Format: "text"})
}

func newTestRouter(clientID, planID, provider string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(clientID, planID, provider, testLogger())
	router := gin.New()
	router.GET("/payment/config", h.Config)
	router.POST("/subscription/checkout", h.CheckoutSubscription)
	return router
}

func TestConfig_Enabled(t *testing.T) {
	router := newTestRouter("client-1", "plan-1", "lemon")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payment/config", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Enabled  bool   `json:"enabled"`
		ClientID string `json:"client_id"`
		PlanID   string `json:"plan_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Enabled)
	assert.Equal(t, "client-1", body.ClientID)
	assert.Equal(t, "plan-1", body.PlanID)
}

func TestConfig_DisabledWhenUnconfigured(t *testing.T) {
	for _, tc := range []struct {
		name     string
		clientID string
		planID   string
	}{
		{"no client id", "", "plan-1"},
		{"no plan id", "client-1", ""},
		{"neither", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(tc.clientID, tc.planID, "lemon")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payment/config", nil))

			require.Equal(t, http.StatusOK, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["enabled"])
			assert.NotContains(t, body, "client_id")
		})
	}
}

func TestCheckoutSubscription_NotImplemented(t *testing.T) {
	router := newTestRouter("client-1", "plan-1", "paddle")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/subscription/checkout", nil))

	require.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Contains(t, w.Body.String(), "checkout not configured for paddle")
}
