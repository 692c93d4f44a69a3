package diagnostics

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
	"github.com/hanlabs/namegen-proxy/internal/quota"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: slog.LevelError, Format: "text"})
}

func newDebugRouter(recorder *Recorder, hasKey bool, pingURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	quotaSvc := quota.NewService(quota.NewMemoryStore(), quota.NewMemoryMemberStore(), 2, testLogger())
	h := NewHandler(recorder, quotaSvc, func() bool { return hasKey }, pingURL, testLogger())

	router := gin.New()
	router.GET("/debug/status", h.Status)
	router.GET("/debug/ping", h.Ping)
	return router
}

func TestStatus(t *testing.T) {
	recorder := NewRecorder()
	recorder.SetStatus(200)
	router := newDebugRouter(recorder, true, "http://unused")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		HasAPIKey          bool    `json:"has_api_key"`
		Member             bool    `json:"member"`
		UsedToday          int     `json:"used_today"`
		LimitPerDay        int     `json:"limit_per_day"`
		LastUpstreamStatus *int    `json:"last_upstream_status"`
		LastErrorSnippet   *string `json:"last_error_snippet"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.HasAPIKey)
	assert.False(t, body.Member)
	assert.Equal(t, 0, body.UsedToday)
	assert.Equal(t, 2, body.LimitPerDay)
	require.NotNil(t, body.LastUpstreamStatus)
	assert.Equal(t, 200, *body.LastUpstreamStatus)
	assert.Nil(t, body.LastErrorSnippet)
}

func TestPing_Reachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))
	t.Cleanup(upstream.Close)

	router := newDebugRouter(NewRecorder(), false, upstream.URL)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Reachable bool `json:"reachable"`
		Status    int  `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Reachable)
	assert.Equal(t, http.StatusMethodNotAllowed, body.Status, "any HTTP answer counts as reachable")
}

func TestPing_Unreachable(t *testing.T) {
	// A closed server is the cheapest guaranteed-dead address.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	router := newDebugRouter(NewRecorder(), false, dead.URL)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/ping", nil))

	require.Equal(t, http.StatusOK, w.Code, "ping never fails the request itself")
	var body struct {
		Reachable bool   `json:"reachable"`
		Error     string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Reachable)
	assert.NotEmpty(t, body.Error)
}
