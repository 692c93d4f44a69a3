package diagnostics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hanlabs/namegen-proxy/internal/logger"
	"github.com/hanlabs/namegen-proxy/internal/quota"
)

const pingTimeout = 8 * time.Second

// Handler serves the debug endpoints.
type Handler struct {
	logger     *logger.Logger
	recorder   *Recorder
	quota      *quota.Service
	hasAPIKey  func() bool
	pingURL    string
	httpClient *http.Client
}

func NewHandler(recorder *Recorder, quotaService *quota.Service, hasAPIKey func() bool, pingURL string, logger *logger.Logger) *Handler {
	return &Handler{
		logger:     logger.WithComponent("debug_handler"),
		recorder:   recorder,
		quota:      quotaService,
		hasAPIKey:  hasAPIKey,
		pingURL:    pingURL,
		httpClient: &http.Client{Timeout: pingTimeout},
	}
}

// Status reports credential presence, the caller's membership and usage, and
// the last upstream call outcome.
//
// Endpoint: GET /debug/status
func (h *Handler) Status(c *gin.Context) {
	status, errSnippet := h.recorder.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"has_api_key":          h.hasAPIKey(),
		"member":               h.quota.IsMember(c),
		"used_today":           h.quota.Used(c),
		"limit_per_day":        h.quota.Limit(),
		"last_upstream_status": status,
		"last_error_snippet":   errSnippet,
	})
}

// Ping probes the LLM provider's endpoint for reachability. It never fails
// the request; unreachability is reported in the body.
//
// Endpoint: GET /debug/ping
func (h *Handler) Ping(c *gin.Context) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, h.pingURL, nil)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"reachable": false, "error": err.Error()})
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"reachable": false, "error": err.Error()})
		return
	}
	defer resp.Body.Close()

	c.JSON(http.StatusOK, gin.H{"reachable": true, "status": resp.StatusCode})
}
