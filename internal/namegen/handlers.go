package namegen

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanlabs/namegen-proxy/internal/errors"
	"github.com/hanlabs/namegen-proxy/internal/logger"
	"github.com/hanlabs/namegen-proxy/internal/metrics"
	"github.com/hanlabs/namegen-proxy/internal/quota"
)

// Handler serves the generation endpoint.
type Handler struct {
	logger   *logger.Logger
	pipeline *Pipeline
	client   *Client
	quota    *quota.Service
}

func NewHandler(pipeline *Pipeline, client *Client, quotaService *quota.Service, logger *logger.Logger) *Handler {
	return &Handler{
		logger:   logger.WithComponent("namegen_handler"),
		pipeline: pipeline,
		client:   client,
		quota:    quotaService,
	}
}

// Generate runs the name generation pipeline for the caller's preferences.
//
// Endpoint: POST /generate
// Body: Preferences-shaped JSON; unknown fields are ignored.
//
// Returns 200 with a record array on success, including the degraded empty
// array when the upstream is unusable. 500 when the upstream credential is
// unconfigured, 502 on unexpected pipeline failure. Quota rejection (429)
// happens in middleware before this handler runs.
func (h *Handler) Generate(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context())

	if !h.client.HasCredentials() {
		metrics.GenerationRequests.WithLabelValues("config_error").Inc()
		errors.Internal(c, "ZHIPU_API_KEY missing", nil)
		return
	}

	var prefs Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		metrics.GenerationRequests.WithLabelValues("bad_request").Inc()
		errors.AbortWithBadRequest(c, "invalid request body", nil)
		return
	}
	prefs.ApplyDefaults()

	log.Info("generating names",
		slog.Int("count", prefs.Count),
		slog.String("lang", prefs.Lang),
		slog.Int("styles", len(prefs.Styles)))

	records, err := h.pipeline.Generate(c.Request.Context(), prefs)
	if err != nil {
		metrics.GenerationRequests.WithLabelValues("pipeline_error").Inc()
		log.Error("generation failed", slog.String("error", err.Error()))
		errors.BadGateway(c, "generation failed", nil)
		return
	}

	h.quota.RecordUse(c)
	metrics.GenerationRequests.WithLabelValues("ok").Inc()

	log.Info("generation complete", slog.Int("records", len(records)))
	c.JSON(http.StatusOK, records)
}
