package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GenerationRequests counts /generate calls by outcome.
// Outcomes: ok, quota_exceeded, config_error, bad_request, pipeline_error.
var GenerationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "namegen_generation_requests_total",
	Help: "Total name generation requests by outcome.",
}, []string{"outcome"})

// PipelineTier counts which tier of the degrade ladder produced the result.
// Tiers: primary, safe_retry, failed.
var PipelineTier = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "namegen_pipeline_tier_total",
	Help: "Generation pipeline outcomes by fallback tier.",
}, []string{"tier"})

// RecordsFiltered counts records dropped by the policy filter, by rule.
// Rules: denylist, diversity_cap.
var RecordsFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "namegen_records_filtered_total",
	Help: "Name records dropped by policy filtering, by rule.",
}, []string{"rule"})

// TTSRequests counts /tts calls by outcome.
// Outcomes: ok, rejected, upstream_error.
var TTSRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "namegen_tts_requests_total",
	Help: "Total TTS proxy requests by outcome.",
}, []string{"outcome"})

// Handler exposes the Prometheus registry as a gin handler.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
