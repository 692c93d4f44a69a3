package errors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitError represents a standardized 429 Too Many Requests response.
type RateLimitError struct {
	Error    string    `json:"error"`
	Period   string    `json:"period"` // calendar period the quota is keyed on, e.g. "2026-09"
	Limit    int       `json:"limit"`
	Used     int       `json:"used"`
	ResetsAt time.Time `json:"resets_at"`
}

// AbortWithRateLimit sends a 429 response with the RateLimitError and aborts the request.
func AbortWithRateLimit(c *gin.Context, err *RateLimitError) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, err)
}

// MonthlyQuotaExceeded creates a RateLimitError for monthly free-quota exhaustion.
func MonthlyQuotaExceeded(period string, limit, used int, resetsAt time.Time) *RateLimitError {
	return &RateLimitError{
		Error:    "monthly free generation limit reached",
		Period:   period,
		Limit:    limit,
		Used:     used,
		ResetsAt: resetsAt,
	}
}

// Pipeline error sentinels shared across packages.
type sentinelError string

func (e sentinelError) Error() string { return string(e) }

const (
	// ErrMissingCredentials indicates the upstream credential is unconfigured.
	// Fatal for the request, surfaced as 500, never retried.
	ErrMissingCredentials = sentinelError("upstream credentials missing")

	// ErrUpstreamCallFailed indicates a network failure or non-2xx from the provider.
	ErrUpstreamCallFailed = sentinelError("upstream call failed")

	// ErrMalformedUpstreamOutput indicates the provider response could not be
	// parsed into a JSON array even after sanitization.
	ErrMalformedUpstreamOutput = sentinelError("malformed upstream output")
)
