package quota

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hanlabs/namegen-proxy/internal/errors"
	"github.com/hanlabs/namegen-proxy/internal/logger"
	"github.com/hanlabs/namegen-proxy/internal/metrics"
)

// RequireQuota rejects non-member callers who have exhausted their monthly
// free allowance. Counting happens after a successful generation, not here,
// so a failed request does not consume quota.
func RequireQuota(service *Service, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logger.WithClientKey(c.Request.Context(), service.ClientKey(c))
		c.Request = c.Request.WithContext(ctx)

		allowed, used, period := service.Allow(c)
		if !allowed {
			log.WithContext(ctx).WithComponent("quota").Warn("monthly limit reached",
				slog.String("period", period),
				slog.Int("used", used),
				slog.Int("limit", service.Limit()))
			metrics.GenerationRequests.WithLabelValues("quota_exceeded").Inc()
			errors.AbortWithRateLimit(c, errors.MonthlyQuotaExceeded(
				period, service.Limit(), used, PeriodResetTime(time.Now())))
			return
		}

		c.Next()
	}
}

// RequireMember rejects callers without an active membership.
func RequireMember(service *Service, feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !service.IsMember(c) {
			errors.AbortWithForbidden(c, errors.MembersOnly(feature))
			return
		}
		c.Next()
	}
}
