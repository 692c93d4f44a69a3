package quota

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/hanlabs/namegen-proxy/internal/logger"
)

// Service answers quota and membership questions for a request.
type Service struct {
	store   Store
	members MemberStore
	limit   int
	logger  *logger.Logger
}

func NewService(store Store, members MemberStore, limit int, logger *logger.Logger) *Service {
	return &Service{
		store:   store,
		members: members,
		limit:   limit,
		logger:  logger.WithComponent("quota"),
	}
}

// ClientKey derives the quota key for the caller: the X-Forwarded-For header
// when present, otherwise the direct connection address.
func (s *Service) ClientKey(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return c.ClientIP()
}

// IsMember reports whether the caller holds a membership. An X-Member header
// is honored as-is; this is a known trust gap acceptable only for a
// single-process demo deployment.
func (s *Service) IsMember(c *gin.Context) bool {
	switch strings.ToLower(c.GetHeader("X-Member")) {
	case "1", "true", "yes":
		return true
	}
	return s.members.IsMember(s.ClientKey(c))
}

// Activate marks the caller's key as a member.
func (s *Service) Activate(c *gin.Context) {
	s.members.Activate(s.ClientKey(c))
}

// Limit returns the free-tier monthly request limit.
func (s *Service) Limit() int {
	return s.limit
}

// Used returns the caller's recorded request count for the current period.
func (s *Service) Used(c *gin.Context) int {
	return s.store.Count(CurrentPeriod(time.Now()), s.ClientKey(c))
}

// Allow reports whether the caller may issue a generation request now.
// Members are always allowed and never counted.
func (s *Service) Allow(c *gin.Context) (allowed bool, used int, period string) {
	period = CurrentPeriod(time.Now())
	used = s.store.Count(period, s.ClientKey(c))
	if s.IsMember(c) {
		return true, used, period
	}
	return used < s.limit, used, period
}

// RecordUse counts one successful generation against the caller's quota.
// Members are exempt.
func (s *Service) RecordUse(c *gin.Context) {
	if s.IsMember(c) {
		return
	}
	period := CurrentPeriod(time.Now())
	count := s.store.Increment(period, s.ClientKey(c))
	s.logger.Debug("quota incremented",
		slog.String("period", period),
		slog.Int("used", count),
		slog.Int("limit", s.limit))
}

// StartJanitor schedules a monthly prune of quota periods older than the
// retention window, bounding what the in-memory store holds on to.
// The returned cron is already started; stop it on shutdown.
func (s *Service) StartJanitor(retentionMonths int) *cron.Cron {
	c := cron.New()
	// 03:00 on the first of every month.
	_, err := c.AddFunc("0 3 1 * *", func() {
		oldest := CurrentPeriod(time.Now().AddDate(0, -retentionMonths, 0))
		s.store.Prune(oldest)
		s.logger.Info("pruned quota periods", slog.String("oldest_kept", oldest))
	})
	if err != nil {
		// The schedule expression is a constant; this only fires on a programming error.
		panic(fmt.Sprintf("quota janitor schedule: %v", err))
	}
	c.Start()
	return c
}
