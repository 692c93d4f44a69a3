package quota

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanlabs/namegen-proxy/internal/errors"
	"github.com/hanlabs/namegen-proxy/internal/logger"
)

// Handler provides the membership endpoints.
type Handler struct {
	logger  *logger.Logger
	service *Service
}

func NewHandler(service *Service, logger *logger.Logger) *Handler {
	return &Handler{
		logger:  logger.WithComponent("member_handler"),
		service: service,
	}
}

// MemberStatus reports whether the caller currently counts as a member.
//
// Endpoint: GET /member/status
func (h *Handler) MemberStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"member": h.service.IsMember(c)})
}

// ActivateMember flags the caller's client key as a member.
//
// Endpoint: POST /member/activate
// Body: {"subscription_id": "..."} — required, else 400.
//
// The subscription ID is not verified against any payment provider; checkout
// is stubbed (see the payment package), so activation only flips the local flag.
func (h *Handler) ActivateMember(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context())

	var body struct {
		SubscriptionID string `json:"subscription_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		errors.AbortWithBadRequest(c, "subscription_id required", nil)
		return
	}

	h.service.Activate(c)
	log.Info("membership activated",
		slog.String("client_key", h.service.ClientKey(c)),
		slog.String("subscription_id", body.SubscriptionID))

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
