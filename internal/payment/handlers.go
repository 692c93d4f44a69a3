package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanlabs/namegen-proxy/internal/logger"
)

// Handler serves the payment configuration and the (stubbed) subscription
// checkout endpoints.
type Handler struct {
	logger   *logger.Logger
	clientID string
	planID   string
	provider string
}

func NewHandler(clientID, planID, provider string, logger *logger.Logger) *Handler {
	return &Handler{
		logger:   logger.WithComponent("payment_handler"),
		clientID: clientID,
		planID:   planID,
		provider: provider,
	}
}

// Config returns the public payment identifiers for the frontend, or
// enabled=false when the provider is unconfigured.
//
// Endpoint: GET /payment/config
func (h *Handler) Config(c *gin.Context) {
	if h.clientID == "" || h.planID == "" {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"enabled":   true,
		"client_id": h.clientID,
		"plan_id":   h.planID,
	})
}

// CheckoutSubscription is not wired to any provider yet and always answers
// 501 naming the configured provider.
//
// Endpoint: POST /subscription/checkout
func (h *Handler) CheckoutSubscription(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": "checkout not configured for " + h.provider,
	})
}
