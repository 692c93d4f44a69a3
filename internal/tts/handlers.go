package tts

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/hanlabs/namegen-proxy/internal/errors"
	"github.com/hanlabs/namegen-proxy/internal/logger"
	"github.com/hanlabs/namegen-proxy/internal/metrics"
)

// chineseNameRe limits synthesis to short Chinese names (CJK plus the
// middle dot used in transliterated names) to keep vendor cost bounded.
var chineseNameRe = regexp.MustCompile(`^[\x{4e00}-\x{9fa5}·]{1,6}$`)

// Handler serves the TTS proxy endpoint.
type Handler struct {
	logger  *logger.Logger
	service *Service
}

func NewHandler(service *Service, logger *logger.Logger) *Handler {
	return &Handler{
		logger:  logger.WithComponent("tts_handler"),
		service: service,
	}
}

// Synthesize proxies a short name through the Baidu TTS vendor and streams
// the audio back with the upstream content type.
//
// Endpoint: POST /tts?provider=baidu
// Body: {"text": "李白", "spd": 4, "per": 0}
//
// Returns 400 for unsupported providers, missing text, or text that is not a
// 1-6 character Chinese name; 500 when vendor credentials are unconfigured;
// 502 with an error envelope when the vendor does not return audio.
func (h *Handler) Synthesize(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context())

	provider := c.DefaultQuery("provider", "browser")
	if provider != "baidu" {
		metrics.TTSRequests.WithLabelValues("rejected").Inc()
		errors.AbortWithBadRequest(c, "only baidu configured", nil)
		return
	}

	var body struct {
		Text string `json:"text"`
		Spd  *int   `json:"spd"`
		Per  *int   `json:"per"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Text == "" {
		metrics.TTSRequests.WithLabelValues("rejected").Inc()
		errors.AbortWithBadRequest(c, "text required", nil)
		return
	}

	if !chineseNameRe.MatchString(body.Text) {
		metrics.TTSRequests.WithLabelValues("rejected").Inc()
		errors.AbortWithBadRequest(c, "only_chinese_name_allowed", nil)
		return
	}

	if !h.service.Configured() {
		metrics.TTSRequests.WithLabelValues("rejected").Inc()
		errors.Internal(c, "baidu config missing", nil)
		return
	}

	spd := 4
	if body.Spd != nil {
		spd = *body.Spd
	}
	per := 0
	if body.Per != nil {
		per = *body.Per
	}

	contentType, audio, err := h.service.Synthesize(c.Request.Context(), body.Text, spd, per)
	if err != nil {
		metrics.TTSRequests.WithLabelValues("upstream_error").Inc()

		var synthErr *SynthesisError
		if stderrors.As(err, &synthErr) {
			log.Error("vendor returned non-audio response", slog.String("detail", synthErr.Detail))
			c.JSON(http.StatusBadGateway, gin.H{"error": "tts_failed", "detail": synthErr.Detail})
			return
		}

		log.Error("tts synthesis failed", slog.String("error", err.Error()))
		errors.BadGateway(c, "baidu token error", nil)
		return
	}

	metrics.TTSRequests.WithLabelValues("ok").Inc()
	c.Data(http.StatusOK, contentType, audio)
}
