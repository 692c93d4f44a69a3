package share

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hanlabs/namegen-proxy/internal/errors"
	"github.com/hanlabs/namegen-proxy/internal/logger"
)

// Handler saves uploaded share images into the public shared directory.
// Membership gating happens in middleware, not here.
type Handler struct {
	logger        *logger.Logger
	sharedDir     string
	publicBaseURL string
}

func NewHandler(sharedDir, publicBaseURL string, logger *logger.Logger) *Handler {
	return &Handler{
		logger:        logger.WithComponent("share_handler"),
		sharedDir:     sharedDir,
		publicBaseURL: publicBaseURL,
	}
}

// Upload accepts a multipart form with a required "file" part and an
// optional "title", stores the file under a timestamp-based name, and
// returns the public URL.
//
// Endpoint: POST /share/upload (members only)
func (h *Handler) Upload(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context())

	file, err := c.FormFile("file")
	if err != nil {
		errors.AbortWithBadRequest(c, "file required", nil)
		return
	}
	title := c.PostForm("title")

	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + ".png"
	dst := filepath.Join(h.sharedDir, name)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		log.Error("failed to save upload",
			slog.String("path", dst),
			slog.String("error", err.Error()))
		errors.Internal(c, "save_failed", nil)
		return
	}

	log.Info("share uploaded",
		slog.String("name", name),
		slog.Int64("size", file.Size))

	c.JSON(http.StatusOK, gin.H{
		"url":   h.publicBaseURL + "/share/" + name,
		"title": title,
	})
}
