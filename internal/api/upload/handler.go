// Package upload proxies video payloads from the admin client straight
// through to the video host. The request body is handed to the outbound
// call as-is, so bytes flow upstream as they arrive; memory use does not
// grow with file size and backpressure comes from the upstream connection.
package upload

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fitclub-backend/internal/infra/bunny"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadBudget bounds one proxied upload wall-clock. Clients must size
// their chunking so a single request fits.
const UploadBudget = 60 * time.Second

type Handler struct {
	bunny  *bunny.Client
	budget time.Duration
	log    *zap.Logger
}

func NewHandler(client *bunny.Client, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{bunny: client, budget: UploadBudget, log: log}
}

// PUT /admin/videos/upload/:libraryId/:videoId
//
// Check order matters: authorization before any byte is accepted, then
// routing params, then the upstream credential (its absence is a server
// misconfiguration, not a client error).
func (h *Handler) Proxy(c *gin.Context) {
	if c.GetString("role") != "admin" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	libraryID := c.Param("libraryId")
	videoID := c.Param("videoId")
	if libraryID == "" || videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing library or video id"})
		return
	}

	if !h.bunny.HasAccessKey() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Video host access key not configured"})
		return
	}

	// The request context already dies when the client disconnects, which
	// aborts the upstream write; the budget caps the happy path.
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.budget)
	defer cancel()

	status, body, contentType, err := h.bunny.Upload(ctx, libraryID, videoID, c.Request.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			h.log.Warn("upload aborted", zap.String("video_id", videoID), zap.Error(err))
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Upload timed out"})
			return
		}
		h.log.Error("upload forward failed", zap.String("video_id", videoID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upload failed"})
		return
	}

	// Relay the upstream response verbatim, success or rejection.
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(status, contentType, body)
}
