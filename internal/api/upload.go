package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pranauww/gym-startup/internal/auth"
	"github.com/pranauww/gym-startup/internal/storage"
	"github.com/pranauww/gym-startup/pkg/logging"
)

// UploadHandler serves workout video uploads. The uploader may be nil
// when object storage is not configured; every endpoint then reports
// the service unavailable.
type UploadHandler struct {
	uploader storage.Uploader
	logger   *zap.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploader storage.Uploader) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		logger:   logging.WithComponent("api-upload"),
	}
}

type presignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type deleteUploadRequest struct {
	FileURL string `json:"file_url" binding:"required,url"`
}

func (h *UploadHandler) unavailable(c *gin.Context) bool {
	if h.uploader != nil {
		return false
	}
	c.JSON(http.StatusServiceUnavailable, errorResponse{
		Error:   codeUnavailable,
		Message: "video storage is not configured",
	})
	return true
}

// Video handles POST /api/upload/video
func (h *UploadHandler) Video(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	if h.unavailable(c) {
		return
	}

	header, err := c.FormFile("video")
	if err != nil {
		respondInvalid(c, "video file is required")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !storage.AllowedVideoType(contentType) {
		respondError(c, h.logger, storage.ErrUnsupportedType)
		return
	}
	if header.Size > storage.MaxVideoSize {
		respondError(c, h.logger, storage.ErrTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer file.Close()

	fileURL, err := h.uploader.Upload(c.Request.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("video uploaded",
		zap.Int64("user_id", identity.UserID),
		zap.Int64("size", header.Size))
	c.JSON(http.StatusCreated, gin.H{"video_url": fileURL})
}

// Presign handles POST /api/upload/presign. The caller uploads
// directly to object storage with the returned URL instead of
// streaming the file through this service.
func (h *UploadHandler) Presign(c *gin.Context) {
	if _, ok := auth.FromContext(c); !ok {
		respondUnauthorized(c)
		return
	}
	if h.unavailable(c) {
		return
	}

	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}
	if !storage.AllowedVideoType(req.ContentType) {
		respondError(c, h.logger, storage.ErrUnsupportedType)
		return
	}

	uploadURL, err := h.uploader.Presign(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"upload_url": uploadURL})
}

// Delete handles DELETE /api/upload/video
func (h *UploadHandler) Delete(c *gin.Context) {
	if _, ok := auth.FromContext(c); !ok {
		respondUnauthorized(c)
		return
	}
	if h.unavailable(c) {
		return
	}

	var req deleteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	if err := h.uploader.Delete(c.Request.Context(), req.FileURL); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "video deleted"})
}
