package upload

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"discord-backend/internal/app/profile"
	"discord-backend/internal/providers/minio"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Uploader interface {
	UploadTmp(ctx context.Context, file *multipart.FileHeader) (*minio.UploadedFile, error)
}

type Handler struct {
	storage Uploader
	logger  *zap.Logger
}

func NewHandler(storage Uploader, logger *zap.Logger) *Handler {
	return &Handler{
		storage: storage,
		logger:  logger,
	}
}

// @Summary Upload a message attachment
// @Description Stores an image or PDF as a temporary object. It becomes permanent when a message references it.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image or PDF"
// @Success 201 {object} UploadedFileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "File storage not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file provided"})
		return
	}

	result, err := h.storage.UploadTmp(c.Request.Context(), fileHeader)
	switch {
	case errors.Is(err, minio.ErrUnsupportedType), errors.Is(err, minio.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		h.logger.Error("Failed to upload file", zap.String("filename", fileHeader.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload file"})
		return
	}

	fields := []zap.Field{zap.String("object_name", result.ObjectName)}
	if p, ok := profile.FromContext(c); ok {
		fields = append(fields, zap.String("profile_id", p.ID))
	}
	h.logger.Info("Attachment uploaded", fields...)

	c.JSON(http.StatusCreated, UploadedFileResponse{
		Name:        result.Name,
		URL:         result.URL,
		Size:        result.Size,
		ContentType: result.ContentType,
	})
}
