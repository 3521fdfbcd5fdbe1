package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"delivery-service/internal/common"
	"delivery-service/internal/service"
	"delivery-service/pkg/logger"
	"delivery-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UploadHandler adapts HTTP requests onto the upload gateway.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler creates an upload handler.
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// UploadImage handles POST /api/uploads/image.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.UploadCounter.Inc()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Error("No file in upload request", zap.Error(err))
		prometheus.RecordUploadError("no_file")
		return respondError(c, http.StatusBadRequest, "No file provided", nil)
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		log.Error("Failed to read uploaded file", zap.Error(err))
		prometheus.RecordUploadError("unreadable_file")
		return respondError(c, http.StatusBadRequest, "Could not read the uploaded file", nil)
	}

	result, err := h.uploads.UploadImage(c.Request().Context(), data,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		var vErr *common.ValidationError
		if errors.As(err, &vErr) {
			log.Error("Upload rejected", zap.String("reason", vErr.Msg))
			prometheus.RecordUploadError("invalid_file")
			return respondError(c, http.StatusBadRequest, "Invalid file", vErr)
		}
		log.Error("Upload failed", zap.Error(err))
		prometheus.RecordUploadError("store_failure")
		return respondError(c, http.StatusInternalServerError, "Failed to upload the image", err)
	}

	log.Info("Image uploaded", zap.String("file_id", result.FileID))
	return respond(c, http.StatusCreated, "Image uploaded successfully", echo.Map{
		"url":     result.URL,
		"fileId":  result.FileID,
		"preview": h.uploads.PreviewURL(result.FileID, 200, 200),
	})
}

// DeleteImage handles DELETE /api/uploads/image.
func (h *UploadHandler) DeleteImage(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.DeleteCounter.Inc()

	var req struct {
		FileID string `json:"fileId"`
	}
	if err := c.Bind(&req); err != nil || req.FileID == "" {
		log.Error("Missing fileId in delete request")
		prometheus.RecordUploadError("missing_file_id")
		return respondError(c, http.StatusBadRequest, "No fileId provided", nil)
	}

	if err := h.uploads.DeleteImage(c.Request().Context(), req.FileID); err != nil {
		log.Error("Delete failed", zap.String("file_id", req.FileID), zap.Error(err))
		prometheus.RecordUploadError("store_failure")
		return respondError(c, http.StatusInternalServerError, "Failed to delete the image", err)
	}

	log.Info("Image deleted", zap.String("file_id", req.FileID))
	return respond(c, http.StatusOK, "Image deleted successfully", nil)
}

// readMultipartFile buffers an uploaded part in memory. Reads one byte past
// the limit so the gateway's size check can reject oversized files.
func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, service.MaxUploadSize+1))
}
