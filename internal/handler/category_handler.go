package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"delivery-service/internal/model"
	"delivery-service/internal/service"
	"delivery-service/pkg/logger"
	"delivery-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryStore is the store surface needed by the category endpoints.
type CategoryStore interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
}

// CategoryHandler adapts category requests onto the category store and the
// upload gateway.
type CategoryHandler struct {
	categories CategoryStore
	uploads    *service.UploadService
}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(categories CategoryStore, uploads *service.UploadService) *CategoryHandler {
	return &CategoryHandler{categories: categories, uploads: uploads}
}

// Create handles POST /api/categories/create. Multipart: a "category" part
// with {name, description} JSON and an optional "image" file. The mobile
// clients expect 501 on every failure here, so that quirk is kept.
func (h *CategoryHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(c.FormValue("category")), &req); err != nil {
		log.Error("Invalid category JSON", zap.Error(err))
		return respondError(c, http.StatusNotImplemented, "Failed to create the category", err)
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		data, err := readMultipartFile(fileHeader)
		if err != nil {
			log.Error("Failed to read category image", zap.Error(err))
			return respondError(c, http.StatusNotImplemented, "Failed to create the category", err)
		}

		result, err := h.uploads.UploadImage(c.Request().Context(), data,
			fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			log.Error("Category image upload failed", zap.Error(err))
			prometheus.RecordUploadError("store_failure")
			return respondError(c, http.StatusNotImplemented, "Failed to create the category", err)
		}
		category.Image = &result.URL
		log.Info("Category image uploaded", zap.String("file_id", result.FileID))
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	created, err := h.categories.Create(c.Request().Context(), category)
	if err != nil {
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		return respondError(c, http.StatusNotImplemented, "Failed to create the category", err)
	}

	log.Info("Category created", zap.Uint("id", created.ID), zap.String("name", created.Name))
	return respond(c, http.StatusCreated, "Category created successfully", echo.Map{
		"id": created.ID,
	})
}
