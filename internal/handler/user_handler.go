package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"delivery-service/internal/common"
	"delivery-service/internal/model"
	"delivery-service/internal/service"
	"delivery-service/pkg/logger"
	"delivery-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProfileStore is the store surface needed by the profile update endpoint.
type ProfileStore interface {
	UpdateProfile(ctx context.Context, user *model.User) (*model.User, error)
}

// UserHandler adapts profile-update requests onto the credential store and
// the upload gateway.
type UserHandler struct {
	users   ProfileStore
	uploads *service.UploadService
}

// NewUserHandler creates a user handler.
func NewUserHandler(users ProfileStore, uploads *service.UploadService) *UserHandler {
	return &UserHandler{users: users, uploads: uploads}
}

// Update handles PUT /api/users/update. The request is multipart: a "user"
// part with the profile JSON and an optional "image" file. A new image is
// uploaded first; its view URL replaces the stored one.
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	userJSON := c.FormValue("user")
	if userJSON == "" {
		log.Error("Missing user data in update request")
		return respondError(c, http.StatusBadRequest, "User data is required", nil)
	}

	var req struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Lastname string `json:"lastname"`
		Phone    string `json:"phone"`
	}
	if err := json.Unmarshal([]byte(userJSON), &req); err != nil {
		log.Error("Invalid user JSON in update request", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "Invalid user data", err)
	}
	if req.ID == 0 {
		return respondError(c, http.StatusBadRequest, "User id is required", nil)
	}

	user := &model.User{
		ID:       req.ID,
		Name:     req.Name,
		Lastname: req.Lastname,
		Phone:    req.Phone,
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		data, err := readMultipartFile(fileHeader)
		if err != nil {
			log.Error("Failed to read profile image", zap.Error(err))
			return respondError(c, http.StatusBadRequest, "Could not read the uploaded image", nil)
		}

		result, err := h.uploads.UploadImage(c.Request().Context(), data,
			fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			var vErr *common.ValidationError
			if errors.As(err, &vErr) {
				prometheus.RecordUploadError("invalid_file")
				return respondError(c, http.StatusBadRequest, "Invalid image", vErr)
			}
			log.Error("Profile image upload failed", zap.Error(err))
			prometheus.RecordUploadError("store_failure")
			return respondError(c, http.StatusInternalServerError, "Failed to upload the image", err)
		}
		user.Image = &result.URL
		log.Info("Profile image uploaded", zap.Uint("user_id", req.ID), zap.String("file_id", result.FileID))
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := h.users.UpdateProfile(c.Request().Context(), user)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			log.Error("User not found for update", zap.Uint("user_id", req.ID))
			return respondError(c, http.StatusNotFound, "User not found", nil)
		}
		log.Error("Failed to update user", zap.Uint("user_id", req.ID), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to update the user", nil)
	}

	log.Info("User updated", zap.Uint("user_id", updated.ID))
	return respond(c, http.StatusOK, "User updated successfully", updated)
}
