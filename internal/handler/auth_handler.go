package handler

import (
	"context"
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

// UserLister is the store surface needed by the user listing endpoint.
type UserLister interface {
	GetAll(ctx context.Context) ([]model.User, error)
}

// AuthHandler adapts HTTP requests onto the auth service.
type AuthHandler struct {
	auth  *service.AuthService
	users UserLister
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(auth *service.AuthService, users UserLister) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// Register handles POST /api/users/create.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Email    string  `json:"email"`
		Name     string  `json:"name"`
		Lastname string  `json:"lastname"`
		Phone    string  `json:"phone"`
		Image    *string `json:"image,omitempty"`
		Password string  `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, http.StatusBadRequest, "Invalid request data", err)
	}

	result, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Lastname: req.Lastname,
		Phone:    req.Phone,
		Image:    req.Image,
		Password: req.Password,
	})
	if err != nil {
		var vErr *common.ValidationError
		switch {
		case errors.As(err, &vErr):
			log.Error("Invalid registration data", zap.String("reason", vErr.Msg))
			prometheus.RecordAuthError("incomplete_registration")
			return respondError(c, http.StatusBadRequest, "Invalid registration data", vErr)
		case errors.Is(err, common.ErrEmailTaken):
			log.Error("User already exists", zap.String("email", req.Email))
			prometheus.RecordAuthError("email_already_exists")
			return respondError(c, http.StatusConflict, "Email already registered", nil)
		default:
			log.Error("Failed to register user", zap.Error(err))
			prometheus.RecordAuthError("user_creation_failed")
			return respondError(c, http.StatusInternalServerError, "Registration failed", nil)
		}
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User registered", zap.Uint("id", result.User.ID), zap.String("email", result.User.Email))
	return respond(c, http.StatusCreated, "User registered successfully", result.User)
}

// Login handles POST /api/users/login. Missing accounts and wrong passwords
// get the same 401 so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, http.StatusBadRequest, "Invalid request data", err)
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		var vErr *common.ValidationError
		switch {
		case common.IsAuthError(err):
			log.Error("Login rejected", zap.String("email", req.Email))
			prometheus.RecordAuthError("invalid_credentials")
			return respondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
		case errors.As(err, &vErr):
			prometheus.RecordAuthError("invalid_request")
			return respondError(c, http.StatusBadRequest, "Invalid login data", vErr)
		default:
			log.Error("Login failed", zap.Error(err))
			prometheus.RecordAuthError("login_failed")
			return respondError(c, http.StatusNotImplemented, "Login failed", nil)
		}
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User logged in", zap.Uint("id", result.User.ID), zap.String("email", result.User.Email))
	return respond(c, http.StatusCreated, "Login successful", result.User)
}

// GetAll handles GET /api/users.
func (h *AuthHandler) GetAll(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	users, err := h.users.GetAll(c.Request().Context())
	if err != nil {
		log.Error("Failed to list users", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to retrieve users", nil)
	}

	return respond(c, http.StatusOK, "Users retrieved successfully", users)
}
