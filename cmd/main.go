package main

import (
	"context"
	"net/http"

	"delivery-service/internal/handler"
	"delivery-service/internal/middleware"
	"delivery-service/internal/repository"
	"delivery-service/internal/service"
	"delivery-service/pkg/config"
	"delivery-service/pkg/database"
	"delivery-service/pkg/jwtutil"
	"delivery-service/pkg/logger"
	"delivery-service/pkg/storage"
	"delivery-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting delivery service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize object-store client
	store, err := storage.NewClient(context.Background(), &cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize object store client", zap.Error(err))
	}
	log.Info("Object store client initialized")

	// Wire repositories, services and handlers
	jwt := jwtutil.NewJWTUtil(&cfg.JWT)
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)

	authSvc := service.NewAuthService(users, jwt)
	uploadSvc := service.NewUploadService(store, &cfg.Storage)

	authHandler := handler.NewAuthHandler(authSvc, users)
	userHandler := handler.NewUserHandler(users, uploadSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	categoryHandler := handler.NewCategoryHandler(categories, uploadSvc)

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(cfg)

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("5M"))
	e.Use(middleware.RequestID)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.Metrics)

	api := e.Group("/api")

	// User routes
	usersGroup := api.Group("/users")
	usersGroup.GET("", authHandler.GetAll, middleware.Auth(jwt))
	usersGroup.POST("/create", authHandler.Register)
	usersGroup.POST("/login", authHandler.Login)
	usersGroup.PUT("/update", userHandler.Update, middleware.Auth(jwt))

	// Upload routes
	uploadsGroup := api.Group("/uploads")
	uploadsGroup.POST("/image", uploadHandler.UploadImage)
	uploadsGroup.DELETE("/image", uploadHandler.DeleteImage)

	// Category routes
	categoriesGroup := api.Group("/categories")
	categoriesGroup.POST("/create", categoryHandler.Create, middleware.Auth(jwt))

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

// errorHandler converts any failure that escaped the handlers into the
// standard envelope. Error detail is only attached outside production.
func errorHandler(cfg *config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		}

		logger.FromContext(c).Error("Unhandled error", zap.Error(err))

		body := echo.Map{
			"success": false,
			"message": "An unexpected error occurred",
		}
		if cfg.Server.Env != "production" {
			body["error"] = err.Error()
		}
		_ = c.JSON(status, body)
	}
}
