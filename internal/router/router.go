package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/samssiams/Protecture-sub000/internal/handlers"
	"github.com/samssiams/Protecture-sub000/internal/middleware"
	"github.com/samssiams/Protecture-sub000/internal/models"
	"github.com/samssiams/Protecture-sub000/internal/repositories"
	"github.com/samssiams/Protecture-sub000/pkg/config"
	"github.com/samssiams/Protecture-sub000/pkg/logger"
	"github.com/samssiams/Protecture-sub000/pkg/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logger.Sugar.Infow("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient may be nil when OAuth login is not configured.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, store storage.StorageService) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Otp{},
		&models.Post{},
		&models.Vote{},
		&models.Comment{},
		&models.Community{},
		&models.CommunityMember{},
		&models.Report{},
		&models.AppealRequest{},
		&models.Notification{},
	)
	if err != nil {
		logger.Sugar.Fatalf("Failed to auto migrate models: %v", err)
	}
	logger.Sugar.Info("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	communityRepo := repositories.NewPostgresCommunityRepository(pgdb)
	reportRepo := repositories.NewPostgresReportRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	auditRepo := repositories.NewMongoAuditRepository(mgClient.Database("protecture"))

	notifier := handlers.NewNotifier(notificationRepo, logger.Sugar)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	suspend := middleware.SuspensionGate(userRepo)
	rateLimit := middleware.NewPostRateLimiter(cfg.PostRateCount, cfg.PostRateWindow).Middleware()

	userHandler := handlers.NewUserHandler(userRepo, reportRepo)
	userHandler.RegisterUserRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, reportRepo, notifier)
	postHandler.RegisterPostRoutes(api, suspend, rateLimit)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, notifier)
	commentHandler.RegisterCommentRoutes(api, suspend)

	communityHandler := handlers.NewCommunityHandler(communityRepo, notifier)
	communityHandler.RegisterCommunityRoutes(api, suspend)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	uploadHandler := handlers.NewUploadHandler(store, cfg.WatermarkText)
	uploadHandler.RegisterUploadRoutes(api, suspend)

	// --- Admin routes ---
	admin := e.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	admin.Use(middleware.RequireAdmin())

	adminHandler := handlers.NewAdminHandler(reportRepo, userRepo, postRepo, communityRepo, auditRepo, notifier, cfg.SuspensionDuration)
	adminHandler.RegisterAdminRoutes(admin)

	logger.Sugar.Info("All routes configured.")
}
