package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/samssiams/Protecture-sub000/internal/router"
	"github.com/samssiams/Protecture-sub000/pkg/config"
	"github.com/samssiams/Protecture-sub000/pkg/firebase"
	"github.com/samssiams/Protecture-sub000/pkg/logger"
	"github.com/samssiams/Protecture-sub000/pkg/storage"
	"github.com/samssiams/Protecture-sub000/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logging before anything that logs
	if err := logger.Init(logger.Options{
		Level:      cfg.LogLevel,
		Path:       cfg.LogPath,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Log.Sync()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		logger.Sugar.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase; OAuth login stays disabled when unconfigured
	ctx := context.Background()
	var firebaseApp *firebase.App
	firebaseApp, err = firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		logger.Sugar.Warnf("Firebase not initialized, OAuth login disabled: %v", err)
		firebaseApp = nil
	}

	// Initialize image storage
	store, err := initStorage(cfg)
	if err != nil {
		logger.Sugar.Fatalf("Failed to initialize storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	var authClient = authClientOf(firebaseApp)
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, authClient, store)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func authClientOf(app *firebase.App) *auth.Client {
	if app == nil {
		return nil
	}
	return app.AuthClient
}

func initStorage(cfg *config.Config) (storage.StorageService, error) {
	if cfg.StorageMode == "s3" {
		return storage.NewS3Storage(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL, cfg.S3UseSSL)
	}
	return storage.NewLocalStorage(cfg.UploadDir)
}
