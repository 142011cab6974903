package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hrunx/sprintly-mvp/internal/api"
	"github.com/hrunx/sprintly-mvp/internal/database"
	"github.com/hrunx/sprintly-mvp/internal/email"
	"github.com/hrunx/sprintly-mvp/internal/logger"
	"github.com/hrunx/sprintly-mvp/internal/middleware"
	"github.com/hrunx/sprintly-mvp/internal/services"
	"github.com/hrunx/sprintly-mvp/pkg/config"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg := config.New()
	log := logger.New(cfg.Environment)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required", nil)
	}

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", err)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("failed to run migrations", err)
	}

	// Initialize email notifications
	notifier, err := email.NewNotifier(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("failed to initialize email notifier", err)
	}

	svcs := services.NewServices(db.DB, cfg, log, notifier)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLoggingMiddleware(log))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.RequestSizeMiddleware(cfg.MaxRequestSize))
	r.Use(gin.Recovery())

	api.SetupRoutes(r, svcs, cfg)

	log.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", err)
	}
}
