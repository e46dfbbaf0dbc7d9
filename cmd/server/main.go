package main

import (
	"log"

	"github.com/inklink/backend/internal/router"
	"github.com/inklink/backend/pkg/config"
	"github.com/inklink/backend/pkg/logger"
	"github.com/inklink/backend/pkg/validators"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Logger
	zapLogger := logger.New(cfg.LogLevel, cfg.LogFile)
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	svcs := router.SetupRoutes(e, db, cfg, zapLogger)

	// Validator
	e.Validator = validators.NewValidator()

	// The core exposes the retention sweep; the clock lives out here.
	c := cron.New()
	if _, err := c.AddFunc(cfg.SweepSchedule, svcs.Notifications.SweepExpired); err != nil {
		log.Fatalf("Failed to schedule notification sweep: %v", err)
	}
	c.Start()
	defer c.Stop()
	zapLogger.Info("notification sweep scheduled", zap.String("schedule", cfg.SweepSchedule))

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
