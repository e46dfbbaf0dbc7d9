package router

import (
	"log"

	"github.com/inklink/backend/internal/handlers"
	"github.com/inklink/backend/internal/middleware"
	"github.com/inklink/backend/internal/models"
	"github.com/inklink/backend/internal/repositories"
	"github.com/inklink/backend/internal/services"
	"github.com/inklink/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// Services bundles the core services the server exposes. The notification
// sweep is wired by the caller onto an external scheduler.
type Services struct {
	Stories       *services.StoryService
	Reactions     *services.ReactionService
	Comments      *services.CommentService
	Notifications *services.NotificationService
	Follows       *services.FollowService
	Search        *services.SearchService
}

// SetupRoutes migrates the schema, builds repositories and services, and
// registers all application routes. The constructed services are returned
// so the caller can attach periodic jobs.
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, logger *zap.Logger) *Services {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Story{},
		&models.Comment{},
		&models.Reaction{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	storyRepo := repositories.NewPostgresStoryRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	reactionRepo := repositories.NewPostgresReactionRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	taxonomyRepo := repositories.NewPostgresTaxonomyRepository(db)

	// --- Initialize Services ---
	notificationService := services.NewNotificationService(notificationRepo, userRepo, cfg.NotificationRetention, cfg.DefaultPageSize, cfg.MaxPageSize, logger)
	storyService := services.NewStoryService(storyRepo, userRepo, taxonomyRepo, cfg.TrendingWindow, cfg.DefaultPageSize, cfg.MaxPageSize, logger)
	reactionService := services.NewReactionService(reactionRepo, storyRepo, notificationService, logger)
	commentService := services.NewCommentService(commentRepo, storyRepo, userRepo, notificationService, cfg.DefaultPageSize, cfg.MaxPageSize, logger)
	followService := services.NewFollowService(followRepo, userRepo, notificationService, logger)
	searchService := services.NewSearchService(storyRepo, userRepo, cfg.TrendingWindow, cfg.DefaultPageSize, cfg.MaxPageSize)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	handlers.NewStoryHandler(storyService).RegisterStoryRoutes(api)
	handlers.NewReactionHandler(reactionService).RegisterReactionRoutes(api)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api)
	handlers.NewSearchHandler(searchService).RegisterSearchRoutes(api)
	handlers.NewTaxonomyHandler(taxonomyRepo).RegisterTaxonomyRoutes(api)

	logger.Info("all routes configured")

	return &Services{
		Stories:       storyService,
		Reactions:     reactionService,
		Comments:      commentService,
		Notifications: notificationService,
		Follows:       followService,
		Search:        searchService,
	}
}
