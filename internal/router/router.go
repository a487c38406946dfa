package router

import (
	"log"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/muje-team/muje-backend/internal/engine"
	"github.com/muje-team/muje-backend/internal/handlers"
	"github.com/muje-team/muje-backend/internal/middleware"
	"github.com/muje-team/muje-backend/internal/models"
	"github.com/muje-team/muje-backend/internal/repositories"
	"github.com/muje-team/muje-backend/pkg/config"
	"github.com/muje-team/muje-backend/pkg/logger"
)

// SetupMiddleware attaches the global middleware chain.
func SetupMiddleware(e *echo.Echo) {
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.Monitor())
}

// SetupRoutes wires repositories, engine services, and handlers onto the
// echo instance.
func SetupRoutes(e *echo.Echo, db *config.DB, cache *repositories.DeviceCache, cfg *config.Config) error {
	// Relational models live in PostgreSQL; stories live in MongoDB.
	if err := db.Postgres.AutoMigrate(&models.User{}, &models.Notification{}, &models.Report{}); err != nil {
		return err
	}
	log.Println("Database migration completed.")

	engineCfg := cfg.Engine()

	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	reportRepo := repositories.NewPostgresReportRepository(db.Postgres)
	storyRepo := repositories.NewMongoStoryRepository(db.Mongo.Database("muje"))

	profileService := engine.NewProfileService(engineCfg, userRepo)
	storyService := engine.NewStoryService(engineCfg, storyRepo, userRepo)
	empathyService := engine.NewEmpathyService(storyRepo, notificationRepo, logger.New("empathy", cfg.Env))
	stickerService := engine.NewStickerService(engineCfg, storyRepo, userRepo, notificationRepo, logger.New("sticker", cfg.Env))
	moderationService := engine.NewModerationService(cache, reportRepo, storyRepo, userRepo)
	draftService := engine.NewDraftService(engineCfg, cache)
	feedComposer := engine.NewFeedComposer(engineCfg)

	userHandler := handlers.NewUserHandler(profileService)
	storyHandler := handlers.NewStoryHandler(storyService, draftService)
	feedHandler := handlers.NewFeedHandler(feedComposer, storyRepo, moderationService)
	empathyHandler := handlers.NewEmpathyHandler(empathyService)
	stickerHandler := handlers.NewStickerHandler(stickerService, engineCfg.StickerCatalog)
	moderationHandler := handlers.NewModerationHandler(moderationService)
	adminHandler := handlers.NewAdminHandler(moderationService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	draftHandler := handlers.NewDraftHandler(draftService)

	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	public := e.Group("/api/v1")
	userHandler.RegisterSignupRoutes(public)

	viewer := e.Group("/api/v1")
	viewer.Use(middleware.ViewerIdentity())
	userHandler.RegisterProfileRoutes(viewer)
	storyHandler.RegisterStoryRoutes(viewer)
	feedHandler.RegisterFeedRoutes(viewer)
	empathyHandler.RegisterEmpathyRoutes(viewer)
	stickerHandler.RegisterStickerRoutes(viewer)
	moderationHandler.RegisterModerationRoutes(viewer)
	notificationHandler.RegisterNotificationRoutes(viewer)
	draftHandler.RegisterDraftRoutes(viewer)

	// Report filing is rate limited per IP on top of viewer identity.
	reports := e.Group("/api/v1")
	reports.Use(middleware.ViewerIdentity())
	reports.Use(middleware.RateLimit(rate.Limit(1), 5))
	moderationHandler.RegisterReportRoutes(reports)

	admin := e.Group("/api/v1/admin")
	admin.Use(middleware.AdminAuthMiddleware(cfg.AdminJWTSecret))
	adminHandler.RegisterAdminRoutes(admin)

	log.Println("Routes registered.")
	return nil
}
