package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/muje-team/muje-backend/internal/middleware"
	"github.com/muje-team/muje-backend/internal/repositories"
	"github.com/muje-team/muje-backend/internal/router"
	"github.com/muje-team/muje-backend/pkg/config"
	"github.com/muje-team/muje-backend/validators"
)

func main() {
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	cfg := config.Load()

	cache, err := repositories.NewDeviceCache(cfg.DeviceCachePath)
	if err != nil {
		log.Fatalf("Failed to open device cache: %v", err)
	}
	defer cache.Close()

	middleware.InitPrometheus()
	go middleware.CleanupVisitors()

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, db, cache, cfg); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	log.Printf("Starting server on port %s...", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
