package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/orbithammer/parasocial-sub002/internal/router"
	"github.com/orbithammer/parasocial-sub002/internal/validators"
	"github.com/orbithammer/parasocial-sub002/pkg/config"
)

func main() {
	// Initialize database connections (also loads .env)
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
