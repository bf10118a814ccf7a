package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/config"
	"github.com/example/kerapido/internal/database"
	"github.com/example/kerapido/internal/middleware"
	"github.com/example/kerapido/internal/ratelimit"
	"github.com/example/kerapido/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName:      "KE RAPIDO Backend",
		ErrorHandler: apperr.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))

	limiter := ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitInterval)
	app.Use(middleware.RateLimit(limiter))

	routes.Register(app, db, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
