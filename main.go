package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rideboard/site/config"
	"github.com/rideboard/site/db"
	h "github.com/rideboard/site/handlers"
	"github.com/rideboard/site/vehicle"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	config.Load()

	// Initialize database
	if err := db.Init(config.DatabaseURL); err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}
	cancel()

	// Initialize vehicle cache
	if err := vehicle.InitVehicleCache(); err != nil {
		log.Fatalf("Failed to initialize vehicle cache: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: h.CustomErrorHandler,
		BodyLimit:    config.ServerBodyLimit,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(h.GlobalRateLimiter())
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(config.ListingPath, fiber.StatusMovedPermanently)
	})

	// Listing
	app.Get("/vehicles", h.HandleListingPage)
	app.Get("/vehicles/listing", h.HandleListing)
	app.Get("/vehicles/results", h.HandleResults)
	app.Get("/vehicles/reset", h.HandleReset)
	app.Get("/vehicles/:id", h.HandleVehicleDetail)
	app.Get("/vehicles/:id/contact", h.HandleContact)
	app.Get("/favorites", h.HandleFavorites)

	// API group
	api := app.Group("/api")
	api.Get("/models", h.HandleModelOptions)
	favorites := api.Group("/favorites", h.FavoriteRateLimiter())
	favorites.Post("/:id", h.HandleAddFavorite)
	favorites.Delete("/:id", h.HandleRemoveFavorite)
	api.Delete("/searches", h.HandleClearSearches)
	api.Delete("/searches/:id", h.HandleDeleteSearch)

	// Health check and metrics
	app.Get("/health", h.HandleHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	slog.Info("Starting server", "port", config.ServerPort)
	log.Fatal(app.Listen(":" + config.ServerPort))
}
