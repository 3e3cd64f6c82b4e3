package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/meteireann-weather/internal/api/http"
	"github.com/i474232898/meteireann-weather/internal/config"
	"github.com/i474232898/meteireann-weather/internal/meteireann"
	"github.com/i474232898/meteireann-weather/internal/observability"
	"github.com/i474232898/meteireann-weather/internal/scheduler"
	"github.com/i474232898/meteireann-weather/internal/store"
	"github.com/i474232898/meteireann-weather/internal/warnings"
	"github.com/i474232898/meteireann-weather/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	tz, err := cfg.TimeLocation()
	if err != nil {
		log.Fatalf("failed to load time zone: %v", err)
	}

	metrics := observability.NewMetrics()

	// One session shared by both feeds; closed on shutdown.
	session := meteireann.NewSession(nil, cfg.HTTPTimeout)
	defer session.Close()

	forecastStore := store.NewMemoryStore[*weather.Document](cfg.StoreMaxAge, nil)
	warningStore := store.NewMemoryStore[warnings.RawDocument](cfg.StoreMaxAge, nil)

	forecasts := weather.NewService(
		forecastStore,
		meteireann.NewForecastProvider(session, cfg.ForecastURL, metrics),
		cfg.Locations,
		nil,
		cfg.MaxHours,
	)
	warningSvc := warnings.NewService(
		warningStore,
		meteireann.NewWarningProvider(session, cfg.WarningURL, metrics),
		cfg.Regions,
		cfg.WarningOptions(),
	)

	sched := scheduler.New(cfg.FetchInterval, forecasts, warningSvc, metrics)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "meteireann-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "meteireann-weather",
			"locations": len(cfg.Locations),
			"regions":   len(cfg.Regions),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, forecasts, warningSvc, tz)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
