package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/parkscope/parkscope/internal/api/http"
	"github.com/parkscope/parkscope/internal/app"
	"github.com/parkscope/parkscope/internal/config"
	"github.com/parkscope/parkscope/internal/scheduler"
	"github.com/parkscope/parkscope/internal/status"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls. Its timeout bounds
	// each individual call, not the sum of retries and fallbacks.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	deps := app.Build(cfg, httpClient)

	// Breaker-state monitor feeding the health endpoint.
	board := status.NewBoard(120)
	monitor := scheduler.New(deps.Breakers, board, cfg.MonitorInterval)
	if err := monitor.Start(); err != nil {
		log.Fatalf("failed to start monitor: %v", err)
	}
	defer monitor.Stop()

	srv := fiber.New(fiber.Config{
		AppName:               "parkscope",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
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

	srv.Use(logger.New())
	srv.Use(recover.New())

	srv.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "parkscope",
			"upstreams": board.Snapshot(),
		})
	})

	httpapi.RegisterRoutes(srv, deps)

	go func() {
		if err := srv.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
