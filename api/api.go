// Package api exposes the generator over HTTP so benchmark rigs can drive
// data generation remotely.
package api

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/neelsbester/lo-phi/config"
	"github.com/neelsbester/lo-phi/logger"
	"github.com/neelsbester/lo-phi/pkg/generator"
	"github.com/neelsbester/lo-phi/version"
)

// Server holds the Fiber app instance
type Server struct {
	app *fiber.App
}

// NewServer initializes a new Fiber instance with best practices
func NewServer() *Server {
	app := fiber.New(fiber.Config{
		IdleTimeout:  10 * time.Second, // Prevents idle connections
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Middleware
	app.Use(recover.New())     // Auto-recovers from panics
	app.Use(fiberlogger.New()) // Logs all requests

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "lo-phi datagen API",
			"version": version.Version,
			"build":   version.BuildDate,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	app.Post("/generate", handleGenerate)

	return &Server{app: app}
}

// handleGenerate runs a full generation from a JSON parameter body and
// returns the generation report. The write happens synchronously; large
// tables can take a while.
func handleGenerate(c *fiber.Ctx) error {
	cfg := config.DefaultGenerateConfig()
	if err := c.BodyParser(&cfg); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	out := generator.OutputOptions{OutputDir: cfg.OutputDir, BaseName: cfg.BaseName}
	run, err := generator.Run(c.Context(), cfg.Params(), out, logger.GetLogger())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(run)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start runs the Fiber server and handles graceful shutdown
func (s *Server) Start(port string) error {
	if port == "" {
		port = "3000" // Default port
	}

	// Channel to listen for OS termination signals (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	// Start server in a goroutine
	go func() {
		log.Printf("lo-phi datagen API is running on port %s\n", port)
		if err := s.app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-quit
	log.Println("Received shutdown signal, stopping server...")

	// Create a timeout context for the shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.app.ShutdownWithContext(ctx); err != nil {
		log.Fatalf("Error shutting down: %v", err)
	}

	log.Println("Server shutdown successfully")
	return nil
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
