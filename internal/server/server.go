// Package server assembles the fiber application from its dependencies.
package server

import (
	"strings"
	"time"

	"quiz-tutor/internal/config"
	"quiz-tutor/internal/handler"
	"quiz-tutor/internal/metrics"
	"quiz-tutor/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const bodyLimit = 1 * 1024 * 1024

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Config        *config.Config
	QuizHandler   *handler.QuizHandler
	HealthHandler *handler.HealthHandler
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	SubmitLimiter *middleware.RateLimiter
	EnableSwagger bool
}

// New builds the fiber app with middleware and routes registered.
func New(d Deps) *fiber.App {
	srv := d.Config.Server
	app := fiber.New(fiber.Config{
		AppName:      "quiz-tutor",
		ReadTimeout:  orDefault(srv.ReadTimeout, 20*time.Second),
		WriteTimeout: orDefault(srv.WriteTimeout, 20*time.Second),
		IdleTimeout:  orDefault(srv.IdleTimeout, 20*time.Second),
		BodyLimit:    bodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(middleware.Metrics(d.Metrics))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins(srv.AllowOrigins),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.HeaderRequestID,
		MaxAge:       300,
	}))

	app.Get("/health", d.HealthHandler.Health)
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	if d.EnableSwagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	api := app.Group("/api")
	api.Get("/questions", d.QuizHandler.GetQuestions)
	if d.SubmitLimiter != nil {
		api.Post("/submit", d.SubmitLimiter.Handler(), d.QuizHandler.Submit)
	} else {
		api.Post("/submit", d.QuizHandler.Submit)
	}

	return app
}

func allowOrigins(origins string) string {
	if strings.TrimSpace(origins) == "" {
		return "*"
	}
	return origins
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
