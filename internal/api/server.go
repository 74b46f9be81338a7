package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options configure the fiber app around a Handler.
type Options struct {
	// BodyLimit caps request bodies in bytes. Zero keeps fiber's default.
	BodyLimit int
	Logger    zerolog.Logger
	// Gatherer backs GET /metrics. Nil leaves the route unregistered.
	Gatherer prometheus.Gatherer
}

// NewApp builds the HTTP application: request logging, panic recovery,
// CORS for any origin, the API routes and optionally /metrics.
func NewApp(h *Handler, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "upi-statement-parser",
		BodyLimit:             opts.BodyLimit,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(RequestLogger(opts.Logger))
	app.Use(recover.New())
	// Preflights get their requested headers echoed back.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	h.RegisterRoutes(app)

	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	return app
}
