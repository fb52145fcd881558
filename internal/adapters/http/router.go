package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/melih/dockpanel/internal/core/ports"
	"github.com/melih/dockpanel/internal/metrics"
)

// Deps are the collaborators of the HTTP surface. Builder and Metrics are
// optional.
type Deps struct {
	Engine       ports.EngineService
	Builder      ports.BuilderService
	Metrics      *metrics.Recorder
	MetricsPath  string
	AllowOrigins string
	Logger       *zap.Logger
}

// NewApp wires middleware and routes into a Fiber app.
func NewApp(d Deps) *fiber.App {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if d.AllowOrigins == "" {
		d.AllowOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               "dockpanel",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
		// Pulls and builds hold the connection until the engine is done.
		WriteTimeout: 0,
	})

	app.Use(recover.New())
	app.Use(requestLogger(log, d.Metrics))
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	system := NewSystemHandler(d.Engine, log.Named("system"))
	app.Get("/healthz", system.Health)
	if d.Metrics != nil && d.MetricsPath != "" {
		app.Get(d.MetricsPath, adaptor.HTTPHandler(d.Metrics.Handler()))
	}

	api := app.Group("/api")
	api.Get("/summary", system.Summary)

	containers := NewContainerHandler(d.Engine, log.Named("containers"))
	api.Get("/containers", containers.ListContainers)
	api.Get("/container/logs", containers.GetContainerLogs)
	api.Post("/container/:action", containers.ContainerAction)

	images := NewImageHandler(d.Engine, d.Builder, log.Named("images"))
	api.Get("/images", images.ListImages)
	api.Post("/images/pull", images.PullImage)
	api.Post("/images/remove", images.RemoveImage)
	if d.Builder != nil {
		api.Post("/images/build", images.BuildImage)
	}

	volumes := NewVolumeHandler(d.Engine, log.Named("volumes"))
	api.Get("/volumes", volumes.ListVolumes)
	api.Post("/volumes/remove", volumes.RemoveVolume)

	networks := NewNetworkHandler(d.Engine, log.Named("networks"))
	api.Get("/networks", networks.ListNetworks)
	api.Post("/networks/remove", networks.RemoveNetwork)

	return app
}

// requestLogger logs one line per request and feeds the request metrics.
func requestLogger(log *zap.Logger, rec *metrics.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not written the response yet.
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		rec.ObserveRequest(c.Method(), c.Route().Path, status, elapsed)
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
		)
		return err
	}
}
