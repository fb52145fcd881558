package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/melih/dockpanel/internal/core/domain"
	"github.com/melih/dockpanel/internal/core/ports"
)

type SystemHandler struct {
	service ports.EngineService
	log     *zap.Logger
}

func NewSystemHandler(service ports.EngineService, log *zap.Logger) *SystemHandler {
	return &SystemHandler{service: service, log: log}
}

// Summary lists all four resource kinds concurrently and returns their
// counts. Any list failure fails the whole summary.
func (h *SystemHandler) Summary(c *fiber.Ctx) error {
	var (
		containers []domain.Container
		images     []domain.Image
		volumes    []domain.Volume
		networks   []domain.Network
	)

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		containers, err = h.service.ListContainers(ctx)
		return err
	})
	g.Go(func() (err error) {
		images, err = h.service.ListImages(ctx)
		return err
	})
	g.Go(func() (err error) {
		volumes, err = h.service.ListVolumes(ctx)
		return err
	})
	g.Go(func() (err error) {
		networks, err = h.service.ListNetworks(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to build summary: %s", err))
	}

	return c.JSON(domain.Summarize(containers, images, volumes, networks))
}

// Health reports whether the engine answers a ping.
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	version, err := h.service.Ping(c.UserContext())
	if err != nil {
		h.log.Warn("engine ping failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fmt.Sprintf("Engine unreachable: %s", err),
		})
	}
	return c.JSON(fiber.Map{
		"status":     "ok",
		"apiVersion": version,
	})
}
