package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/melih/dockpanel/internal/core/ports"
)

type VolumeHandler struct {
	service ports.EngineService
	log     *zap.Logger
}

func NewVolumeHandler(service ports.EngineService, log *zap.Logger) *VolumeHandler {
	return &VolumeHandler{service: service, log: log}
}

func (h *VolumeHandler) ListVolumes(c *fiber.Ctx) error {
	volumes, err := h.service.ListVolumes(c.UserContext())
	if err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to list volumes: %s", err))
	}
	return c.JSON(volumes)
}

type RemoveVolumeRequest struct {
	Name string `json:"name"`
}

// RemoveVolume leaves in-use checks to the engine, which refuses them.
func (h *VolumeHandler) RemoveVolume(c *fiber.Ctx) error {
	var req RemoveVolumeRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "Volume name is required")
	}

	if err := h.service.RemoveVolume(c.UserContext(), req.Name); err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to remove volume %s: %s", req.Name, err))
	}

	return success(c, fmt.Sprintf("Volume %s removed successfully", req.Name))
}
