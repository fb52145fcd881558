package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/melih/dockpanel/internal/core/ports"
)

type NetworkHandler struct {
	service ports.EngineService
	log     *zap.Logger
}

func NewNetworkHandler(service ports.EngineService, log *zap.Logger) *NetworkHandler {
	return &NetworkHandler{service: service, log: log}
}

func (h *NetworkHandler) ListNetworks(c *fiber.Ctx) error {
	networks, err := h.service.ListNetworks(c.UserContext())
	if err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to list networks: %s", err))
	}
	return c.JSON(networks)
}

type RemoveNetworkRequest struct {
	ID string `json:"id"`
}

func (h *NetworkHandler) RemoveNetwork(c *fiber.Ctx) error {
	var req RemoveNetworkRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ID == "" {
		return badRequest(c, "Network ID is required")
	}

	if err := h.service.RemoveNetwork(c.UserContext(), req.ID); err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to remove network %s: %s", req.ID, err))
	}

	return success(c, fmt.Sprintf("Network %s removed successfully", req.ID))
}
