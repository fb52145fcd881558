package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/melih/dockpanel/internal/core/domain"
	"github.com/melih/dockpanel/internal/core/ports"
)

type ContainerHandler struct {
	service ports.EngineService
	log     *zap.Logger
}

func NewContainerHandler(service ports.EngineService, log *zap.Logger) *ContainerHandler {
	return &ContainerHandler{service: service, log: log}
}

func (h *ContainerHandler) ListContainers(c *fiber.Ctx) error {
	containers, err := h.service.ListContainers(c.UserContext())
	if err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to list containers: %s", err))
	}
	return c.JSON(containers)
}

type ContainerActionRequest struct {
	Name string `json:"name"`
}

// ContainerAction dispatches start, stop, restart or remove on the named
// container. All validation happens before the engine is called.
func (h *ContainerHandler) ContainerAction(c *fiber.Ctx) error {
	var req ContainerActionRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	name := domain.NormalizeContainerName(req.Name)
	if name == "" {
		return badRequest(c, "Container name is required")
	}

	action, ok := domain.ParseContainerAction(c.Params("action"))
	if !ok {
		return badRequest(c, "Invalid action")
	}

	if err := h.dispatch(c, action, name); err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to %s container: %s", action, err))
	}

	h.log.Info("container action", zap.String("action", string(action)), zap.String("container", name))
	return success(c, fmt.Sprintf("Container %s %s successfully", name, action.PastTense()))
}

func (h *ContainerHandler) dispatch(c *fiber.Ctx, action domain.ContainerAction, name string) error {
	ctx := c.UserContext()
	switch action {
	case domain.ActionStart:
		return h.service.StartContainer(ctx, name)
	case domain.ActionStop:
		return h.service.StopContainer(ctx, name)
	case domain.ActionRestart:
		return h.service.RestartContainer(ctx, name)
	case domain.ActionRemove:
		return h.service.RemoveContainer(ctx, name)
	}
	return fmt.Errorf("unsupported action %q", action)
}

func (h *ContainerHandler) GetContainerLogs(c *fiber.Ctx) error {
	name := domain.NormalizeContainerName(c.Query("name"))
	if name == "" {
		return badRequest(c, "Container name is required")
	}

	logs, err := h.service.GetContainerLogs(c.UserContext(), name)
	if err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to get logs for container %s: %s", name, err))
	}

	// fasthttp closes the stream once it has been written out.
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendStream(logs)
}
