package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/melih/dockpanel/internal/core/domain"
	"github.com/melih/dockpanel/internal/core/ports"
)

type ImageHandler struct {
	service ports.EngineService
	builder ports.BuilderService
	log     *zap.Logger
}

// NewImageHandler creates the image routes. builder may be nil, in which
// case the build route is not registered.
func NewImageHandler(service ports.EngineService, builder ports.BuilderService, log *zap.Logger) *ImageHandler {
	return &ImageHandler{service: service, builder: builder, log: log}
}

func (h *ImageHandler) ListImages(c *fiber.Ctx) error {
	images, err := h.service.ListImages(c.UserContext())
	if err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to list images: %s", err))
	}
	return c.JSON(images)
}

type PullImageRequest struct {
	Name string `json:"name"`
}

// PullImage holds the request open until the engine finishes the pull.
// Progress is only logged.
func (h *ImageHandler) PullImage(c *fiber.Ctx) error {
	var req PullImageRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "Image name is required")
	}

	log := h.log.With(zap.String("image", req.Name))
	log.Info("pulling image")

	err := h.service.PullImage(c.UserContext(), req.Name, func(p domain.PullProgress) {
		log.Debug("pull progress",
			zap.String("layer", p.ID),
			zap.String("status", p.Status),
			zap.Int64("current", p.Current),
			zap.Int64("total", p.Total),
		)
	})
	if err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to pull image %s: %s", req.Name, err))
	}

	return success(c, fmt.Sprintf("Image %s pulled successfully", req.Name))
}

type RemoveImageRequest struct {
	ID string `json:"id"`
}

func (h *ImageHandler) RemoveImage(c *fiber.Ctx) error {
	var req RemoveImageRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ID == "" {
		return badRequest(c, "Image ID is required")
	}

	if err := h.service.RemoveImage(c.UserContext(), req.ID); err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to remove image %s: %s", req.ID, err))
	}

	return success(c, fmt.Sprintf("Image %s removed successfully", req.ID))
}

type BuildImageRequest struct {
	RepoURL string `json:"repoUrl"`
	Name    string `json:"name"`
}

// BuildImage clones a git repository and builds it. Like pull, it blocks
// until the engine reports the outcome.
func (h *ImageHandler) BuildImage(c *fiber.Ctx) error {
	var req BuildImageRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.RepoURL == "" {
		return badRequest(c, "Repository URL is required")
	}
	if req.Name == "" {
		return badRequest(c, "Image name is required")
	}

	image, err := h.builder.BuildImage(c.UserContext(), req.RepoURL, req.Name)
	if err != nil {
		return upstreamError(c, h.log, err, fmt.Sprintf("Failed to build image %s: %s", req.Name, err))
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Image %s built successfully", image),
		"image":   image,
	})
}
