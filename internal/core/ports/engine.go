package ports

import (
	"context"
	"io"

	"github.com/melih/dockpanel/internal/core/domain"
)

// EngineService is the container engine's management API as used by the
// dashboard. Each method is a single call; implementations must not retry.
type EngineService interface {
	Ping(ctx context.Context) (string, error)

	ListContainers(ctx context.Context) ([]domain.Container, error)
	StartContainer(ctx context.Context, name string) error
	StopContainer(ctx context.Context, name string) error
	RestartContainer(ctx context.Context, name string) error
	// RemoveContainer always forces removal of a running container.
	RemoveContainer(ctx context.Context, name string) error
	GetContainerLogs(ctx context.Context, name string) (io.ReadCloser, error)

	ListImages(ctx context.Context) ([]domain.Image, error)
	// PullImage blocks until the engine's transfer stream ends. progress may
	// be nil.
	PullImage(ctx context.Context, ref string, progress func(domain.PullProgress)) error
	RemoveImage(ctx context.Context, id string) error

	ListVolumes(ctx context.Context) ([]domain.Volume, error)
	RemoveVolume(ctx context.Context, name string) error

	ListNetworks(ctx context.Context) ([]domain.Network, error)
	RemoveNetwork(ctx context.Context, id string) error
}
