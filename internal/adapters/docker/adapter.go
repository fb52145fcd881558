package docker

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"go.uber.org/zap"

	"github.com/melih/dockpanel/internal/core/domain"
	"github.com/melih/dockpanel/internal/core/ports"
	"github.com/melih/dockpanel/internal/logging"
	"github.com/melih/dockpanel/internal/metrics"
)

var _ ports.EngineService = (*Adapter)(nil)

// Options configures the connection to the daemon.
type Options struct {
	// Host overrides DOCKER_HOST when set.
	Host string
	// APIVersion pins the API version; empty negotiates.
	APIVersion string
	// StopTimeout is passed to stop and restart; nil uses the engine default.
	StopTimeout *int
	Metrics     *metrics.Recorder
}

// Adapter implements ports.EngineService using the Docker SDK. Every method
// is exactly one engine round trip (logs aside) and never retries.
type Adapter struct {
	cli         *client.Client
	stopTimeout *int
	metrics     *metrics.Recorder
	log         *zap.Logger
}

// NewAdapter creates a new Docker adapter instance
func NewAdapter(opts Options) (*Adapter, error) {
	clientOpts := []client.Opt{client.FromEnv}
	if opts.Host != "" {
		clientOpts = append(clientOpts, client.WithHost(opts.Host))
	}
	if opts.APIVersion != "" {
		clientOpts = append(clientOpts, client.WithVersion(opts.APIVersion))
	} else {
		clientOpts = append(clientOpts, client.WithAPIVersionNegotiation())
	}

	cli, err := client.NewClientWithOpts(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return newAdapter(cli, opts), nil
}

func newAdapter(cli *client.Client, opts Options) *Adapter {
	return &Adapter{
		cli:         cli,
		stopTimeout: opts.StopTimeout,
		metrics:     opts.Metrics,
		log:         logging.Component("docker"),
	}
}

// Client returns the underlying SDK client so the builder can share the
// connection.
func (a *Adapter) Client() *client.Client {
	return a.cli
}

// Close releases the client's idle connections.
func (a *Adapter) Close() error {
	return a.cli.Close()
}

func (a *Adapter) observe(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	a.metrics.ObserveEngineCall(op, err, elapsed)
	if err != nil {
		a.log.Debug("engine call failed", zap.String("op", op), zap.Duration("elapsed", elapsed), zap.Error(err))
		return
	}
	a.log.Debug("engine call", zap.String("op", op), zap.Duration("elapsed", elapsed))
}

// Ping returns the API version the daemon reports.
func (a *Adapter) Ping(ctx context.Context) (version string, err error) {
	defer func(start time.Time) { a.observe("ping", start, err) }(time.Now())
	p, err := a.cli.Ping(ctx)
	if err != nil {
		return "", err
	}
	return p.APIVersion, nil
}

// ListContainers returns every container, stopped ones included.
func (a *Adapter) ListContainers(ctx context.Context) (result []domain.Container, err error) {
	defer func(start time.Time) { a.observe("container_list", start, err) }(time.Now())

	containers, err := a.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, err
	}

	result = make([]domain.Container, 0, len(containers))
	for _, c := range containers {
		result = append(result, domain.Container{
			ID:      c.ID,
			Names:   c.Names,
			Image:   c.Image,
			ImageID: c.ImageID,
			Command: c.Command,
			Created: c.Created,
			State:   c.State,
			Status:  c.Status,
			Labels:  c.Labels,
		})
	}
	return result, nil
}

func (a *Adapter) StartContainer(ctx context.Context, name string) (err error) {
	defer func(start time.Time) { a.observe("container_start", start, err) }(time.Now())
	return a.cli.ContainerStart(ctx, name, container.StartOptions{})
}

func (a *Adapter) StopContainer(ctx context.Context, name string) (err error) {
	defer func(start time.Time) { a.observe("container_stop", start, err) }(time.Now())
	return a.cli.ContainerStop(ctx, name, container.StopOptions{Timeout: a.stopTimeout})
}

func (a *Adapter) RestartContainer(ctx context.Context, name string) (err error) {
	defer func(start time.Time) { a.observe("container_restart", start, err) }(time.Now())
	return a.cli.ContainerRestart(ctx, name, container.StopOptions{Timeout: a.stopTimeout})
}

func (a *Adapter) RemoveContainer(ctx context.Context, name string) (err error) {
	defer func(start time.Time) { a.observe("container_remove", start, err) }(time.Now())
	return a.cli.ContainerRemove(ctx, name, container.RemoveOptions{Force: true})
}

// GetContainerLogs returns stdout and stderr with timestamps. Output of
// containers without a TTY is multiplexed by the engine and is demuxed here.
func (a *Adapter) GetContainerLogs(ctx context.Context, name string) (_ io.ReadCloser, err error) {
	defer func(start time.Time) { a.observe("container_logs", start, err) }(time.Now())

	info, err := a.cli.ContainerInspect(ctx, name)
	if err != nil {
		return nil, err
	}

	rc, err := a.cli.ContainerLogs(ctx, name, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
	})
	if err != nil {
		return nil, err
	}
	if info.Config != nil && info.Config.Tty {
		return rc, nil
	}

	pr, pw := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, rc)
		rc.Close()
		pw.CloseWithError(err)
	}()
	return pr, nil
}

func (a *Adapter) ListImages(ctx context.Context) (result []domain.Image, err error) {
	defer func(start time.Time) { a.observe("image_list", start, err) }(time.Now())

	images, err := a.cli.ImageList(ctx, types.ImageListOptions{})
	if err != nil {
		return nil, err
	}

	result = make([]domain.Image, 0, len(images))
	for _, img := range images {
		result = append(result, domain.Image{
			ID:          img.ID,
			ParentID:    img.ParentID,
			RepoTags:    img.RepoTags,
			RepoDigests: img.RepoDigests,
			Size:        img.Size,
			Created:     img.Created,
			Containers:  img.Containers,
			Labels:      img.Labels,
		})
	}
	return result, nil
}

// PullImage pulls ref and blocks until the engine's progress stream reports
// completion or an error.
func (a *Adapter) PullImage(ctx context.Context, ref string, progress func(domain.PullProgress)) (err error) {
	defer func(start time.Time) { a.observe("image_pull", start, err) }(time.Now())

	reader, err := a.cli.ImagePull(ctx, ref, types.ImagePullOptions{})
	if err != nil {
		return err
	}
	defer reader.Close()

	return DrainMessages(reader, progress)
}

// RemoveImage removes an image by ID or reference. Untagged parents are
// pruned the same way the engine's API does by default.
func (a *Adapter) RemoveImage(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { a.observe("image_remove", start, err) }(time.Now())
	_, err = a.cli.ImageRemove(ctx, id, types.ImageRemoveOptions{PruneChildren: true})
	return err
}

func (a *Adapter) ListVolumes(ctx context.Context) (result []domain.Volume, err error) {
	defer func(start time.Time) { a.observe("volume_list", start, err) }(time.Now())

	resp, err := a.cli.VolumeList(ctx, volume.ListOptions{})
	if err != nil {
		return nil, err
	}

	result = make([]domain.Volume, 0, len(resp.Volumes))
	for _, v := range resp.Volumes {
		if v == nil {
			continue
		}
		vol := domain.Volume{
			Name:       v.Name,
			Driver:     v.Driver,
			Mountpoint: v.Mountpoint,
			CreatedAt:  v.CreatedAt,
			Scope:      v.Scope,
			Labels:     v.Labels,
		}
		if v.UsageData != nil {
			vol.UsageData = &domain.VolumeUsage{
				RefCount: v.UsageData.RefCount,
				Size:     v.UsageData.Size,
			}
		}
		result = append(result, vol)
	}
	return result, nil
}

// RemoveVolume is not forced: the engine refuses volumes still in use.
func (a *Adapter) RemoveVolume(ctx context.Context, name string) (err error) {
	defer func(start time.Time) { a.observe("volume_remove", start, err) }(time.Now())
	return a.cli.VolumeRemove(ctx, name, false)
}

func (a *Adapter) ListNetworks(ctx context.Context) (result []domain.Network, err error) {
	defer func(start time.Time) { a.observe("network_list", start, err) }(time.Now())

	networks, err := a.cli.NetworkList(ctx, types.NetworkListOptions{})
	if err != nil {
		return nil, err
	}

	result = make([]domain.Network, 0, len(networks))
	for _, n := range networks {
		result = append(result, domain.Network{
			ID:         n.ID,
			Name:       n.Name,
			Driver:     n.Driver,
			Scope:      n.Scope,
			Internal:   n.Internal,
			Attachable: n.Attachable,
			EnableIPv6: n.EnableIPv6,
			Created:    n.Created,
			Labels:     n.Labels,
		})
	}
	return result, nil
}

func (a *Adapter) RemoveNetwork(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { a.observe("network_remove", start, err) }(time.Now())
	return a.cli.NetworkRemove(ctx, id)
}
