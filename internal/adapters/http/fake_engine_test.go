package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/melih/dockpanel/internal/core/domain"
)

// fakeEngine is an in-memory engine that records every call. Lookups by a
// "/"-prefixed name fail, as they do on a real engine.
type fakeEngine struct {
	mu    sync.Mutex
	calls []string

	containers []domain.Container
	images     []domain.Image
	volumes    []domain.Volume
	networks   []domain.Network

	// failures forces an error for the named operation.
	failures map[string]error
	// pullEvents are replayed to the progress callback of PullImage.
	pullEvents []domain.PullProgress
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		containers: []domain.Container{
			{ID: "c1", Names: []string{"/web-1"}, Image: "nginx:latest", State: domain.StateRunning},
			{ID: "c2", Names: []string{"/db"}, Image: "postgres:16", State: domain.StateExited},
		},
		images: []domain.Image{
			{ID: "sha256:nginx", RepoTags: []string{"nginx:latest"}, Size: 1000},
		},
		volumes: []domain.Volume{
			{Name: "data", Driver: "local", UsageData: &domain.VolumeUsage{RefCount: 1}},
			{Name: "scratch", Driver: "local"},
		},
		networks: []domain.Network{
			{ID: "n-bridge", Name: "bridge", Driver: "bridge"},
			{ID: "n-app", Name: "app_default", Driver: "bridge"},
		},
		failures: map[string]error{},
	}
}

func (f *fakeEngine) record(op string, arg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if arg != "" {
		op = op + ":" + arg
	}
	f.calls = append(f.calls, op)
	return f.failures[strings.SplitN(op, ":", 2)[0]]
}

func (f *fakeEngine) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeEngine) findContainer(name string) (int, error) {
	if strings.HasPrefix(name, "/") {
		return -1, fmt.Errorf("invalid container name %q", name)
	}
	for i, c := range f.containers {
		if c.ID == name || c.DisplayName() == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("No such container: %s", name)
}

func (f *fakeEngine) Ping(ctx context.Context) (string, error) {
	if err := f.record("ping", ""); err != nil {
		return "", err
	}
	return "1.43", nil
}

func (f *fakeEngine) ListContainers(ctx context.Context) ([]domain.Container, error) {
	if err := f.record("container_list", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Container{}, f.containers...), nil
}

func (f *fakeEngine) setState(op, name, state string) error {
	if err := f.record(op, name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.findContainer(name)
	if err != nil {
		return err
	}
	f.containers[i].State = state
	return nil
}

func (f *fakeEngine) StartContainer(ctx context.Context, name string) error {
	return f.setState("container_start", name, domain.StateRunning)
}

func (f *fakeEngine) StopContainer(ctx context.Context, name string) error {
	return f.setState("container_stop", name, domain.StateExited)
}

func (f *fakeEngine) RestartContainer(ctx context.Context, name string) error {
	return f.setState("container_restart", name, domain.StateRunning)
}

func (f *fakeEngine) RemoveContainer(ctx context.Context, name string) error {
	if err := f.record("container_remove", name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.findContainer(name)
	if err != nil {
		return err
	}
	f.containers = append(f.containers[:i], f.containers[i+1:]...)
	return nil
}

func (f *fakeEngine) GetContainerLogs(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := f.record("container_logs", name); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.findContainer(name); err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader("2024-01-01T00:00:00Z hello\n")), nil
}

func (f *fakeEngine) ListImages(ctx context.Context) ([]domain.Image, error) {
	if err := f.record("image_list", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Image{}, f.images...), nil
}

func (f *fakeEngine) PullImage(ctx context.Context, ref string, progress func(domain.PullProgress)) error {
	if err := f.record("image_pull", ref); err != nil {
		return err
	}
	for _, ev := range f.pullEvents {
		if progress != nil {
			progress(ev)
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images = append(f.images, domain.Image{ID: "sha256:" + ref, RepoTags: []string{ref}})
	return nil
}

func (f *fakeEngine) RemoveImage(ctx context.Context, id string) error {
	if err := f.record("image_remove", id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, img := range f.images {
		if img.ID == id || contains(img.RepoTags, id) {
			f.images = append(f.images[:i], f.images[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("No such image: %s", id)
}

func (f *fakeEngine) ListVolumes(ctx context.Context) ([]domain.Volume, error) {
	if err := f.record("volume_list", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Volume{}, f.volumes...), nil
}

func (f *fakeEngine) RemoveVolume(ctx context.Context, name string) error {
	if err := f.record("volume_remove", name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, v := range f.volumes {
		if v.Name != name {
			continue
		}
		if v.InUse() {
			return fmt.Errorf("remove %s: volume is in use - [c1]", name)
		}
		f.volumes = append(f.volumes[:i], f.volumes[i+1:]...)
		return nil
	}
	return fmt.Errorf("get %s: no such volume", name)
}

func (f *fakeEngine) ListNetworks(ctx context.Context) ([]domain.Network, error) {
	if err := f.record("network_list", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Network{}, f.networks...), nil
}

func (f *fakeEngine) RemoveNetwork(ctx context.Context, id string) error {
	if err := f.record("network_remove", id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.networks {
		if n.ID != id && n.Name != id {
			continue
		}
		if n.IsDefault() {
			return fmt.Errorf("%s is a pre-defined network and cannot be removed", n.Name)
		}
		f.networks = append(f.networks[:i], f.networks[i+1:]...)
		return nil
	}
	return fmt.Errorf("network %s not found", id)
}

type fakeBuilder struct {
	calls int
	err   error
}

func (b *fakeBuilder) BuildImage(ctx context.Context, repoURL string, imageName string) (string, error) {
	b.calls++
	if b.err != nil {
		return "", b.err
	}
	return imageName, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var errEngineDown = errors.New("Cannot connect to the Docker daemon at unix:///var/run/docker.sock. Is the docker daemon running?")
