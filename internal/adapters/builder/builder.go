package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/pkg/archive"
	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"

	"github.com/melih/dockpanel/internal/adapters/docker"
	"github.com/melih/dockpanel/internal/core/domain"
	"github.com/melih/dockpanel/internal/core/ports"
	"github.com/melih/dockpanel/internal/logging"
	"github.com/melih/dockpanel/internal/metrics"
)

var _ ports.BuilderService = (*Adapter)(nil)

// ImageBuilder is the part of the Docker client the builder needs.
type ImageBuilder interface {
	ImageBuild(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error)
}

// CloneFunc checks a repository out into dir.
type CloneFunc func(ctx context.Context, dir, repoURL string) error

type Adapter struct {
	cli        ImageBuilder
	clone      CloneFunc
	dockerfile string
	metrics    *metrics.Recorder
	log        *zap.Logger
}

// NewBuilderAdapter builds images through cli, using the Dockerfile at the
// given path relative to the repository root.
func NewBuilderAdapter(cli ImageBuilder, dockerfile string, rec *metrics.Recorder) *Adapter {
	return &Adapter{
		cli:        cli,
		clone:      shallowClone,
		dockerfile: dockerfile,
		metrics:    rec,
		log:        logging.Component("builder"),
	}
}

func shallowClone(ctx context.Context, dir, repoURL string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   repoURL,
		Depth: 1,
	})
	return err
}

// BuildImage clones a repo and builds a Docker image
func (a *Adapter) BuildImage(ctx context.Context, repoURL string, imageName string) (_ string, err error) {
	tmpDir, err := os.MkdirTemp("", "dockpanel-build-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	a.log.Info("cloning repository", zap.String("repo", repoURL), zap.String("dir", tmpDir))
	if err := a.clone(ctx, tmpDir, repoURL); err != nil {
		return "", fmt.Errorf("failed to clone repo: %w", err)
	}

	tar, err := archive.TarWithOptions(tmpDir, &archive.TarOptions{
		ExcludePatterns: []string{".git"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create build context: %w", err)
	}
	defer tar.Close()

	a.log.Info("building image", zap.String("image", imageName))
	start := time.Now()
	defer func() { a.metrics.ObserveEngineCall("image_build", err, time.Since(start)) }()

	resp, err := a.cli.ImageBuild(ctx, tar, types.ImageBuildOptions{
		Tags:        []string{imageName},
		Dockerfile:  a.dockerfile,
		Remove:      true,
		ForceRemove: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build image: %w", err)
	}
	defer resp.Body.Close()

	// The build is only finished once the stream is fully read.
	err = docker.DrainMessages(resp.Body, func(p domain.PullProgress) {
		if p.Status != "" {
			a.log.Debug("build", zap.String("image", imageName), zap.String("output", p.Status))
		}
	})
	if err != nil {
		return "", fmt.Errorf("failed to build image: %w", err)
	}

	return imageName, nil
}
