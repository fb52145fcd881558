package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/melih/dockpanel/internal/adapters/builder"
	"github.com/melih/dockpanel/internal/adapters/docker"
	"github.com/melih/dockpanel/internal/adapters/http"
	"github.com/melih/dockpanel/internal/config"
	"github.com/melih/dockpanel/internal/logging"
	"github.com/melih/dockpanel/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

type rootOptions struct {
	configPath string
	listen     string
	dockerHost string
	logLevel   string
	dev        bool
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&rootOptions{})
}

func newRootCmdWith(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dockpanel",
		Short: "HTTP API for inspecting and controlling a Docker engine",
		Long: `dockpanel serves a small JSON API over the Docker engine's management
socket: list containers, images, volumes and networks, run lifecycle actions
on containers, and pull or remove images.

Example:
  dockpanel --listen :3001 --docker-host unix:///var/run/docker.sock`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVar(&opts.listen, "listen", "", "address to listen on (default :3001)")
	flags.StringVar(&opts.dockerHost, "docker-host", "", "Docker daemon address (default DOCKER_HOST or the local socket)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.dev, "dev", false, "human-readable development logging")

	return cmd
}

// loadConfig layers flags that were set explicitly over file and env.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("listen") {
		cfg.Listen = opts.listen
	}
	if flags.Changed("docker-host") {
		cfg.Docker.Host = opts.dockerHost
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("dev") {
		cfg.Log.Development = opts.dev
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logging.Init(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logging.Sync()

	var rec *metrics.Recorder
	if cfg.Metrics.Enabled {
		rec = metrics.New()
	}

	// 1. Initialize Adapters (Infrastructure)
	dockerAdapter, err := docker.NewAdapter(docker.Options{
		Host:        cfg.Docker.Host,
		APIVersion:  cfg.Docker.APIVersion,
		StopTimeout: cfg.Docker.StopTimeoutSeconds(),
		Metrics:     rec,
	})
	if err != nil {
		return err
	}
	defer dockerAdapter.Close()

	builderAdapter := builder.NewBuilderAdapter(dockerAdapter.Client(), cfg.Build.Dockerfile, rec)

	// 2. HTTP surface
	app := http.NewApp(http.Deps{
		Engine:       dockerAdapter,
		Builder:      builderAdapter,
		Metrics:      rec,
		MetricsPath:  cfg.Metrics.Path,
		AllowOrigins: cfg.CORS.AllowOrigins,
		Logger:       log.Named("http"),
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("listen", cfg.Listen))
		errCh <- app.Listen(cfg.Listen)
	}()

	// 3. Run until the listener fails or a signal arrives
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
