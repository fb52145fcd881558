package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Environment variables that override the file.
const (
	EnvListen      = "DOCKPANEL_LISTEN"
	EnvDockerHost  = "DOCKPANEL_DOCKER_HOST"
	EnvCORSOrigins = "DOCKPANEL_CORS_ORIGINS"
)

type Config struct {
	Listen  string        `yaml:"listen"`
	Docker  DockerConfig  `yaml:"docker"`
	CORS    CORSConfig    `yaml:"cors"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Build   BuildConfig   `yaml:"build"`
}

type DockerConfig struct {
	// Host is a daemon address such as unix:///var/run/docker.sock. Empty
	// means DOCKER_HOST or the platform default.
	Host string `yaml:"host"`
	// APIVersion pins the API version; empty negotiates with the daemon.
	APIVersion string `yaml:"apiVersion"`
	// StopTimeout is the grace period in seconds passed to stop and
	// restart. Zero leaves it to the engine.
	StopTimeout int `yaml:"stopTimeout"`
}

type CORSConfig struct {
	AllowOrigins string `yaml:"allowOrigins"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type BuildConfig struct {
	Dockerfile string `yaml:"dockerfile"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen: ":3001",
		CORS:   CORSConfig{AllowOrigins: "*"},
		Log:    LogConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Build: BuildConfig{Dockerfile: "Dockerfile"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}
	if v := os.Getenv(EnvDockerHost); v != "" {
		c.Docker.Host = v
	}
	if v := os.Getenv(EnvCORSOrigins); v != "" {
		c.CORS.AllowOrigins = v
	}
}

// Validate checks all configuration values for correctness.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("%w: listen address is empty", ErrInvalid)
	}
	if c.Docker.StopTimeout < 0 {
		return fmt.Errorf("%w: docker.stopTimeout must not be negative, got %d", ErrInvalid, c.Docker.StopTimeout)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path %q must start with /", ErrInvalid, c.Metrics.Path)
	}
	if c.Build.Dockerfile == "" {
		return fmt.Errorf("%w: build.dockerfile is empty", ErrInvalid)
	}
	return nil
}

// StopTimeoutSeconds returns the stop grace period, or nil for the engine
// default.
func (d DockerConfig) StopTimeoutSeconds() *int {
	if d.StopTimeout == 0 {
		return nil
	}
	t := d.StopTimeout
	return &t
}
