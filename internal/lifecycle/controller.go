// Package lifecycle prepares runtime files and drives the service through
// docker compose.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"retreivr-launcher/internal/compose"
	"retreivr-launcher/internal/config"
	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/engine"
)

const (
	msgImageUpdated = "Retreivr image updated and container restarted."
	msgImageCurrent = "Retreivr image already current; container restart applied."
)

// Controller owns the start/stop/update flows and settings persistence
// side effects.
type Controller struct {
	store    config.Store
	paths    config.Paths
	docker   *engine.Docker
	logger   *slog.Logger
	mkdirAll func(string, os.FileMode) error
}

// New wires a controller.
func New(store config.Store, paths config.Paths, docker *engine.Docker, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:    store,
		paths:    paths,
		docker:   docker,
		logger:   logger,
		mkdirAll: os.MkdirAll,
	}
}

// Settings returns the persisted settings, or defaults.
func (c *Controller) Settings() domain.Settings {
	return c.store.Load()
}

// Prepare creates the runtime directory tree and writes compose.yaml for
// settings. Settings must already be valid.
func (c *Controller) Prepare(settings domain.Settings) error {
	if err := c.mkdirAll(c.paths.BaseDir, 0o755); err != nil {
		return fmt.Errorf("%w: create runtime dir: %v", domain.ErrIO, err)
	}
	if err := compose.EnsureRuntimeDirs(c.paths.BaseDir, settings); err != nil {
		return err
	}
	return compose.WriteFile(c.paths.ComposePath(), compose.Render(c.paths.BaseDir, settings))
}

// Install validates the stored settings, prepares the runtime files and
// brings the stack up.
func (c *Controller) Install(ctx context.Context) error {
	settings := c.store.Load()
	if err := config.Validate(settings); err != nil {
		return err
	}
	if err := c.Prepare(settings); err != nil {
		return err
	}
	if _, err := c.docker.ComposeUp(ctx); err != nil {
		return fmt.Errorf("start retreivr: %w", err)
	}
	c.logger.Info("retreivr started", "image", settings.Image, "port", settings.HostPort)
	return nil
}

// Stop tears the stack down.
func (c *Controller) Stop(ctx context.Context) error {
	if _, err := c.docker.ComposeDown(ctx); err != nil {
		return fmt.Errorf("stop retreivr: %w", err)
	}
	c.logger.Info("retreivr stopped")
	return nil
}

// UpdateAndRestart pulls the configured image and recreates the service.
// The message reports whether the pull changed the local image.
func (c *Controller) UpdateAndRestart(ctx context.Context) (string, error) {
	settings := c.store.Load()
	if err := config.Validate(settings); err != nil {
		return "", err
	}
	if err := c.Prepare(settings); err != nil {
		return "", err
	}

	before := c.docker.ImageID(ctx, settings.Image)
	if _, err := c.docker.Pull(ctx, settings.Image); err != nil {
		return "", fmt.Errorf("pull %s: %w", settings.Image, err)
	}
	after := c.docker.ImageID(ctx, settings.Image)
	updated := before != "" && after != "" && before != after

	if _, err := c.docker.ComposeUp(ctx, compose.ServiceName); err != nil {
		return "", fmt.Errorf("restart retreivr: %w", err)
	}

	c.logger.Info("retreivr restarted", "image", settings.Image, "updated", updated)
	if updated {
		return msgImageUpdated, nil
	}
	return msgImageCurrent, nil
}

// SaveSettings persists settings and regenerates the runtime files from
// them. It returns the normalized settings.
func (c *Controller) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	saved, err := c.store.Save(settings)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := c.Prepare(saved); err != nil {
		return domain.Settings{}, err
	}
	return saved, nil
}

// ResetSettings persists the defaults and regenerates the runtime files.
func (c *Controller) ResetSettings() (domain.Settings, error) {
	defaults, err := c.store.Reset()
	if err != nil {
		return domain.Settings{}, err
	}
	if err := c.Prepare(defaults); err != nil {
		return domain.Settings{}, err
	}
	return defaults, nil
}

// Logs returns the service log tail.
func (c *Controller) Logs(ctx context.Context, lines int) (string, error) {
	out, err := c.docker.ComposeLogs(ctx, lines)
	if err != nil {
		return "", fmt.Errorf("read retreivr logs: %w", err)
	}
	return out, nil
}

// RuntimeDir creates and returns the directory holding compose.yaml.
func (c *Controller) RuntimeDir() (string, error) {
	if err := c.mkdirAll(c.paths.BaseDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create runtime dir: %v", domain.ErrIO, err)
	}
	return c.paths.BaseDir, nil
}

// DataDir creates and returns the resolved host directory behind /data.
func (c *Controller) DataDir() (string, error) {
	dir := compose.ResolveMountSource(c.paths.BaseDir, c.store.Load().DataDir)
	if err := c.mkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create data dir: %v", domain.ErrIO, err)
	}
	return dir, nil
}
