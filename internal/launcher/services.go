// Package launcher assembles the launcher's components from the OS
// environment. The desktop app and launcherctl share it.
package launcher

import (
	"fmt"
	"log/slog"

	"retreivr-launcher/internal/config"
	"retreivr-launcher/internal/diagnostics"
	"retreivr-launcher/internal/engine"
	"retreivr-launcher/internal/lifecycle"
	"retreivr-launcher/internal/platform"
	"retreivr-launcher/internal/probe"
	"retreivr-launcher/internal/updates"
)

// Version is the launcher release, overridden at build time with
// -ldflags "-X retreivr-launcher/internal/launcher.Version=...".
var Version = "0.1.0"

// Services is the fully wired launcher.
type Services struct {
	Paths     config.Paths
	Store     *config.JSONStore
	Runner    probe.Runner
	Docker    *engine.Docker
	Checker   *diagnostics.Checker
	Updates   *updates.Checker
	Lifecycle *lifecycle.Controller
	Platform  platform.Adapter
	Logger    *slog.Logger
}

// New resolves the app-data directory and wires every component to it.
func New(logger *slog.Logger) (*Services, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("resolve launcher paths: %w", err)
	}
	return NewWithPaths(paths, probe.NewExecRunner(logger), logger), nil
}

// NewWithPaths wires components over an explicit layout and runner.
func NewWithPaths(paths config.Paths, runner probe.Runner, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}
	store := config.NewJSONStore(paths.SettingsPath(), logger)
	docker := engine.NewDocker(runner, paths.BaseDir)
	adapter := platform.New(runner)

	return &Services{
		Paths:     paths,
		Store:     store,
		Runner:    runner,
		Docker:    docker,
		Checker:   diagnostics.NewChecker(docker, paths, logger),
		Updates:   updates.NewChecker(runner, adapter, docker, logger),
		Lifecycle: lifecycle.New(store, paths, docker, logger),
		Platform:  adapter,
		Logger:    logger,
	}
}
