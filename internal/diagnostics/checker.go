// Package diagnostics runs the launcher's health chain, start preflight,
// and onboarding checklist.
package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"retreivr-launcher/internal/config"
	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/engine"
	"retreivr-launcher/internal/probe"
)

// Blocking reasons, in dependency order.
const (
	reasonDockerMissing     = "Docker CLI not found on PATH."
	reasonDaemonDown        = "Docker daemon not running. Start Docker Desktop."
	reasonComposeMissing    = "Docker Compose plugin unavailable."
	reasonComposeFileAbsent = "Compose file has not been generated yet."
	reasonContainerStopped  = "Retreivr container is not running."
	reasonUnreachable       = "Retreivr service is not reachable on configured host port."
)

// Checker probes the container engine, the generated files, and the
// service port. Every report is computed fresh.
type Checker struct {
	docker        *engine.Docker
	paths         config.Paths
	logger        *slog.Logger
	stat          func(string) (os.FileInfo, error)
	mkdirAll      func(string, os.FileMode) error
	reachable     func(uint16, time.Duration) bool
	portAvailable func(uint16) bool
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker(docker *engine.Docker, paths config.Paths, logger *slog.Logger) *Checker {
	return NewCheckerForTests(docker, paths, logger, os.Stat, os.MkdirAll, probe.Reachable, probe.PortAvailable)
}

// NewCheckerForTests creates checker with injectable dependencies.
func NewCheckerForTests(
	docker *engine.Docker,
	paths config.Paths,
	logger *slog.Logger,
	stat func(string) (os.FileInfo, error),
	mkdirAll func(string, os.FileMode) error,
	reachable func(uint16, time.Duration) bool,
	portAvailable func(uint16) bool,
) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		docker:        docker,
		paths:         paths,
		logger:        logger,
		stat:          stat,
		mkdirAll:      mkdirAll,
		reachable:     reachable,
		portAvailable: portAvailable,
	}
}

// Run executes the six-step health chain. Later steps still report their
// own result, but a step whose prerequisite failed is false without its
// probe being invoked.
func (c *Checker) Run(ctx context.Context, settings domain.Settings) domain.DiagnosticsReport {
	report := domain.DiagnosticsReport{
		WebURL:      WebURL(settings),
		ComposePath: c.paths.ComposePath(),
		RuntimeDir:  c.paths.BaseDir,
	}

	_, err := c.docker.Version(ctx)
	report.DockerInstalled = err == nil
	_, err = c.docker.Info(ctx)
	report.DockerRunning = err == nil
	_, err = c.docker.ComposeVersion(ctx)
	report.ComposeAvailable = err == nil
	report.ComposeExists = c.composeExists()

	if report.DockerRunning && report.ComposeExists {
		report.ContainerRunning = c.containerListed(ctx)
	}
	if report.ContainerRunning {
		report.ServiceReachable = c.reachable(settings.HostPort, probe.ReachTimeout)
	}

	report.LastError = blockingReason(report)
	c.logger.Debug("diagnostics completed",
		"docker_installed", report.DockerInstalled,
		"docker_running", report.DockerRunning,
		"compose_available", report.ComposeAvailable,
		"compose_exists", report.ComposeExists,
		"container_running", report.ContainerRunning,
		"service_reachable", report.ServiceReachable,
		"last_error", report.LastError)
	return report
}

// ContainerRunning reports whether compose lists a live container. It is
// false without probing when compose.yaml is absent.
func (c *Checker) ContainerRunning(ctx context.Context) bool {
	if !c.composeExists() {
		return false
	}
	return c.containerListed(ctx)
}

// DockerAvailable reports whether the daemon answers `docker info`.
func (c *Checker) DockerAvailable(ctx context.Context) bool {
	_, err := c.docker.Info(ctx)
	return err == nil
}

// ComposeExists reports whether compose.yaml has been generated.
func (c *Checker) ComposeExists() bool {
	return c.composeExists()
}

func (c *Checker) composeExists() bool {
	_, err := c.stat(c.paths.ComposePath())
	return err == nil
}

func (c *Checker) containerListed(ctx context.Context) bool {
	out, err := c.docker.ComposePS(ctx)
	return err == nil && out != ""
}

// WebURL is the address the service UI is published on.
func WebURL(settings domain.Settings) string {
	return fmt.Sprintf("http://localhost:%d", settings.HostPort)
}

// blockingReason returns the first failing step's message, or "".
func blockingReason(r domain.DiagnosticsReport) string {
	switch {
	case !r.DockerInstalled:
		return reasonDockerMissing
	case !r.DockerRunning:
		return reasonDaemonDown
	case !r.ComposeAvailable:
		return reasonComposeMissing
	case !r.ComposeExists:
		return reasonComposeFileAbsent
	case !r.ContainerRunning:
		return reasonContainerStopped
	case !r.ServiceReachable:
		return reasonUnreachable
	default:
		return ""
	}
}
