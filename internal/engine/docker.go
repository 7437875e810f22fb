// Package engine speaks the subset of the docker CLI the launcher relies on.
package engine

import (
	"context"
	"strconv"
	"time"

	"retreivr-launcher/internal/compose"
	"retreivr-launcher/internal/probe"
)

const (
	// Binary is the container engine executable.
	Binary = "docker"

	DefaultLogLines = 200
	MinLogLines     = 20
	MaxLogLines     = 2000
)

// Docker runs docker and docker compose subcommands. Compose subcommands
// execute inside the runtime directory that holds compose.yaml.
type Docker struct {
	runner     probe.Runner
	runtimeDir string
	probeLimit time.Duration
}

// NewDocker binds the CLI contract to a runner and runtime directory.
func NewDocker(runner probe.Runner, runtimeDir string) *Docker {
	return &Docker{runner: runner, runtimeDir: runtimeDir}
}

// WithProbeTimeout bounds the quick status probes (version, info, ps).
func (d *Docker) WithProbeTimeout(timeout time.Duration) *Docker {
	d.probeLimit = timeout
	return d
}

// RuntimeDir is the working directory for compose subcommands.
func (d *Docker) RuntimeDir() string {
	return d.runtimeDir
}

// Version runs `docker --version`.
func (d *Docker) Version(ctx context.Context) (string, error) {
	return d.runner.Output(ctx, d.quick("--version"))
}

// Info runs `docker info`, which fails when the daemon is down.
func (d *Docker) Info(ctx context.Context) (string, error) {
	return d.runner.Output(ctx, d.quick("info"))
}

// ComposeVersion runs `docker compose version`.
func (d *Docker) ComposeVersion(ctx context.Context) (string, error) {
	return d.runner.Output(ctx, d.quick("compose", "version"))
}

// ComposeVersionInRuntimeDir runs `docker compose version` from the runtime
// directory, proving compose subcommands can execute there.
func (d *Docker) ComposeVersionInRuntimeDir(ctx context.Context) (string, error) {
	cmd := d.compose("compose", "version")
	cmd.Timeout = d.probeLimit
	return d.runner.Output(ctx, cmd)
}

// ComposePS runs `docker compose ps -q` and returns running container IDs.
func (d *Docker) ComposePS(ctx context.Context) (string, error) {
	cmd := d.compose("compose", "ps", "-q")
	cmd.Timeout = d.probeLimit
	return d.runner.Output(ctx, cmd)
}

// ComposeUp runs `docker compose up -d [services...]`.
func (d *Docker) ComposeUp(ctx context.Context, services ...string) (string, error) {
	args := append([]string{"compose", "up", "-d"}, services...)
	return d.runner.Output(ctx, d.compose(args...))
}

// ComposeDown runs `docker compose down`.
func (d *Docker) ComposeDown(ctx context.Context) (string, error) {
	return d.runner.Output(ctx, d.compose("compose", "down"))
}

// ComposeLogs returns the service log tail; lines is clamped to
// [MinLogLines, MaxLogLines] and defaults to DefaultLogLines when zero.
func (d *Docker) ComposeLogs(ctx context.Context, lines int) (string, error) {
	tail := strconv.Itoa(ClampLogLines(lines))
	return d.runner.Output(ctx, d.compose("compose", "logs", "--tail", tail, compose.ServiceName))
}

// ComposeConfig runs `docker compose config` to validate compose.yaml.
func (d *Docker) ComposeConfig(ctx context.Context) (string, error) {
	return d.runner.Output(ctx, d.compose("compose", "config"))
}

// ImageID returns the local content-addressed image ID, or "" when the
// image is absent or inspect fails.
func (d *Docker) ImageID(ctx context.Context, image string) string {
	out, err := d.runner.Output(ctx, probe.Command{
		Name: Binary,
		Args: []string{"image", "inspect", image, "--format", "{{.Id}}"},
	})
	if err != nil {
		return ""
	}
	return out
}

// Pull runs `docker pull <image>`.
func (d *Docker) Pull(ctx context.Context, image string) (string, error) {
	return d.runner.Output(ctx, probe.Command{Name: Binary, Args: []string{"pull", image}})
}

// ClampLogLines applies the log tail default and bounds.
func ClampLogLines(lines int) int {
	switch {
	case lines <= 0:
		return DefaultLogLines
	case lines < MinLogLines:
		return MinLogLines
	case lines > MaxLogLines:
		return MaxLogLines
	default:
		return lines
	}
}

func (d *Docker) quick(args ...string) probe.Command {
	return probe.Command{Name: Binary, Args: args, Timeout: d.probeLimit}
}

func (d *Docker) compose(args ...string) probe.Command {
	return probe.Command{Name: Binary, Args: args, Dir: d.runtimeDir}
}
