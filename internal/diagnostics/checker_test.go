package diagnostics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"retreivr-launcher/internal/config"
	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/engine"
	"retreivr-launcher/internal/probe"
)

type harness struct {
	runner       *probe.FakeRunner
	paths        config.Paths
	reachCalls   int
	reachResult  bool
	portFree     bool
	composeThere bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		runner:   probe.NewFakeRunner(),
		paths:    config.Paths{BaseDir: filepath.Join(t.TempDir(), "Retreivr")},
		portFree: true,
	}
}

func (h *harness) checker() *Checker {
	stat := func(path string) (os.FileInfo, error) {
		if path == h.paths.ComposePath() && h.composeThere {
			return nil, nil
		}
		return os.Stat(path)
	}
	reachable := func(uint16, time.Duration) bool {
		h.reachCalls++
		return h.reachResult
	}
	return NewCheckerForTests(
		engine.NewDocker(h.runner, h.paths.BaseDir),
		h.paths,
		nil,
		stat,
		os.MkdirAll,
		reachable,
		func(uint16) bool { return h.portFree },
	)
}

func (h *harness) healthyEngine() {
	h.runner.
		OK("docker --version", "Docker version 27.0.1").
		OK("docker info", "Server: ok").
		OK("docker compose version", "Docker Compose version v2.29.0").
		OK("docker compose config", "services: {}")
}

// TestRunAllHealthy validates the happy-path report.
func TestRunAllHealthy(t *testing.T) {
	h := newHarness(t)
	h.healthyEngine()
	h.runner.OK("docker compose ps -q", "4f1c2a")
	h.composeThere = true
	h.reachResult = true

	report := h.checker().Run(context.Background(), config.DefaultSettings())

	if !report.DockerInstalled || !report.DockerRunning || !report.ComposeAvailable ||
		!report.ComposeExists || !report.ContainerRunning || !report.ServiceReachable {
		t.Fatalf("expected all checks to pass, got %+v", report)
	}
	if report.LastError != "" {
		t.Fatalf("expected no last error, got %q", report.LastError)
	}
	if report.WebURL != "http://localhost:8090" {
		t.Fatalf("unexpected web url %q", report.WebURL)
	}
	if report.ComposePath != h.paths.ComposePath() || report.RuntimeDir != h.paths.BaseDir {
		t.Fatalf("unexpected paths in report: %+v", report)
	}
}

// TestRunDaemonDownSkipsLiveProbes validates gating on engine state.
func TestRunDaemonDownSkipsLiveProbes(t *testing.T) {
	h := newHarness(t)
	h.runner.
		OK("docker --version", "Docker version 27.0.1").
		Fail("docker info", "Cannot connect to the Docker daemon").
		OK("docker compose version", "v2")
	h.composeThere = true
	h.reachResult = true

	report := h.checker().Run(context.Background(), config.DefaultSettings())

	if report.ContainerRunning || report.ServiceReachable {
		t.Fatalf("expected container and service to be down, got %+v", report)
	}
	if h.runner.Called("docker compose ps -q") {
		t.Fatal("container probe should not run when the daemon is down")
	}
	if h.reachCalls != 0 {
		t.Fatalf("reachability probe should not run, got %d calls", h.reachCalls)
	}
	if report.LastError != "Docker daemon not running. Start Docker Desktop." {
		t.Fatalf("unexpected last error %q", report.LastError)
	}
}

// TestRunMissingComposeFileSkipsContainerProbe validates gating on the file.
func TestRunMissingComposeFileSkipsContainerProbe(t *testing.T) {
	h := newHarness(t)
	h.healthyEngine()

	report := h.checker().Run(context.Background(), config.DefaultSettings())

	if report.ComposeExists || report.ContainerRunning {
		t.Fatalf("unexpected report %+v", report)
	}
	if h.runner.Called("docker compose ps -q") {
		t.Fatal("container probe should not run without compose.yaml")
	}
	if report.LastError != "Compose file has not been generated yet." {
		t.Fatalf("unexpected last error %q", report.LastError)
	}
}

// TestRunLastErrorOrder validates the first failing step wins.
func TestRunLastErrorOrder(t *testing.T) {
	tests := []struct {
		name   string
		script func(h *harness)
		want   string
	}{
		{
			name: "docker missing",
			script: func(h *harness) {
				h.runner.
					Fail("docker --version", "").
					Fail("docker info", "").
					Fail("docker compose version", "")
			},
			want: "Docker CLI not found on PATH.",
		},
		{
			name: "compose plugin missing",
			script: func(h *harness) {
				h.runner.
					OK("docker --version", "v").
					OK("docker info", "ok").
					Fail("docker compose version", "unknown command")
				h.composeThere = true
				h.runner.OK("docker compose ps -q", "abc")
				h.reachResult = true
			},
			want: "Docker Compose plugin unavailable.",
		},
		{
			name: "container stopped",
			script: func(h *harness) {
				h.healthyEngine()
				h.composeThere = true
				h.runner.OK("docker compose ps -q", "")
			},
			want: "Retreivr container is not running.",
		},
		{
			name: "service unreachable",
			script: func(h *harness) {
				h.healthyEngine()
				h.composeThere = true
				h.runner.OK("docker compose ps -q", "abc")
			},
			want: "Retreivr service is not reachable on configured host port.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			tc.script(h)
			report := h.checker().Run(context.Background(), config.DefaultSettings())
			if report.LastError != tc.want {
				t.Fatalf("last error = %q, want %q", report.LastError, tc.want)
			}
		})
	}
}

// TestContainerRunningRequiresComposeFile validates the standalone probe.
func TestContainerRunningRequiresComposeFile(t *testing.T) {
	h := newHarness(t)
	h.runner.OK("docker compose ps -q", "abc")

	if h.checker().ContainerRunning(context.Background()) {
		t.Fatal("expected false without compose.yaml")
	}
	if h.runner.Called("docker compose ps -q") {
		t.Fatal("ps should not run without compose.yaml")
	}

	h.composeThere = true
	if !h.checker().ContainerRunning(context.Background()) {
		t.Fatal("expected running container")
	}
}

// TestPreflightInvalidSettingsSkipsRender validates the skip rule.
func TestPreflightInvalidSettingsSkipsRender(t *testing.T) {
	h := newHarness(t)
	h.healthyEngine()
	settings := config.DefaultSettings()
	settings.HostPort = 0

	report := h.checker().Preflight(context.Background(), settings)

	if report.OK {
		t.Fatal("expected preflight failure")
	}
	valid, ok := report.Check("settings_valid")
	if !ok || valid.OK {
		t.Fatalf("expected failing settings_valid, got %+v", valid)
	}
	if valid.Details != "invalid configuration: host_port must be between 1 and 65535" {
		t.Fatalf("unexpected details %q", valid.Details)
	}
	if _, ok := report.Check("runtime_dir_writable"); ok {
		t.Fatal("runtime_dir_writable should be skipped")
	}
	if _, ok := report.Check("compose_render"); ok {
		t.Fatal("compose_render should be skipped")
	}
	if _, err := os.Stat(h.paths.ComposePath()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("compose.yaml should not be written, stat err=%v", err)
	}
	if _, ok := report.Check("compose_valid"); !ok {
		t.Fatal("engine checks should still run")
	}
}

// TestPreflightAllPass validates order and side effects of a clean run.
func TestPreflightAllPass(t *testing.T) {
	h := newHarness(t)
	h.healthyEngine()

	report := h.checker().Preflight(context.Background(), config.DefaultSettings())

	if !report.OK {
		t.Fatalf("expected preflight to pass, got %+v", report.Checks)
	}
	wantKeys := []string{
		"settings_valid",
		"runtime_dir_writable",
		"compose_render",
		"docker_installed",
		"docker_running",
		"docker_permissions",
		"host_port_available",
		"compose_valid",
	}
	if len(report.Checks) != len(wantKeys) {
		t.Fatalf("expected %d checks, got %d", len(wantKeys), len(report.Checks))
	}
	for i, key := range wantKeys {
		if report.Checks[i].Key != key {
			t.Fatalf("check %d = %q, want %q", i, report.Checks[i].Key, key)
		}
	}
	if _, err := os.Stat(h.paths.ComposePath()); err != nil {
		t.Fatalf("compose.yaml not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(h.paths.BaseDir, "config", "config.json")); err != nil {
		t.Fatalf("seed config not written: %v", err)
	}
	port, _ := report.Check("host_port_available")
	if port.Label != "Host port 8090 availability" {
		t.Fatalf("unexpected label %q", port.Label)
	}

	var ranInRuntimeDir bool
	for _, cmd := range h.runner.Calls() {
		if cmd.String() == "docker compose version" && cmd.Dir == h.paths.BaseDir {
			ranInRuntimeDir = true
		}
	}
	if !ranInRuntimeDir {
		t.Fatal("expected compose version to run inside the runtime dir")
	}
}

// TestPreflightPortInUse validates the port check failure.
func TestPreflightPortInUse(t *testing.T) {
	h := newHarness(t)
	h.healthyEngine()
	h.portFree = false

	report := h.checker().Preflight(context.Background(), config.DefaultSettings())

	port, _ := report.Check("host_port_available")
	if port.OK || port.Details != "Configured host port is in use." {
		t.Fatalf("unexpected port check %+v", port)
	}
	if report.OK {
		t.Fatal("expected overall failure")
	}
}

// TestPreflightRuntimeDirFailure validates the unwritable base dir path.
func TestPreflightRuntimeDirFailure(t *testing.T) {
	h := newHarness(t)
	h.healthyEngine()
	c := h.checker()
	c.mkdirAll = func(string, os.FileMode) error { return errors.New("permission denied") }

	report := c.Preflight(context.Background(), config.DefaultSettings())

	dir, ok := report.Check("runtime_dir_writable")
	if !ok || dir.OK {
		t.Fatalf("expected failing runtime dir check, got %+v", dir)
	}
	if _, ok := report.Check("compose_render"); ok {
		t.Fatal("compose_render should not run after a runtime dir failure")
	}
}

// TestChecklistCounts validates onboarding aggregation.
func TestChecklistCounts(t *testing.T) {
	report := domain.DiagnosticsReport{
		DockerRunning:    true,
		ComposeAvailable: true,
		ContainerRunning: true,
		WebURL:           "http://localhost:8090",
	}

	checklist := Checklist(report, false)

	if checklist.Total != 4 || checklist.Completed != 2 {
		t.Fatalf("unexpected counts %d/%d", checklist.Completed, checklist.Total)
	}
	if checklist.Items[1].Key != "config_saved" || checklist.Items[1].Details != "Save configuration in Step 2." {
		t.Fatalf("unexpected config item %+v", checklist.Items[1])
	}
	if checklist.Items[3].Details != "Web UI not reachable yet at http://localhost:8090." {
		t.Fatalf("unexpected ui item %+v", checklist.Items[3])
	}
}

// TestChecklistDockerReadyNeedsCompose validates the combined docker item.
func TestChecklistDockerReadyNeedsCompose(t *testing.T) {
	checklist := Checklist(domain.DiagnosticsReport{DockerRunning: true}, true)

	if checklist.Items[0].Done {
		t.Fatal("docker_ready requires compose")
	}
	if checklist.Completed != 1 {
		t.Fatalf("expected only config_saved done, got %d", checklist.Completed)
	}
}
