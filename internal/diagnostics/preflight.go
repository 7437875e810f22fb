package diagnostics

import (
	"context"
	"fmt"

	"retreivr-launcher/internal/compose"
	"retreivr-launcher/internal/config"
	"retreivr-launcher/internal/domain"
)

const noActionNeeded = "No action needed."

// Preflight runs the start-readiness checks in a fixed order. Directory and
// render checks are skipped when the settings are invalid; everything else
// runs regardless of earlier results.
func (c *Checker) Preflight(ctx context.Context, settings domain.Settings) domain.PreflightReport {
	var checks []domain.PreflightCheck

	settings = config.Normalize(settings)
	validErr := config.Validate(settings)
	checks = append(checks, settingsCheck(validErr))

	if validErr == nil {
		checks = append(checks, c.prepareChecks(settings)...)
	}

	_, err := c.docker.Version(ctx)
	checks = append(checks, check("docker_installed", "Docker CLI available", err == nil,
		"Docker CLI detected.", "Docker CLI not found on PATH.",
		"Install Docker Desktop and relaunch the launcher."))

	_, err = c.docker.Info(ctx)
	checks = append(checks, check("docker_running", "Docker engine running", err == nil,
		"Docker daemon is available.", "Docker daemon unavailable.",
		"Start Docker Desktop and wait for engine startup."))

	_, err = c.docker.ComposeVersionInRuntimeDir(ctx)
	checks = append(checks, check("docker_permissions", "Docker compose access", err == nil,
		"Docker compose command is executable.", "Cannot execute docker compose.",
		"Check Docker permissions and ensure compose plugin is installed."))

	checks = append(checks, check("host_port_available",
		fmt.Sprintf("Host port %d availability", settings.HostPort),
		settings.HostPort != 0 && c.portAvailable(settings.HostPort),
		"Configured host port is available.", "Configured host port is in use.",
		"Choose another host port in configuration and save."))

	_, err = c.docker.ComposeConfig(ctx)
	checks = append(checks, check("compose_valid", "Compose file validation", err == nil,
		"Compose file validation passed.", "Compose validation failed.",
		"Review configuration values and retry."))

	report := domain.PreflightReport{OK: true, Checks: checks}
	for _, item := range checks {
		if !item.OK {
			report.OK = false
			break
		}
	}
	c.logger.Debug("preflight completed", "ok", report.OK, "checks", len(checks))
	return report
}

// prepareChecks creates the runtime directories and writes compose.yaml.
func (c *Checker) prepareChecks(settings domain.Settings) []domain.PreflightCheck {
	base := c.paths.BaseDir
	if err := c.mkdirAll(base, 0o755); err != nil {
		return []domain.PreflightCheck{runtimeDirFailure(err)}
	}
	if err := compose.EnsureRuntimeDirs(base, settings); err != nil {
		return []domain.PreflightCheck{runtimeDirFailure(err)}
	}
	writable := domain.PreflightCheck{
		Key:     "runtime_dir_writable",
		Label:   "Runtime directory",
		OK:      true,
		Details: "Runtime directory is writable.",
		Fix:     noActionNeeded,
	}

	content := compose.Render(base, settings)
	err := compose.Lint(content)
	if err == nil {
		err = compose.WriteFile(c.paths.ComposePath(), content)
	}
	if err != nil {
		return []domain.PreflightCheck{writable, {
			Key:     "compose_render",
			Label:   "Compose generation",
			Details: err.Error(),
			Fix:     "Verify app-data permissions and retry.",
		}}
	}
	return []domain.PreflightCheck{writable, {
		Key:     "compose_render",
		Label:   "Compose generation",
		OK:      true,
		Details: "Compose file generated from current settings.",
		Fix:     noActionNeeded,
	}}
}

func settingsCheck(err error) domain.PreflightCheck {
	item := domain.PreflightCheck{
		Key:     "settings_valid",
		Label:   "Configuration validity",
		OK:      err == nil,
		Details: "Configuration values are valid.",
		Fix:     "Update host port, image, and container name, then save configuration.",
	}
	if err != nil {
		item.Details = err.Error()
	}
	return item
}

func runtimeDirFailure(err error) domain.PreflightCheck {
	return domain.PreflightCheck{
		Key:     "runtime_dir_writable",
		Label:   "Runtime directory",
		Details: err.Error(),
		Fix:     "Ensure your user can write to the launcher app-data directory.",
	}
}

func check(key, label string, ok bool, pass, fail, fix string) domain.PreflightCheck {
	item := domain.PreflightCheck{Key: key, Label: label, OK: ok, Details: pass, Fix: fix}
	if !ok {
		item.Details = fail
	}
	return item
}
