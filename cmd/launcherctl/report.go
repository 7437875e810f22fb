package main

import (
	"retreivr-launcher/internal/domain"
)

func printDiagnostics(p *printer, r domain.DiagnosticsReport) {
	p.title("Retreivr diagnostics")
	p.status(r.DockerInstalled, "Docker CLI installed", "", "")
	p.status(r.DockerRunning, "Docker engine running", "", "")
	p.status(r.ComposeAvailable, "Compose plugin available", "", "")
	p.status(r.ComposeExists, "Compose file generated", r.ComposePath, "")
	p.status(r.ContainerRunning, "Container running", "", "")
	p.status(r.ServiceReachable, "Web UI reachable", r.WebURL, "")
	if r.LastError != "" {
		p.panel(p.render(failStyle, r.LastError))
	}
}

func printPreflight(p *printer, r domain.PreflightReport) {
	p.title("Start preflight")
	for _, check := range r.Checks {
		p.status(check.OK, check.Label, check.Details, check.Fix)
	}
}

func printLauncherVersion(p *printer, info domain.LauncherVersionInfo) {
	p.title("Launcher")
	p.field("current", info.CurrentVersion)
	if info.LatestVersion != "" {
		p.field("latest", info.LatestVersion)
	}
	switch {
	case info.CheckError != "":
		p.status(false, "Update check failed", info.CheckError, "")
	case info.UpdateAvailable:
		p.status(false, "Update available", info.ReleaseURL, "")
	default:
		p.status(true, "Up to date", "", "")
	}
}

func printImageStatus(p *printer, s domain.ImageUpdateStatus) {
	p.title("Image " + s.Image)
	if s.LocalImageID != "" {
		p.field("local", s.LocalImageID)
	}
	if s.RemoteImageID != "" {
		p.field("remote", s.RemoteImageID)
	}
	switch {
	case s.CheckError != "":
		p.status(false, "Image check failed", s.CheckError, "")
	case s.UpdateAvailable:
		p.status(false, "Newer image pulled", "run `launcherctl update apply` to restart", "")
	default:
		p.status(true, "Image current", "", "")
	}
}
