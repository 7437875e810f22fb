package diagnostics

import (
	"context"
	"fmt"

	"retreivr-launcher/internal/domain"
)

// Onboarding runs diagnostics and folds the result into the first-run
// checklist.
func (c *Checker) Onboarding(ctx context.Context, settings domain.Settings, settingsSaved bool) domain.OnboardingChecklist {
	return Checklist(c.Run(ctx, settings), settingsSaved)
}

// Checklist derives the four onboarding milestones from a diagnostics
// report and whether a settings file has been saved.
func Checklist(report domain.DiagnosticsReport, settingsSaved bool) domain.OnboardingChecklist {
	dockerReady := report.DockerRunning && report.ComposeAvailable
	items := []domain.ChecklistItem{
		item("docker_ready", "Docker ready", dockerReady,
			"Docker engine and compose are available.",
			"Start Docker Desktop and verify compose availability."),
		item("config_saved", "Configuration saved", settingsSaved,
			"Launcher configuration file found.",
			"Save configuration in Step 2."),
		item("container_healthy", "Container healthy", report.ContainerRunning,
			"Retreivr container is running.",
			"Start Retreivr in Step 3."),
		item("ui_reachable", "Web UI reachable", report.ServiceReachable,
			fmt.Sprintf("UI responds at %s.", report.WebURL),
			fmt.Sprintf("Web UI not reachable yet at %s.", report.WebURL)),
	}

	checklist := domain.OnboardingChecklist{Total: len(items), Items: items}
	for _, it := range items {
		if it.Done {
			checklist.Completed++
		}
	}
	return checklist
}

func item(key, label string, done bool, doneDetails, pendingDetails string) domain.ChecklistItem {
	details := pendingDetails
	if done {
		details = doneDetails
	}
	return domain.ChecklistItem{Key: key, Label: label, Done: done, Details: details}
}
