//go:build windows

package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/probe"
)

const folderDialogScript = "[void][Reflection.Assembly]::LoadWithPartialName('System.Windows.Forms'); " +
	"$dialog = New-Object System.Windows.Forms.FolderBrowserDialog; " +
	"if ($dialog.ShowDialog() -eq [System.Windows.Forms.DialogResult]::OK) { $dialog.SelectedPath }"

type windowsAdapter struct {
	runner probe.Runner
	start  func(name string, args ...string) error
}

func newAdapter(runner probe.Runner, start func(name string, args ...string) error) Adapter {
	return &windowsAdapter{runner: runner, start: start}
}

func (a *windowsAdapter) OpenPath(path string) error {
	return a.start("explorer", filepath.Clean(path))
}

func (a *windowsAdapter) PickFolder(ctx context.Context) (string, error) {
	out, err := a.runner.Output(ctx, probe.Command{
		Name: "powershell",
		Args: []string{"-NoProfile", "-Command", folderDialogScript},
	})
	if err != nil {
		return "", err
	}
	return pickedPath(out), nil
}

// FetchURL uses Invoke-RestMethod and re-encodes the result as compact JSON.
func (a *windowsAdapter) FetchURL(ctx context.Context, url, userAgent string) (string, error) {
	script := fmt.Sprintf(
		"$ProgressPreference='SilentlyContinue'; (Invoke-RestMethod -Uri '%s' -Headers @{ 'User-Agent'='%s' } | ConvertTo-Json -Compress)",
		psQuote(url), psQuote(userAgent),
	)
	return a.runner.Output(ctx, probe.Command{
		Name: "powershell",
		Args: []string{"-NoProfile", "-Command", script},
	})
}

func (a *windowsAdapter) Guidance() domain.InstallGuidance {
	return domain.InstallGuidance{
		OS:         "windows",
		InstallURL: "https://www.docker.com/products/docker-desktop/",
		InstallCTA: "Download Docker Desktop for Windows",
		Steps: []string{
			"Install Docker Desktop and enable required virtualization features.",
			"Launch Docker Desktop and wait for engine startup.",
			recheckStep,
		},
	}
}

// psQuote escapes a value for a single-quoted PowerShell string.
func psQuote(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
