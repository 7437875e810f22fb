//go:build darwin

package platform

import (
	"context"
	"errors"

	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/probe"
)

type darwinAdapter struct {
	runner probe.Runner
	start  func(name string, args ...string) error
}

func newAdapter(runner probe.Runner, start func(name string, args ...string) error) Adapter {
	return &darwinAdapter{runner: runner, start: start}
}

func (a *darwinAdapter) OpenPath(path string) error {
	return a.start("open", path)
}

func (a *darwinAdapter) PickFolder(ctx context.Context) (string, error) {
	out, err := a.runner.Output(ctx, probe.Command{
		Name: "osascript",
		Args: []string{
			"-e", "try",
			"-e", `POSIX path of (choose folder with prompt "Select folder")`,
			"-e", "on error number -128",
			"-e", `return ""`,
			"-e", "end try",
		},
	})
	if err != nil {
		return "", err
	}
	return pickedPath(out), nil
}

func (a *darwinAdapter) FetchURL(context.Context, string, string) (string, error) {
	return "", errors.ErrUnsupported
}

func (a *darwinAdapter) Guidance() domain.InstallGuidance {
	return domain.InstallGuidance{
		OS:         "macos",
		InstallURL: "https://www.docker.com/products/docker-desktop/",
		InstallCTA: "Download Docker Desktop for Mac",
		Steps: []string{
			"Install Docker Desktop and launch it.",
			"Wait until Docker Desktop shows it is running.",
			recheckStep,
		},
	}
}
