//go:build !darwin && !windows

package platform

import (
	"context"
	"errors"
	"fmt"
	goruntime "runtime"

	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/probe"
)

type xdgAdapter struct {
	runner probe.Runner
	start  func(name string, args ...string) error
}

func newAdapter(runner probe.Runner, start func(name string, args ...string) error) Adapter {
	return &xdgAdapter{runner: runner, start: start}
}

func (a *xdgAdapter) OpenPath(path string) error {
	return a.start("xdg-open", path)
}

// PickFolder treats a non-zero zenity exit as a cancelled dialog. A
// zenity that cannot be launched is reported.
func (a *xdgAdapter) PickFolder(ctx context.Context) (string, error) {
	out, err := a.runner.Output(ctx, probe.Command{
		Name: "zenity",
		Args: []string{"--file-selection", "--directory"},
	})
	if err != nil {
		var cmdErr *probe.CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode == -1 {
			return "", fmt.Errorf("open folder picker: %w", err)
		}
		return "", nil
	}
	return pickedPath(out), nil
}

func (a *xdgAdapter) FetchURL(context.Context, string, string) (string, error) {
	return "", errors.ErrUnsupported
}

func (a *xdgAdapter) Guidance() domain.InstallGuidance {
	return domain.InstallGuidance{
		OS:         goruntime.GOOS,
		InstallURL: "https://docs.docker.com/engine/install/",
		InstallCTA: "Open Docker Engine Install Docs",
		Steps: []string{
			"Install Docker Engine using your distribution guide.",
			"Start the Docker daemon and verify `docker info` works.",
			recheckStep,
		},
	}
}
