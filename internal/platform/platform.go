// Package platform hides OS-specific desktop integrations behind one
// narrow adapter selected at build time.
package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/probe"
)

// Adapter is the per-OS capability set the launcher needs.
type Adapter interface {
	// OpenPath reveals a directory in the system file manager.
	OpenPath(path string) error
	// PickFolder asks the user for a directory; "" means cancelled.
	PickFolder(ctx context.Context) (string, error)
	// FetchURL downloads url with the platform's scripting runtime.
	// It returns errors.ErrUnsupported where no such runtime exists.
	FetchURL(ctx context.Context, url, userAgent string) (string, error)
	// Guidance describes how to install the container engine.
	Guidance() domain.InstallGuidance
}

// New returns the adapter for the running OS.
func New(runner probe.Runner) Adapter {
	return newAdapter(runner, startDetached)
}

// NewForTests builds the adapter with an injectable process starter.
func NewForTests(runner probe.Runner, start func(name string, args ...string) error) Adapter {
	return newAdapter(runner, start)
}

// startDetached launches a GUI helper without waiting for it to exit.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch file manager: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// pickedPath trims picker output; empty output is a cancel.
func pickedPath(output string) string {
	return strings.TrimSpace(output)
}

// recheckStep is the last guidance step on every OS.
const recheckStep = "Return to this launcher and click Recheck Docker."
