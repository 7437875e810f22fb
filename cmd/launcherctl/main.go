// Command launcherctl drives the Retreivr launcher without the desktop UI.
package main

import (
	"errors"
	"fmt"
	"os"

	"retreivr-launcher/internal/launcher"
)

func main() {
	root := newRootCmd(func() (*launcher.Services, error) {
		return launcher.New(launcher.NewLogger(os.Stderr))
	})
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
