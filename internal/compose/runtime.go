package compose

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"retreivr-launcher/internal/domain"
)

// seedConfigJSON is written to <config>/config.json on first run.
//
//go:embed assets/config.json
var seedConfigJSON []byte

// SeedConfig returns a copy of the bundled default service configuration.
func SeedConfig() []byte {
	return append([]byte(nil), seedConfigJSON...)
}

// EnsureRuntimeDirs creates every mount source and seeds config.json when
// missing. Existing directories and an existing config.json are left alone.
func EnsureRuntimeDirs(baseDir string, settings domain.Settings) error {
	var configDir string
	for _, mount := range settings.Mounts() {
		dir := ResolveMountSource(baseDir, mount.Source)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create %s directory %s: %v", domain.ErrIO, mount.Field, dir, err)
		}
		if mount.Target == "/config" {
			configDir = dir
		}
	}

	configPath := filepath.Join(configDir, "config.json")
	_, err := os.Stat(configPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: check %s: %v", domain.ErrIO, configPath, err)
	}
	if err := os.WriteFile(configPath, seedConfigJSON, 0o644); err != nil {
		return fmt.Errorf("%w: seed %s: %v", domain.ErrIO, configPath, err)
	}
	return nil
}
