package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// HomeEnv overrides the application data directory.
	HomeEnv = "RETREIVR_LAUNCHER_HOME"

	settingsFileName = "launcher_settings.json"
	composeFileName  = "compose.yaml"
)

// Paths describes the launcher's private data directory layout.
type Paths struct {
	BaseDir string
}

// DefaultPaths resolves the data directory from HomeEnv or the user config dir.
func DefaultPaths() (Paths, error) {
	if override := strings.TrimSpace(os.Getenv(HomeEnv)); override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return Paths{}, fmt.Errorf("resolve %s: %w", HomeEnv, err)
		}
		return Paths{BaseDir: abs}, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("resolve user config dir: %w", err)
	}
	return Paths{BaseDir: filepath.Join(configDir, "Retreivr")}, nil
}

// SettingsPath is the persisted settings file.
func (p Paths) SettingsPath() string {
	return filepath.Join(p.BaseDir, settingsFileName)
}

// ComposePath is the generated orchestration file.
func (p Paths) ComposePath() string {
	return filepath.Join(p.BaseDir, composeFileName)
}
