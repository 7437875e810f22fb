package compose

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"retreivr-launcher/internal/config"
	"retreivr-launcher/internal/domain"
)

// TestEnsureRuntimeDirsCreatesAndSeeds checks first-run directory layout.
func TestEnsureRuntimeDirsCreatesAndSeeds(t *testing.T) {
	base := t.TempDir()
	settings := config.DefaultSettings()

	if err := EnsureRuntimeDirs(base, settings); err != nil {
		t.Fatalf("EnsureRuntimeDirs() error = %v", err)
	}

	for _, name := range []string{"config", "data", "downloads", "logs", "tokens"} {
		info, err := os.Stat(filepath.Join(base, name))
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", name, err)
		}
	}

	seeded, err := os.ReadFile(filepath.Join(base, "config", "config.json"))
	if err != nil {
		t.Fatalf("read seed: %v", err)
	}
	if !bytes.Equal(seeded, SeedConfig()) {
		t.Fatal("seeded config does not match bundled payload")
	}
}

// TestEnsureRuntimeDirsKeepsExistingConfig checks idempotence and no overwrite.
func TestEnsureRuntimeDirsKeepsExistingConfig(t *testing.T) {
	base := t.TempDir()
	settings := config.DefaultSettings()
	configPath := filepath.Join(base, "config", "config.json")

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(configPath, []byte(`{"custom":true}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := EnsureRuntimeDirs(base, settings); err != nil {
			t.Fatalf("EnsureRuntimeDirs() pass %d error = %v", i, err)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"custom":true}` {
		t.Fatalf("config.json overwritten: %s", data)
	}
}

func TestEnsureRuntimeDirsUsesAbsoluteSources(t *testing.T) {
	base := t.TempDir()
	external := filepath.Join(t.TempDir(), "external-downloads")
	settings := config.DefaultSettings()
	settings.DownloadsDir = external

	if err := EnsureRuntimeDirs(base, settings); err != nil {
		t.Fatalf("EnsureRuntimeDirs() error = %v", err)
	}
	if _, err := os.Stat(external); err != nil {
		t.Fatalf("expected absolute downloads dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "downloads")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("relative downloads dir should not exist, stat err = %v", err)
	}
}

func TestEnsureRuntimeDirsReportsIOError(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "data")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	err := EnsureRuntimeDirs(base, config.DefaultSettings())
	if !errors.Is(err, domain.ErrIO) {
		t.Fatalf("EnsureRuntimeDirs() error = %v, want ErrIO", err)
	}
}
