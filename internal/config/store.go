package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"retreivr-launcher/internal/domain"
)

// Store defines persistence operations for launcher settings.
type Store interface {
	Load() domain.Settings
	Save(domain.Settings) (domain.Settings, error)
	Reset() (domain.Settings, error)
	Exists() bool
}

// JSONStore persists settings in a single JSON file on disk.
type JSONStore struct {
	path   string
	logger *slog.Logger
}

// NewJSONStore creates a JSON-backed settings store.
func NewJSONStore(path string, logger *slog.Logger) *JSONStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONStore{path: path, logger: logger}
}

// Path returns the settings file location.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads settings from disk. A missing or unreadable file yields
// defaults; fields that are absent or fail to decode keep their default.
func (s *JSONStore) Load() domain.Settings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("settings unreadable, using defaults", "path", s.path, "error", err)
		}
		return DefaultSettings()
	}

	return Normalize(decodeSettings(data, s.logger))
}

// Save normalizes, validates, and writes settings as indented JSON.
// It returns the settings exactly as persisted.
func (s *JSONStore) Save(settings domain.Settings) (domain.Settings, error) {
	normalized := Normalize(settings)
	if err := Validate(normalized); err != nil {
		return domain.Settings{}, err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return domain.Settings{}, fmt.Errorf("%w: create settings directory: %v", domain.ErrIO, err)
	}

	data, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return domain.Settings{}, fmt.Errorf("encode settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return domain.Settings{}, fmt.Errorf("%w: write settings: %v", domain.ErrIO, err)
	}
	return normalized, nil
}

// Reset persists and returns the default settings.
func (s *JSONStore) Reset() (domain.Settings, error) {
	return s.Save(DefaultSettings())
}

// Exists reports whether a settings file has been persisted.
func (s *JSONStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// decodeSettings overlays each decodable field onto the defaults.
func decodeSettings(data []byte, logger *slog.Logger) domain.Settings {
	settings := DefaultSettings()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Debug("settings file is not a JSON object, using defaults", "error", err)
		return settings
	}

	decodeField(raw, "host_port", &settings.HostPort, logger)
	decodeField(raw, "image", &settings.Image, logger)
	decodeField(raw, "container_name", &settings.ContainerName, logger)
	decodeField(raw, "config_dir", &settings.ConfigDir, logger)
	decodeField(raw, "data_dir", &settings.DataDir, logger)
	decodeField(raw, "downloads_dir", &settings.DownloadsDir, logger)
	decodeField(raw, "logs_dir", &settings.LogsDir, logger)
	decodeField(raw, "tokens_dir", &settings.TokensDir, logger)
	return settings
}

// decodeField leaves dst untouched when key is missing, null, or malformed.
func decodeField[T any](raw map[string]json.RawMessage, key string, dst *T, logger *slog.Logger) {
	value, ok := raw[key]
	if !ok || string(value) == "null" {
		return
	}

	var decoded T
	if err := json.Unmarshal(value, &decoded); err != nil {
		logger.Debug("settings field invalid, keeping default", "field", key, "error", err)
		return
	}
	*dst = decoded
}
