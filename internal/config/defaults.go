package config

import "retreivr-launcher/internal/domain"

const (
	DefaultHostPort      = 8090
	DefaultImage         = "ghcr.io/sudostacks/retreivr:latest"
	DefaultContainerName = "retreivr"
)

// DefaultSettings returns baseline launcher configuration for first launch.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		HostPort:      DefaultHostPort,
		Image:         DefaultImage,
		ContainerName: DefaultContainerName,
		ConfigDir:     "./config",
		DataDir:       "./data",
		DownloadsDir:  "./downloads",
		LogsDir:       "./logs",
		TokensDir:     "./tokens",
	}
}
