package config

import (
	"path/filepath"
	"strings"

	"retreivr-launcher/internal/domain"
)

// Normalize canonicalizes the image reference and every mount path.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(settings domain.Settings) domain.Settings {
	settings.Image = CanonicalImageRef(settings.Image)
	settings.ConfigDir = CanonicalMountPath(settings.ConfigDir)
	settings.DataDir = CanonicalMountPath(settings.DataDir)
	settings.DownloadsDir = CanonicalMountPath(settings.DownloadsDir)
	settings.LogsDir = CanonicalMountPath(settings.LogsDir)
	settings.TokensDir = CanonicalMountPath(settings.TokensDir)
	return settings
}

// CanonicalImageRef trims and lowercases an image reference.
func CanonicalImageRef(image string) string {
	return strings.ToLower(strings.TrimSpace(image))
}

// CanonicalMountPath keeps absolute paths and roots everything else at "./".
func CanonicalMountPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return trimmed
	}

	rest := trimmed
	for strings.HasPrefix(rest, "./") {
		rest = strings.TrimLeft(rest[2:], "/")
	}
	return "./" + strings.TrimLeft(rest, "/")
}
