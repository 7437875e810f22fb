// Package compose renders the Retreivr orchestration file and prepares the
// host directories it binds into the container.
package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"retreivr-launcher/internal/domain"
)

// ServiceName is the single compose service the launcher manages.
const ServiceName = "retreivr"

// ContainerPort is the port the service listens on inside the container.
const ContainerPort = 8000

// ResolveMountSource maps a configured mount path to a host directory.
// Absolute paths pass through; relative paths live under baseDir.
func ResolveMountSource(baseDir, configured string) string {
	if filepath.IsAbs(configured) {
		return configured
	}

	cleaned := configured
	for strings.HasPrefix(cleaned, "./") {
		cleaned = strings.TrimLeft(cleaned[2:], "/")
	}
	if cleaned == "" || cleaned == "." {
		return baseDir
	}
	return filepath.Join(baseDir, filepath.FromSlash(cleaned))
}

// Render builds the orchestration file text. Identical inputs produce
// byte-identical output.
func Render(baseDir string, settings domain.Settings) string {
	var b strings.Builder
	b.WriteString("services:\n")
	fmt.Fprintf(&b, "  %s:\n", ServiceName)
	fmt.Fprintf(&b, "    image: \"%s\"\n", quotePath(settings.Image))
	fmt.Fprintf(&b, "    container_name: \"%s\"\n", quotePath(settings.ContainerName))
	b.WriteString("    restart: unless-stopped\n")
	b.WriteString("    ports:\n")
	fmt.Fprintf(&b, "      - \"%d:%d\"\n", settings.HostPort, ContainerPort)
	b.WriteString("    volumes:\n")
	for _, mount := range settings.Mounts() {
		b.WriteString("      - type: bind\n")
		fmt.Fprintf(&b, "        source: \"%s\"\n", quotePath(ResolveMountSource(baseDir, mount.Source)))
		fmt.Fprintf(&b, "        target: \"%s\"\n", mount.Target)
	}
	return b.String()
}

// WriteFile stores rendered content at path.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create compose directory: %v", domain.ErrIO, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("%w: write compose file: %v", domain.ErrIO, err)
	}
	return nil
}

// quotePath escapes a value for a double-quoted YAML scalar.
func quotePath(path string) string {
	return pathEscaper.Replace(path)
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
