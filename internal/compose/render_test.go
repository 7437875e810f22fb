package compose

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"retreivr-launcher/internal/config"
)

func TestResolveMountSource(t *testing.T) {
	base := filepath.Join(t.TempDir(), "Retreivr")
	abs := filepath.Join(t.TempDir(), "media")

	cases := map[string]string{
		"./config":   filepath.Join(base, "config"),
		"./data/sub": filepath.Join(base, "data", "sub"),
		"././logs":   filepath.Join(base, "logs"),
		"./":         base,
		abs:          abs,
		"plain":      filepath.Join(base, "plain"),
	}
	for configured, want := range cases {
		if got := ResolveMountSource(base, configured); got != want {
			t.Errorf("ResolveMountSource(%q) = %q, want %q", configured, got, want)
		}
	}
}

// TestRenderIsDeterministic checks identical inputs render identical bytes.
func TestRenderIsDeterministic(t *testing.T) {
	base := t.TempDir()
	settings := config.DefaultSettings()

	first := Render(base, settings)
	second := Render(base, settings)
	if first != second {
		t.Fatalf("render output differs:\n%s\n---\n%s", first, second)
	}
}

// TestRenderTemplate checks the fixed service block and mount targets.
func TestRenderTemplate(t *testing.T) {
	base := "/opt/retreivr"
	settings := config.DefaultSettings()
	settings.HostPort = 9001
	settings.DownloadsDir = "/mnt/media"

	got := Render(base, settings)
	want := `services:
  retreivr:
    image: "ghcr.io/sudostacks/retreivr:latest"
    container_name: "retreivr"
    restart: unless-stopped
    ports:
      - "9001:8000"
    volumes:
      - type: bind
        source: "/opt/retreivr/config"
        target: "/config"
      - type: bind
        source: "/opt/retreivr/data"
        target: "/data"
      - type: bind
        source: "/mnt/media"
        target: "/downloads"
      - type: bind
        source: "/opt/retreivr/logs"
        target: "/logs"
      - type: bind
        source: "/opt/retreivr/tokens"
        target: "/tokens"
`
	if got != want {
		t.Fatalf("render mismatch:\n%s\nwant:\n%s", got, want)
	}
	if err := Lint(got); err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
}

// TestRenderEscapesWindowsSeparators checks backslashes survive YAML quoting.
func TestRenderEscapesWindowsSeparators(t *testing.T) {
	if got := quotePath(`C:\Users\me\Retreivr\data`); got != `C:\\Users\\me\\Retreivr\\data` {
		t.Fatalf("quotePath = %q", got)
	}

	content := "services:\n  retreivr:\n    volumes:\n      - source: \"" + quotePath(`C:\Users\me "x"`) + "\"\n"
	file, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := file.Services["retreivr"].Volumes[0].Source; got != `C:\Users\me "x"` {
		t.Fatalf("decoded source = %q", got)
	}
}

// TestRenderQuotesImageAndContainerName checks the parsed image matches the
// reference passed to pull and inspect.
func TestRenderQuotesImageAndContainerName(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Image = "registry.example:5000/retreivr:1.0 #pinned"
	settings.ContainerName = "retreivr.main"

	file, err := Parse(Render(t.TempDir(), settings))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	svc := file.Services[ServiceName]
	if svc.Image != settings.Image {
		t.Fatalf("parsed image = %q, want %q", svc.Image, settings.Image)
	}
	if svc.ContainerName != settings.ContainerName {
		t.Fatalf("parsed container_name = %q, want %q", svc.ContainerName, settings.ContainerName)
	}
}

func TestLintRejectsForeignFiles(t *testing.T) {
	cases := map[string]string{
		"not yaml":      "services: [",
		"two services":  "services:\n  a:\n    image: x\n  b:\n    image: y\n",
		"wrong service": "services:\n  other:\n    image: x\n",
		"no volumes":    "services:\n  retreivr:\n    image: x\n    container_name: y\n    ports: [\"1:8000\"]\n",
	}
	for name, content := range cases {
		if err := Lint(content); err == nil {
			t.Errorf("%s: expected lint error", name)
		}
	}
}

func TestWriteFileCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "compose.yaml")
	if err := WriteFile(path, "services: {}\n"); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "services:") {
		t.Fatalf("unexpected content %q", data)
	}
}
