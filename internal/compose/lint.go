package compose

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the subset of the compose schema the launcher emits.
type File struct {
	Services map[string]Service `yaml:"services"`
}

// Service is one compose service block.
type Service struct {
	Image         string   `yaml:"image"`
	ContainerName string   `yaml:"container_name"`
	Restart       string   `yaml:"restart"`
	Ports         []string `yaml:"ports"`
	Volumes       []Volume `yaml:"volumes"`
}

// Volume is a long-syntax volume entry.
type Volume struct {
	Type   string `yaml:"type"`
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Parse decodes orchestration file text.
func Parse(content string) (File, error) {
	var file File
	if err := yaml.Unmarshal([]byte(content), &file); err != nil {
		return File{}, fmt.Errorf("parse compose file: %w", err)
	}
	return file, nil
}

// Lint checks that content is well-formed YAML describing the single
// launcher-managed service with its port mapping and five bind mounts.
func Lint(content string) error {
	file, err := Parse(content)
	if err != nil {
		return err
	}

	if len(file.Services) != 1 {
		return fmt.Errorf("compose file defines %d services, want 1", len(file.Services))
	}
	svc, ok := file.Services[ServiceName]
	if !ok {
		return fmt.Errorf("compose file is missing service %q", ServiceName)
	}
	if svc.Image == "" {
		return fmt.Errorf("service %q has no image", ServiceName)
	}
	if svc.ContainerName == "" {
		return fmt.Errorf("service %q has no container_name", ServiceName)
	}
	if len(svc.Ports) != 1 {
		return fmt.Errorf("service %q has %d port mappings, want 1", ServiceName, len(svc.Ports))
	}
	if len(svc.Volumes) != 5 {
		return fmt.Errorf("service %q has %d volumes, want 5", ServiceName, len(svc.Volumes))
	}
	for _, volume := range svc.Volumes {
		if volume.Type != "bind" || volume.Source == "" || volume.Target == "" {
			return fmt.Errorf("service %q has an incomplete bind mount: %+v", ServiceName, volume)
		}
	}
	return nil
}
