package main

import (
	"github.com/spf13/cobra"

	"retreivr-launcher/internal/domain"
)

func (c *cli) settingsCmd() *cobra.Command {
	settings := &cobra.Command{
		Use:   "settings",
		Short: "Show or change launcher settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			current := c.services.Store.Load()
			p := c.printer(cmd)
			if c.jsonOut {
				return p.json(current)
			}
			printSettings(p, current)
			return nil
		},
	}

	var next domain.Settings
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings; unspecified values keep their current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			merged := mergeSettings(c.services.Store.Load(), next, cmd.Flags().Changed)
			saved, err := c.services.Lifecycle.SaveSettings(merged)
			if err != nil {
				return err
			}
			p := c.printer(cmd)
			if c.jsonOut {
				return p.json(saved)
			}
			printSettings(p, saved)
			return nil
		},
	}
	flags := set.Flags()
	flags.Uint16Var(&next.HostPort, "port", 0, "Host port published for the web UI")
	flags.StringVar(&next.Image, "image", "", "Container image reference")
	flags.StringVar(&next.ContainerName, "container-name", "", "Container name")
	flags.StringVar(&next.ConfigDir, "config-dir", "", "Host directory mounted at /config")
	flags.StringVar(&next.DataDir, "data-dir", "", "Host directory mounted at /data")
	flags.StringVar(&next.DownloadsDir, "downloads-dir", "", "Host directory mounted at /downloads")
	flags.StringVar(&next.LogsDir, "logs-dir", "", "Host directory mounted at /logs")
	flags.StringVar(&next.TokensDir, "tokens-dir", "", "Host directory mounted at /tokens")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := c.services.Lifecycle.ResetSettings()
			if err != nil {
				return err
			}
			p := c.printer(cmd)
			if c.jsonOut {
				return p.json(defaults)
			}
			printSettings(p, defaults)
			return nil
		},
	}

	settings.AddCommand(show, set, reset)
	return settings
}

// mergeSettings overlays the flags the user actually passed.
func mergeSettings(current, next domain.Settings, changed func(string) bool) domain.Settings {
	if changed("port") {
		current.HostPort = next.HostPort
	}
	if changed("image") {
		current.Image = next.Image
	}
	if changed("container-name") {
		current.ContainerName = next.ContainerName
	}
	if changed("config-dir") {
		current.ConfigDir = next.ConfigDir
	}
	if changed("data-dir") {
		current.DataDir = next.DataDir
	}
	if changed("downloads-dir") {
		current.DownloadsDir = next.DownloadsDir
	}
	if changed("logs-dir") {
		current.LogsDir = next.LogsDir
	}
	if changed("tokens-dir") {
		current.TokensDir = next.TokensDir
	}
	return current
}

func printSettings(p *printer, s domain.Settings) {
	p.title("Launcher settings")
	p.field("host_port", s.HostPort)
	p.field("image", s.Image)
	p.field("container_name", s.ContainerName)
	for _, mount := range s.Mounts() {
		p.field(mount.Field, mount.Source+" → "+mount.Target)
	}
}
