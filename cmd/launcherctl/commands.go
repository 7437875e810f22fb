package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"retreivr-launcher/internal/compose"
	"retreivr-launcher/internal/diagnostics"
	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/launcher"
)

// errChecksFailed makes the process exit non-zero after printing a report.
var errChecksFailed = errors.New("checks failed")

// cli carries state shared by every subcommand.
type cli struct {
	build    func() (*launcher.Services, error)
	services *launcher.Services
	jsonOut  bool
}

func newRootCmd(build func() (*launcher.Services, error)) *cobra.Command {
	c := &cli{build: build}

	root := &cobra.Command{
		Use:           "launcherctl",
		Short:         "Manage the local Retreivr service without the desktop launcher",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.services != nil {
				return nil
			}
			services, err := c.build()
			if err != nil {
				return err
			}
			c.services = services
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "Print machine-readable JSON")

	root.AddCommand(
		c.diagnoseCmd(),
		c.preflightCmd(),
		c.checklistCmd(),
		c.renderCmd(),
		c.settingsCmd(),
		c.startCmd(),
		c.stopCmd(),
		c.logsCmd(),
		c.updateCmd(),
		c.versionCmd(),
	)
	return root
}

func (c *cli) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout())
}

func (c *cli) diagnoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Check Docker, compose, the container and the web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := c.services.Checker.Run(cmd.Context(), c.services.Store.Load())
			p := c.printer(cmd)
			if c.jsonOut {
				return p.json(report)
			}
			printDiagnostics(p, report)
			if report.LastError != "" {
				return errChecksFailed
			}
			return nil
		},
	}
}

func (c *cli) preflightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Run start-readiness checks and regenerate compose.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := c.services.Checker.Preflight(cmd.Context(), c.services.Store.Load())
			p := c.printer(cmd)
			if c.jsonOut {
				if err := p.json(report); err != nil {
					return err
				}
			} else {
				printPreflight(p, report)
			}
			if !report.OK {
				return errChecksFailed
			}
			return nil
		},
	}
}

func (c *cli) checklistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checklist",
		Short: "Show first-run onboarding progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			checklist := c.services.Checker.Onboarding(cmd.Context(), c.services.Store.Load(), c.services.Store.Exists())
			p := c.printer(cmd)
			if c.jsonOut {
				return p.json(checklist)
			}
			p.title(fmt.Sprintf("Setup progress %d/%d", checklist.Completed, checklist.Total))
			for _, item := range checklist.Items {
				p.status(item.Done, item.Label, item.Details, "")
			}
			return nil
		},
	}
}

func (c *cli) renderCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the compose file for the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := c.services.Store.Load()
			if write {
				return c.services.Lifecycle.Prepare(settings)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), compose.Render(c.services.Paths.BaseDir, settings))
			return err
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "Write compose.yaml and create runtime directories instead of printing")
	return cmd
}

func (c *cli) startCmd() *cobra.Command {
	var skipPreflight bool
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start Retreivr with docker compose",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.printer(cmd)
			if !skipPreflight {
				report := c.services.Checker.Preflight(cmd.Context(), c.services.Store.Load())
				if !report.OK {
					if c.jsonOut {
						_ = p.json(report)
					} else {
						printPreflight(p, report)
					}
					return errChecksFailed
				}
			}
			if err := c.services.Lifecycle.Install(cmd.Context()); err != nil {
				return err
			}
			if !c.jsonOut {
				p.status(true, "Retreivr started", c.webURL(), "")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Start without running readiness checks")
	return cmd
}

func (c *cli) stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop Retreivr",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.services.Lifecycle.Stop(cmd.Context()); err != nil {
				return err
			}
			if !c.jsonOut {
				c.printer(cmd).status(true, "Retreivr stopped", "", "")
			}
			return nil
		},
	}
}

func (c *cli) logsCmd() *cobra.Command {
	var tail int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the Retreivr container log tail",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.services.Lifecycle.Logs(cmd.Context(), tail)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().IntVar(&tail, "tail", 0, "Number of lines (20-2000, default 200)")
	return cmd
}

func (c *cli) updateCmd() *cobra.Command {
	update := &cobra.Command{
		Use:   "update",
		Short: "Check for or apply launcher and image updates",
	}

	var checkImage bool
	check := &cobra.Command{
		Use:   "check",
		Short: "Check for a newer launcher release and, optionally, image",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := struct {
				Launcher domain.LauncherVersionInfo `json:"launcher"`
				Image    *domain.ImageUpdateStatus  `json:"image,omitempty"`
			}{
				Launcher: c.services.Updates.LauncherVersionInfo(cmd.Context(), launcher.Version),
			}
			if checkImage {
				status := c.services.Updates.ImageUpdateStatus(cmd.Context(), c.services.Store.Load().Image)
				result.Image = &status
			}

			p := c.printer(cmd)
			if c.jsonOut {
				return p.json(result)
			}
			printLauncherVersion(p, result.Launcher)
			if result.Image != nil {
				printImageStatus(p, *result.Image)
			}
			return nil
		},
	}
	check.Flags().BoolVar(&checkImage, "image", false, "Also pull the configured image and compare IDs")

	apply := &cobra.Command{
		Use:   "apply",
		Short: "Pull the configured image and restart the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := c.services.Lifecycle.UpdateAndRestart(cmd.Context())
			if err != nil {
				return err
			}
			p := c.printer(cmd)
			if c.jsonOut {
				return p.json(map[string]string{"message": message})
			}
			p.status(true, message, "", "")
			return nil
		},
	}

	update.AddCommand(check, apply)
	return update
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the launcher version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), launcher.Version)
			return err
		},
	}
}

func (c *cli) webURL() string {
	return diagnostics.WebURL(c.services.Store.Load())
}
