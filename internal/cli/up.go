package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repoSlug = "happyhackingspace/wordalign"

func (c *CLI) newUpCommand() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Self-update wordalign to the latest release",
		Example: `  wordalign up
  wordalign up --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.selfUpdate(cmd.Context(), checkOnly)
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only report whether a newer release exists")
	return cmd
}

// currentVersion maps development builds to a version every release
// compares newer than.
func (c *CLI) currentVersion() string {
	if c.version == "" || c.version == "dev" || c.version == "test" {
		return "0.0.0"
	}
	return c.version
}

func (c *CLI) selfUpdate(ctx context.Context, checkOnly bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return fmt.Errorf("create updater: %w", err)
	}
	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return fmt.Errorf("detect latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repoSlug)
	}

	if latest.LessOrEqual(c.currentVersion()) {
		slog.Info("Already up to date", "version", c.version)
		return nil
	}
	if checkOnly {
		slog.Info("Update available", "current", c.version, "latest", latest.Version(), "url", latest.URL)
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	slog.Info("Updating", "from", c.version, "to", latest.Version(), "path", exe)
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	slog.Info("Updated", "version", latest.Version())
	return nil
}
