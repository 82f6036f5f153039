package cmd

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/zammadctl/config"
)

var updateRepository string

var selfUpdateCmd = &cobra.Command{
	Use:         "self-update",
	Short:       "Update zammadctl to the latest release",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipInit: "true"},
	RunE:        runSelfUpdate,
}

func init() {
	selfUpdateCmd.Flags().StringVar(&updateRepository, "repository", "", "GitHub repository to update from (default from config, then s0up4200/zammadctl)")
	rootCmd.AddCommand(selfUpdateCmd)
}

// releaseRepository picks the repository: flag, then config file, then the built-in default
func releaseRepository() string {
	if updateRepository != "" {
		return updateRepository
	}
	if c, err := config.Load(cfgFile); err == nil && c.Update.Repository != "" {
		return c.Update.Repository
	}
	return "s0up4200/zammadctl"
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, err := parseVersion(version)
	if err != nil {
		return fmt.Errorf("cannot self-update: %w", err)
	}

	repository := releaseRepository()
	logger.Info().Str("repository", repository).Str("current", current.String()).Msg("Checking for updates")

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repository))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repository)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(cmd.OutOrStdout(), "Already up to date (v%s)\n", current)
		return nil
	}

	if !confirm(cmd, fmt.Sprintf("Update from v%s to v%s?", current, latest.Version())) {
		logger.Info().Msg("Update cancelled")
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated to v%s\n", latest.Version())
	return nil
}
