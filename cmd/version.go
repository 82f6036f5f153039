package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/blang/semver"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion sets the version information reported by the version and self-update commands
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
}

// parseVersion parses a release version such as "v1.2.3". Development builds fail.
func parseVersion(v string) (semver.Version, error) {
	parsed, err := semver.ParseTolerant(strings.TrimPrefix(v, "v"))
	if err != nil {
		return semver.Version{}, fmt.Errorf("not a release version %q: %w", v, err)
	}
	return parsed, nil
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipInit: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		if v, err := parseVersion(version); err == nil {
			fmt.Fprintf(out, "zammadctl v%s\n", v)
		} else {
			fmt.Fprintf(out, "zammadctl %s (development build)\n", version)
		}
		fmt.Fprintf(out, "Build time: %s\n", buildTime)
		fmt.Fprintf(out, "Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
