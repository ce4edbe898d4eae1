package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build metadata, set with -ldflags "-X github.com/kozaktomas/photo-selector/cmd.Version=...".
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// VersionString is the one-line version shown by --version and the version command.
func VersionString() string {
	return fmt.Sprintf("%s (%s, built %s, %s)", Version, CommitSHA, BuildDate, runtime.Version())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "photo-selector %s\n", VersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
