package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"
var Commit = "none"
var Date = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pngmsg",
	Run: func(cmd *cobra.Command, args []string) {
		log.Debug("system", "version", "info", "pngmsg version information", "version", Version, "commit", Commit, "date", Date)
		fmt.Fprintf(cmd.OutOrStdout(), "pngmsg version %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
