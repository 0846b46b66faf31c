package cmd

import (
	"os"

	"pngmsg-tools/go/pkg/logbowl"

	"github.com/spf13/cobra"
)

var (
	log logbowl.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pngmsg",
	Short: "Hide, read and strip messages stored in PNG chunks.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logbowl.Create("pngmsg")
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if log.Logger != nil {
			log.Error("system", "stop", "error", "Failed to execute command", "error", err)
		}
		os.Exit(1)
	}
}
