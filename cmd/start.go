package cmd

import (
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:          "start `path/ROM`",
	Short:        "load and start the Emulator",
	Args:         cobra.ExactArgs(1),
	RunE:         Start,
	SilenceUsage: true,
}

// chyp8 start 'path/to/ROM' -r 60
func init() {
	rootCmd.AddCommand(startCmd)
}
