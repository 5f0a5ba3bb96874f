package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fulmenhq/fontvault/pkg/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		extended, _ := cmd.Flags().GetBool("extended")
		cmd.Printf("fontvault %s\n", buildinfo.BinaryVersion)
		if extended {
			if mv := buildinfo.ModuleVersion(); mv != "" {
				cmd.Printf("module: %s\n", mv)
			}
		}
	},
}

func init() {
	versionCmd.Flags().Bool("extended", false, "Include module build information")
}
