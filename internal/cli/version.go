package cli

import (
	"fmt"

	"github.com/agentx-labs/wayfind/internal/branding"
	"github.com/spf13/cobra"
)

var versionShort bool

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
			return nil
		}
		return printJSON(cmd, map[string]string{
			"name":    branding.CLIName(),
			"version": buildVersion,
			"commit":  buildCommit,
			"date":    buildDate,
		})
	},
}
