package cli

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(pingCmd)
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Report the resolved artifact tree root",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		return printJSON(cmd, eng.Ping())
	},
}
