package cli

import "github.com/spf13/cobra"

var lookupTerm string

func init() {
	lookupCmd.Flags().StringVar(&lookupTerm, "term", "", "Free-text term to resolve")
	_ = lookupCmd.MarkFlagRequired("term")
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Resolve a free-text term to a canonical intent id",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		return printJSON(cmd, eng.Lookup(lookupTerm))
	},
}
