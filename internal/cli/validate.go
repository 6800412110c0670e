package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate artifact documents against their schemas",
	Long: `Check every present artifact document in the tree (manifest, router
rules, brick registry, bricks, glossary, wakeup intents, capability matrix,
agent index, config) against its embedded JSON Schema, including the
supported schema_version range. Absent documents are skipped.

Exits non-zero when any document is invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		reports, err := eng.Validate()
		if err != nil {
			return err
		}
		if err := printJSON(cmd, reports); err != nil {
			return err
		}
		invalid := 0
		for _, r := range reports {
			if !r.Valid {
				invalid++
			}
		}
		if invalid > 0 {
			return fmt.Errorf("%d document(s) failed validation", invalid)
		}
		return nil
	},
}
