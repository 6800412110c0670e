package cli

import (
	"fmt"

	"github.com/agentx-labs/wayfind/internal/router"
	"github.com/spf13/cobra"
)

var (
	flowCatalogFamily string
	flowCatalogGrep   string

	flowResolveIntent    string
	flowResolveTags      []string
	flowResolveSubject   string
	flowResolveActionKey string

	flowLoadRef string
)

func init() {
	flowCatalogCmd.Flags().StringVar(&flowCatalogFamily, "family", "", "Filter by workflow family (exact)")
	flowCatalogCmd.Flags().StringVar(&flowCatalogGrep, "grep", "", "Case-insensitive pattern over intent, title, description")

	flowResolveCmd.Flags().StringVar(&flowResolveIntent, "intent", "", "Intent id")
	flowResolveCmd.Flags().StringSliceVar(&flowResolveTags, "tags", nil, "Tags (any-of match)")
	flowResolveCmd.Flags().StringVar(&flowResolveSubject, "subject", "", "Subject line for pattern strategies")
	flowResolveCmd.Flags().StringVar(&flowResolveActionKey, "action-key", "", "Action key")

	flowLoadCmd.Flags().StringVar(&flowLoadRef, "flow", "", "Flow reference (brick:export)")
	_ = flowLoadCmd.MarkFlagRequired("flow")

	flowCmd.AddCommand(flowCatalogCmd)
	flowCmd.AddCommand(flowResolveCmd)
	flowCmd.AddCommand(flowLoadCmd)
	rootCmd.AddCommand(flowCmd)
}

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Work with workflow definitions directly",
	Long: `Inspect the workflow side of the artifact tree: list the manifest,
route inputs through the strategies with a full trace, and load a
brick:export step sequence.`,
}

var flowCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the workflow manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		entries, err := eng.FlowCatalog(flowCatalogFamily, flowCatalogGrep)
		if err != nil {
			return err
		}
		return printJSON(cmd, entries)
	},
}

var flowResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Route intent/tags/subject/action-key to a flow reference",
	Long: `Evaluate the routing strategies in authored order against the given
inputs and print the first match with its evaluation trace. Unresolved
routing is a failure here: the command exits non-zero with a diagnostic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		result, err := eng.Route(router.Input{
			Intent:    flowResolveIntent,
			Tags:      flowResolveTags,
			Subject:   flowResolveSubject,
			ActionKey: flowResolveActionKey,
		})
		if err != nil {
			return err
		}
		if result.FlowRef == nil {
			return fmt.Errorf("no routing strategy matched (intent/tags/subject/action_key)")
		}
		return printJSON(cmd, result)
	},
}

var flowLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a flow export's step sequence",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		loaded, err := eng.LoadFlow(flowLoadRef)
		if err != nil {
			return err
		}
		return printJSON(cmd, loaded)
	},
}
