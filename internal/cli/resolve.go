package cli

import (
	"github.com/agentx-labs/wayfind/internal/engine"
	"github.com/spf13/cobra"
)

var (
	resolveIntent string
	resolveTerm   string
	resolveClient string
)

func init() {
	resolveCmd.Flags().StringVar(&resolveIntent, "intent", "", "Intent id to resolve")
	resolveCmd.Flags().StringVar(&resolveTerm, "term", "", "Free-text term (used when no --intent is given)")
	resolveCmd.Flags().StringVar(&resolveClient, "client", "", "Client id for agent binding")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve an intent or term to a flow, roles, and candidate agents",
	Long: `Run the full resolution chain: term to intent (when no intent is given),
intent to flow reference via the router strategies with a manifest fallback,
flow to recommended roles via the capability matrix, and roles to candidate
agents for the client. An unmatched route yields a null flow_ref, which is a
normal outcome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		result, err := eng.Resolve(engine.ResolveInput{
			Intent: resolveIntent,
			Term:   resolveTerm,
			Client: resolveClient,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}
