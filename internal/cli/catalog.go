package cli

import (
	"github.com/agentx-labs/wayfind/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	catalogFacet  string
	catalogGrep   string
	catalogClient string
)

func init() {
	catalogCmd.Flags().StringVar(&catalogFacet, "facet", "", "Filter by facet (term, flow, doc, agent, capability)")
	catalogCmd.Flags().StringVar(&catalogGrep, "grep", "", "Case-insensitive free-text filter")
	catalogCmd.Flags().StringVar(&catalogClient, "client", "", "With --facet agent, restrict to this client's bindings or experts")
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List terms, workflows, docs, agents, and capabilities",
	Long: `Merge every catalog facet of the artifact tree into one item list:
glossary terms, manifest workflows, documentation references carrying the
recognized front-matter key, expert and client agents, and capabilities.

Missing optional artifacts degrade to empty facets rather than failing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		return printJSON(cmd, eng.Catalog(catalog.Filter{
			Facet:  catalogFacet,
			Grep:   catalogGrep,
			Client: catalogClient,
		}))
	},
}
