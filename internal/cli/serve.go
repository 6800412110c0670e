package cli

import (
	"github.com/agentx-labs/wayfind/internal/config"
	"github.com/agentx-labs/wayfind/internal/server"
	"github.com/spf13/cobra"
)

const defaultPort = 8087

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", defaultPort, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve ping, catalog, lookup, and resolve over HTTP GET",
	Long: `Start the HTTP front-end. The artifact tree root is resolved once here
and injected into the server; it stays immutable for the process lifetime.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := config.ResolveRoot(rootFlag)
		if err != nil {
			return err
		}
		return server.New(root, servePort).ListenAndServe()
	},
}
