package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/agentx-labs/wayfind/internal/branding"
	"github.com/agentx-labs/wayfind/internal/config"
	"github.com/agentx-labs/wayfind/internal/engine"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	rootFlag string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` resolves symbolic intents to workflow definitions and
binds the responsible operator roles and candidate agents for a client,
reading a static tree of YAML artifacts (manifest, router rules, brick
registry, glossary, capability matrix, agent index).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Artifact tree root (default: "+branding.EnvVar("ROOT")+", config, or cwd)")
}

// Execute runs the root command with build info injected via ldflags.
// Failures are reported as JSON on stderr with a non-zero exit status.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	}
	return err
}

// newEngine resolves the artifact tree root for this invocation and returns
// an engine over it.
func newEngine() (*engine.Engine, error) {
	root, err := config.ResolveRoot(rootFlag)
	if err != nil {
		return nil, err
	}
	return engine.New(root), nil
}

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
