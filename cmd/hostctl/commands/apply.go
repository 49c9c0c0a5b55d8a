package commands

import (
	"github.com/spf13/cobra"

	"github.com/sapops/hostctl/cmd/hostctl/handlers"
)

// Apply returns the command that establishes the states declared in a YAML
// state document.
//
// Optional flags:
//
//	--config, -f: Path to the state document (default: hostctl.yaml)
//	--dry-run:    Report what would change without mutating anything
func Apply() *cobra.Command {
	var (
		configPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a declarative state document",
		Long: `Establish the desired states declared in a YAML state document.

Each state is checked against the observed state of the host agent first and
only mutated on drift. Credentials in the document are references into a
secret store (vault:), the environment (env:) or files (file:) and are
resolved when the state is applied, never stored.

Examples:
  # Apply hostctl.yaml from the current directory
  hostctl apply

  # Apply a specific document without changing anything
  hostctl apply -f production.yaml --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath, dryRun)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "f", "", "Path to the state document (default: hostctl.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only report what would change")

	return cmd
}
