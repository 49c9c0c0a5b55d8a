package commands

import (
	"github.com/spf13/cobra"

	"github.com/sapops/hostctl/cmd/hostctl/handlers"
)

// Systems returns the command group for SAP system discovery.
func Systems() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "systems",
		Short: "Inspect SAP systems on the host",
	}
	cmd.AddCommand(systemsList())
	return cmd
}

func systemsList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the SIDs of all installed SAP systems",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListSystems(cmd.Context(), connection())
		},
	}
}
