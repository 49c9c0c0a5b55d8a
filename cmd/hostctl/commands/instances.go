package commands

import (
	"github.com/spf13/cobra"

	"github.com/sapops/hostctl/cmd/hostctl/handlers"
)

// Instances returns the command group for SAP instance discovery.
func Instances() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "Inspect SAP instances on the host",
	}
	cmd.AddCommand(instancesList())
	return cmd
}

func instancesList() *cobra.Command {
	var sid string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all installed instances of a SID",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListInstances(cmd.Context(), connection(), sid)
		},
	}

	cmd.Flags().StringVar(&sid, "sid", "", "SAP system ID")
	_ = cmd.MarkFlagRequired("sid")

	return cmd
}
