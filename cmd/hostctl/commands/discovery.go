package commands

import (
	"github.com/spf13/cobra"

	"github.com/sapops/hostctl/cmd/hostctl/handlers"
)

// Discovery returns the command group for SLD outside discovery.
func Discovery() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discovery",
		Short: "Manage SLD outside discovery",
	}
	cmd.AddCommand(discoveryConfigure())
	cmd.AddCommand(discoveryExecute())
	return cmd
}

func discoveryConfigure() *cobra.Command {
	var opts handlers.DiscoveryOptions

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Write the SLD destination configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ConfigureDiscovery(cmd.Context(), connection(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.SLDHost, "sld-host", "", "FQDN of the SLD / LMDB")
	cmd.Flags().IntVar(&opts.SLDPort, "sld-port", 0, "Port of the SLD / LMDB")
	cmd.Flags().StringVar(&opts.SLDUsername, "sld-username", "", "User for SLD authentication")
	cmd.Flags().StringVar(&opts.SLDPassword, "sld-password", "", "Password reference for SLD authentication")
	_ = cmd.MarkFlagRequired("sld-host")
	_ = cmd.MarkFlagRequired("sld-port")
	_ = cmd.MarkFlagRequired("sld-username")
	_ = cmd.MarkFlagRequired("sld-password")

	return cmd
}

func discoveryExecute() *cobra.Command {
	return &cobra.Command{
		Use:   "execute",
		Short: "Run outside discovery against the configured SLD",
		Long: `Run outside discovery, i.e. register the host data with the configured
SLD destinations. This requires a prior 'hostctl discovery configure'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ExecuteDiscovery(cmd.Context(), connection())
		},
	}
}
