package commands

import (
	"github.com/spf13/cobra"

	"github.com/sapops/hostctl/cmd/hostctl/handlers"
)

// SDA returns the command group for the Simple Diagnostics Agent.
func SDA() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sda",
		Short: "Manage the Simple Diagnostics Agent",
	}
	cmd.AddCommand(sdaPing())
	cmd.AddCommand(sdaInstall())
	return cmd
}

func sdaPing() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check whether an SDA is installed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.PingSDA(cmd.Context(), connection())
		},
	}
}

func sdaInstall() *cobra.Command {
	var archive, jvmArchive string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Deploy the SDA and JVM archives to the host agent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.InstallSDA(cmd.Context(), connection(), archive, jvmArchive)
		},
	}

	cmd.Flags().StringVar(&archive, "archive", "", "Path to the SDA SAR archive")
	cmd.Flags().StringVar(&jvmArchive, "jvm-archive", "", "Path to the SAP JVM SAR archive")
	_ = cmd.MarkFlagRequired("archive")
	_ = cmd.MarkFlagRequired("jvm-archive")

	return cmd
}
