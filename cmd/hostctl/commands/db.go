package commands

import (
	"github.com/spf13/cobra"

	"github.com/sapops/hostctl/cmd/hostctl/handlers"
)

// Databases returns the command group for database lifecycle operations.
func Databases() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage databases through the host agent",
	}
	cmd.AddCommand(dbList())
	cmd.AddCommand(dbStatus())
	cmd.AddCommand(dbStart())
	cmd.AddCommand(dbStop())
	return cmd
}

func dbList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all database systems with instances and connect info",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListDatabases(cmd.Context(), connection())
		},
	}
}

// dbFlags binds the database identification flags shared by status, start
// and stop.
func dbFlags(cmd *cobra.Command, name, dbType *string) {
	cmd.Flags().StringVar(name, "name", "", "Database name, e.g. HDB")
	cmd.Flags().StringVar(dbType, "type", "", "Database type, e.g. hdb, ada, db6")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
}

func dbStatus() *cobra.Command {
	var name, dbType string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the status of a database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.DatabaseStatus(cmd.Context(), connection(), name, dbType)
		},
	}
	dbFlags(cmd, &name, &dbType)
	return cmd
}

func dbStart() *cobra.Command {
	var name, dbType string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a database",
		Long: `Start a database through the host agent.

For the database type "hdb" all tenant databases are started.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.StartDatabase(cmd.Context(), connection(), name, dbType)
		},
	}
	dbFlags(cmd, &name, &dbType)
	return cmd
}

func dbStop() *cobra.Command {
	var name, dbType string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop a database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.StopDatabase(cmd.Context(), connection(), name, dbType)
		},
	}
	dbFlags(cmd, &name, &dbType)
	return cmd
}
