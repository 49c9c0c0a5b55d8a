package handlers

import (
	"context"
	"fmt"
	"strings"
)

// ListDatabases prints all database systems on the host.
func ListDatabases(ctx context.Context, conn Connection) error {
	client, err := connect(ctx, conn)
	if err != nil {
		return err
	}

	systems, err := client.ListDatabaseSystems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list database systems: %w", err)
	}

	if len(systems) == 0 {
		fmt.Println("No database systems found")
		return nil
	}
	for _, system := range systems {
		fmt.Printf("%s (%s %s)\n", system.Name, system.Type, system.Version)
		if system.ConnectString != "" {
			fmt.Printf("  connect: %s\n", system.ConnectString)
		}
		for _, instance := range system.Instances {
			fmt.Printf("  instance: %s on %s\n", instance.Name, instance.Host)
		}
	}
	return nil
}

// DatabaseStatus prints the status of a database.
func DatabaseStatus(ctx context.Context, conn Connection, name, dbType string) error {
	client, err := connect(ctx, conn)
	if err != nil {
		return err
	}

	status, err := client.GetDatabaseStatus(ctx, name, dbType)
	if err != nil {
		return fmt.Errorf("failed to get status of database %s: %w", name, err)
	}
	fmt.Println(status)
	return nil
}

// StartDatabase starts a database and reports the outcome.
func StartDatabase(ctx context.Context, conn Connection, name, dbType string) error {
	client, err := connect(ctx, conn)
	if err != nil {
		return err
	}

	if err := client.StartDatabase(ctx, name, dbType); err != nil {
		return err
	}
	fmt.Printf("Database %s started\n", strings.ToUpper(name))
	return nil
}

// StopDatabase stops a database and reports the outcome.
func StopDatabase(ctx context.Context, conn Connection, name, dbType string) error {
	client, err := connect(ctx, conn)
	if err != nil {
		return err
	}

	if err := client.StopDatabase(ctx, name, dbType); err != nil {
		return err
	}
	fmt.Printf("Database %s stopped\n", strings.ToUpper(name))
	return nil
}
