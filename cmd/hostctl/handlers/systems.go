package handlers

import (
	"context"
	"fmt"
)

// ListSystems prints the SIDs of all installed SAP systems.
func ListSystems(ctx context.Context, conn Connection) error {
	client, err := connect(ctx, conn)
	if err != nil {
		return err
	}

	systems, err := client.ListSystems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list systems: %w", err)
	}

	if len(systems) == 0 {
		fmt.Println("No SAP systems installed")
		return nil
	}
	for _, sid := range systems {
		fmt.Println(sid)
	}
	return nil
}

// ListInstances prints all installed instances of a SID.
func ListInstances(ctx context.Context, conn Connection, sid string) error {
	client, err := connect(ctx, conn)
	if err != nil {
		return err
	}

	instances, err := client.ListInstances(ctx, sid)
	if err != nil {
		return fmt.Errorf("failed to list instances: %w", err)
	}

	if len(instances) == 0 {
		fmt.Printf("No instances found for SID %s\n", sid)
		return nil
	}
	for _, instance := range instances {
		fmt.Printf("%s\t%s\t%s\n", instance.SID, instance.Hostname, instance.SystemNumber)
	}
	return nil
}
