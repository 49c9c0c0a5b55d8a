package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/sapops/hostctl/internal/hostagent"
)

// PingSDA reports whether a Simple Diagnostics Agent is installed.
func PingSDA(ctx context.Context, conn Connection) error {
	client, err := connect(ctx, conn)
	if err != nil {
		return err
	}

	// CLI verification is governed by --insecure on the connection.
	version, err := client.PingSDA(ctx, true)
	if errors.Is(err, hostagent.ErrSDANotInstalled) {
		fmt.Println("SDA is not installed")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to ping SDA: %w", err)
	}

	fmt.Printf("SDA %s is installed\n", version)
	return nil
}

// InstallSDA deploys the SDA and JVM archives to the host agent.
func InstallSDA(ctx context.Context, conn Connection, sdaArchive, jvmArchive string) error {
	client, err := connect(ctx, conn)
	if err != nil {
		return err
	}

	if err := client.DeploySDA(ctx, sdaArchive, jvmArchive, true); err != nil {
		return err
	}

	fmt.Println("SDA installed")
	return nil
}
