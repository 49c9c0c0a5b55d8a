package handlers

import (
	"context"
	"fmt"

	"github.com/sapops/hostctl/internal/hostagent"
	"github.com/sapops/hostctl/internal/secrets"
)

// DiscoveryOptions are the SLD destination parameters for configure.
type DiscoveryOptions struct {
	SLDHost     string
	SLDPort     int
	SLDUsername string
	// SLDPassword is a credential reference resolved before the call.
	SLDPassword string
}

// ConfigureDiscovery writes the SLD destination on the host agent.
func ConfigureDiscovery(ctx context.Context, conn Connection, opts DiscoveryOptions) error {
	client, err := connect(ctx, conn)
	if err != nil {
		return err
	}

	password, err := newResolver(secrets.NewVaultResolver("", "")).Resolve(ctx, opts.SLDPassword)
	if err != nil {
		return fmt.Errorf("failed to resolve SLD password: %w", err)
	}

	err = client.ConfigureOutsideDiscovery(ctx, hostagent.Destination{
		Host:     opts.SLDHost,
		Port:     opts.SLDPort,
		Username: opts.SLDUsername,
		Password: password,
		UseSSL:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to configure outside discovery: %w", err)
	}

	fmt.Printf("Outside discovery configured for %s:%d\n", opts.SLDHost, opts.SLDPort)
	return nil
}

// ExecuteDiscovery triggers SLD registration with the configured
// destinations.
func ExecuteDiscovery(ctx context.Context, conn Connection) error {
	client, err := connect(ctx, conn)
	if err != nil {
		return err
	}

	if err := client.ExecuteOutsideDiscovery(ctx); err != nil {
		return fmt.Errorf("failed to execute outside discovery: %w", err)
	}

	fmt.Println("Outside discovery executed")
	return nil
}
