// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic and can be tested independently of the CLI
// framework. Collaborators are created through package-level factory
// variables that tests replace.
package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sapops/hostctl/internal/hostagent"
	"github.com/sapops/hostctl/internal/secrets"
	"github.com/sapops/hostctl/internal/soap"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newAgentClient creates a host agent client.
	newAgentClient = func(opts soap.Options) hostagent.AgentClient {
		return hostagent.NewClient(opts)
	}

	// newResolver creates the secret resolver used for credential flags.
	newResolver = func(vault *secrets.VaultResolver) secrets.Resolver {
		return secrets.NewDefault(vault)
	}
)

// Connection carries the host agent connection settings shared by all
// commands.
type Connection struct {
	Host     string
	Port     int
	Username string
	// Password is a credential reference (vault:, env:, file: or literal).
	// Empty falls back to the HOSTCTL_PASSWORD environment variable.
	Password string
	Fallback bool
	Insecure bool
	Timeout  time.Duration
}

// connect resolves the credentials and returns a client for the host agent.
func connect(ctx context.Context, conn Connection) (hostagent.AgentClient, error) {
	host := conn.Host
	if host == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("no host given and hostname lookup failed: %w", err)
		}
		host = hostname
	}

	ref := conn.Password
	if ref == "" {
		ref = os.Getenv("HOSTCTL_PASSWORD")
	}
	if ref == "" {
		return nil, fmt.Errorf("no password given (use --password or HOSTCTL_PASSWORD)")
	}

	// Vault coordinates come from VAULT_ADDR / VAULT_TOKEN on the CLI.
	password, err := newResolver(secrets.NewVaultResolver("", "")).Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve host agent password: %w", err)
	}

	return newAgentClient(soap.Options{
		Host:      host,
		HTTPSPort: conn.Port,
		Username:  conn.Username,
		Password:  password,
		Fallback:  conn.Fallback,
		Insecure:  conn.Insecure,
		Timeout:   conn.Timeout,
	}), nil
}
