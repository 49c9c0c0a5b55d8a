// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sapops/hostctl/cmd/hostctl/handlers"
	"github.com/sapops/hostctl/internal/logging"
	"github.com/sapops/hostctl/internal/soap"
)

// Connection flags shared by every command that talks to a host agent.
var conn struct {
	host       string
	port       int
	username   string
	password   string
	noFallback bool
	insecure   bool
	timeout    time.Duration
	logLevel   string
}

// connection builds the handler connection settings from the bound flags.
func connection() handlers.Connection {
	return handlers.Connection{
		Host:     conn.host,
		Port:     conn.port,
		Username: conn.username,
		Password: conn.password,
		Fallback: !conn.noFallback,
		Insecure: conn.insecure,
		Timeout:  conn.timeout,
	}
}

// Root returns the root command for the hostctl CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostctl",
		Short: "Control the SAP Host Agent on managed hosts",
		Long: `hostctl talks to the SAP Host Agent control interface over its SOAP
endpoint (HTTPS port 1129, optional HTTP fallback on 1128).

Imperative subcommands wrap single agent operations; 'hostctl apply'
establishes the desired states declared in a YAML document idempotently.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			_ = logging.Set(logging.Level(conn.logLevel))
		},
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&conn.host, "host", "", "FQDN of the host agent (default: local hostname)")
	flags.IntVar(&conn.port, "port", soap.DefaultHTTPSPort, "HTTPS control port of the host agent")
	flags.StringVarP(&conn.username, "username", "u", "sapadm", "User that executes host agent operations")
	flags.StringVarP(&conn.password, "password", "p", "", "Password reference (vault:, env:, file: or literal; default: HOSTCTL_PASSWORD)")
	flags.BoolVar(&conn.noFallback, "no-fallback", false, "Disable fallback to unsecured HTTP on port 1128")
	flags.BoolVar(&conn.insecure, "insecure", false, "Skip TLS certificate verification")
	flags.DurationVar(&conn.timeout, "timeout", 300*time.Second, "Request timeout")
	flags.StringVar(&conn.logLevel, "log-level", "warning", "Log level (trace, debug, info, warning, error)")

	// Core commands
	cmd.AddCommand(Apply())
	cmd.AddCommand(Systems())
	cmd.AddCommand(Instances())
	cmd.AddCommand(Databases())
	cmd.AddCommand(Discovery())
	cmd.AddCommand(SDA())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
