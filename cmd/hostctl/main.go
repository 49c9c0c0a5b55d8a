// Package main is the entry point for the hostctl CLI.
//
// hostctl talks to the SAP Host Agent control interface on managed hosts.
// It offers imperative subcommands for the individual agent operations and a
// declarative apply command that establishes desired states idempotently.
//
// Commands: systems, instances, db, discovery, sda, apply.
//
// For detailed usage information, run:
//
//	hostctl --help
package main

import (
	"fmt"
	"os"

	"github.com/sapops/hostctl/cmd/hostctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
