// Package state implements idempotent declarative states on top of the host
// agent client. Every state observes before it mutates and reports its work
// in an old/new changes contract; in dry-run mode no mutation happens at all.
package state

import (
	"context"

	"github.com/sapops/hostctl/internal/hostagent"
	"github.com/sapops/hostctl/internal/logging"
	"github.com/sapops/hostctl/internal/secrets"
	"github.com/sapops/hostctl/internal/sldreg"
)

// Environment carries the collaborators a state needs to observe and mutate
// the host.
type Environment struct {
	Agent   hostagent.AgentClient
	SLD     *sldreg.Inspector
	Secrets secrets.Resolver
	DryRun  bool
	Log     logging.Logger
}

// State is a desired end-state of the managed host.
type State interface {
	// Name identifies the state instance (the SID, SLD host, or archive it
	// concerns).
	Name() string

	// Kind is the state type identifier used in state documents.
	Kind() string

	// Apply establishes the state, observing current state first and
	// mutating only on drift.
	Apply(ctx context.Context, env *Environment) Result
}
