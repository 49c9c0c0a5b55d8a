package state

import (
	"context"
	"fmt"
)

// KindSystemInstalled is the state document identifier for SystemInstalled.
const KindSystemInstalled = "system_installed"

// SystemInstalled asserts that an SAP system is installed on the host. It
// never mutates; it is typically the first state in a document so later
// states do not run against an empty host.
type SystemInstalled struct {
	SID string
}

// Name returns the SID this state asserts.
func (s SystemInstalled) Name() string { return s.SID }

// Kind returns the state type identifier.
func (s SystemInstalled) Kind() string { return KindSystemInstalled }

// Apply checks the installed systems reported by the host agent.
func (s SystemInstalled) Apply(ctx context.Context, env *Environment) Result {
	systems, err := env.Agent.ListSystems(ctx)
	if err != nil {
		return failure(s.Kind(), s.SID, fmt.Sprintf("cannot list installed systems: %v", err), Changes{})
	}

	for _, sid := range systems {
		if sid == s.SID {
			return Result{
				Name:    s.SID,
				Kind:    s.Kind(),
				Outcome: OutcomeUnchanged,
				Comment: fmt.Sprintf("SAP system %s is installed", s.SID),
			}
		}
	}
	return failure(s.Kind(), s.SID, fmt.Sprintf("SAP system %s is not installed", s.SID), Changes{})
}
