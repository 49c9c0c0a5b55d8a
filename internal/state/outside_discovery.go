package state

import (
	"context"
	"fmt"

	"github.com/sapops/hostctl/internal/hostagent"
)

// KindOutsideDiscoveryExecuted is the state document identifier for
// OutsideDiscoveryExecuted.
const KindOutsideDiscoveryExecuted = "outside_discovery_executed"

// OutsideDiscoveryExecuted ensures the host agent has a single SLD
// destination configured and has successfully executed outside discovery
// against it.
type OutsideDiscoveryExecuted struct {
	// SLDHost is the fully qualified domain name of the SLD / LMDB.
	SLDHost string
	// SLDPort is the HTTPS port of the SLD / LMDB.
	SLDPort int
	// SLDUsername authenticates against the SLD.
	SLDUsername string
	// SLDPassword is a credential reference, resolved at apply time.
	SLDPassword string

	// Overwrite rewrites the destination even when it already matches.
	Overwrite bool
	// KeepOtherConfig leaves destinations for other SLDs in place.
	KeepOtherConfig bool
}

// Name returns the SLD host this state targets.
func (s OutsideDiscoveryExecuted) Name() string { return s.SLDHost }

// Kind returns the state type identifier.
func (s OutsideDiscoveryExecuted) Kind() string { return KindOutsideDiscoveryExecuted }

// Apply establishes the SLD destination and runs outside discovery. When the
// destination already matches and the outside-discovery log shows a
// successful run, nothing happens.
func (s OutsideDiscoveryExecuted) Apply(ctx context.Context, env *Environment) Result {
	changes := Changes{}
	ownPath := env.SLD.DestinationPath(s.SLDHost, s.SLDPort)

	if !s.KeepOtherConfig {
		if err := s.removeOtherDestinations(env, ownPath, &changes); err != nil {
			return failure(s.Kind(), s.SLDHost, err.Error(), changes)
		}
	}

	stale, err := s.destinationStale(ctx, env, ownPath)
	if err != nil {
		return failure(s.Kind(), s.SLDHost, err.Error(), changes)
	}

	if stale {
		changes.Old = append(changes.Old, "SLD destination is not configured correctly")
	} else {
		changes.Old = append(changes.Old, "SLD destination is configured correctly")
	}

	switch {
	case stale || s.Overwrite:
		if env.DryRun {
			changes.New = append(changes.New, "SLD destination would be configured")
		} else {
			if err := s.configure(ctx, env); err != nil {
				return failure(s.Kind(), s.SLDHost,
					fmt.Sprintf("cannot configure outside discovery: %v", err), changes)
			}
			changes.New = append(changes.New, "SLD destination is configured")
		}
	default:
		// Destination already matches; skip execution entirely when the log
		// shows a successful run.
		succeeded, err := env.SLD.LastRunSucceeded()
		if err != nil {
			return failure(s.Kind(), s.SLDHost, err.Error(), changes)
		}
		if succeeded {
			return Result{
				Name:    s.SLDHost,
				Kind:    s.Kind(),
				Outcome: OutcomeUnchanged,
				Comment: "no changes required",
			}
		}
		changes.Old = append(changes.Old, "outside discovery was not yet executed successfully")
	}

	if env.DryRun {
		changes.New = append(changes.New, "outside discovery would be executed")
		return Result{
			Name:    s.SLDHost,
			Kind:    s.Kind(),
			Outcome: OutcomeWouldChange,
			Comment: "outside discovery would be configured and executed",
			Changes: changes,
		}
	}

	if removed, err := env.SLD.RemoveLog(); err != nil {
		return failure(s.Kind(), s.SLDHost, err.Error(), changes)
	} else if removed {
		changes.Old = append(changes.Old, fmt.Sprintf("removed %s", env.SLD.LogPath()))
	}

	if err := env.Agent.ExecuteOutsideDiscovery(ctx); err != nil {
		return failure(s.Kind(), s.SLDHost,
			fmt.Sprintf("outside discovery configuration is maintained but execution failed: %v", err), changes)
	}

	changes.New = append(changes.New, "outside discovery was executed successfully")
	return Result{
		Name:    s.SLDHost,
		Kind:    s.Kind(),
		Outcome: OutcomeSucceeded,
		Comment: "outside discovery configuration is maintained and was executed successfully",
		Changes: changes,
	}
}

// removeOtherDestinations drops slddest files for SLDs other than the
// desired one.
func (s OutsideDiscoveryExecuted) removeOtherDestinations(env *Environment, ownPath string, changes *Changes) error {
	destinations, err := env.SLD.ListDestinations()
	if err != nil {
		return err
	}
	for _, destination := range destinations {
		if destination == ownPath {
			continue
		}
		if env.DryRun {
			changes.Old = append(changes.Old, fmt.Sprintf("would remove %s", destination))
			continue
		}
		if err := env.SLD.RemoveDestination(destination); err != nil {
			return err
		}
		changes.Old = append(changes.Old, fmt.Sprintf("removed %s", destination))
	}
	return nil
}

// destinationStale reports whether the stored destination differs from the
// desired one. A missing configuration file counts as stale.
func (s OutsideDiscoveryExecuted) destinationStale(ctx context.Context, env *Environment, ownPath string) (bool, error) {
	if !env.SLD.DestinationExists(ownPath) {
		return true, nil
	}
	stored, err := env.SLD.ShowConnect(ctx, ownPath)
	if err != nil {
		return false, fmt.Errorf("cannot read stored SLD destination: %w", err)
	}
	return !stored.Matches(s.SLDHost, s.SLDPort, s.SLDUsername), nil
}

// configure resolves the SLD credential and writes the destination.
func (s OutsideDiscoveryExecuted) configure(ctx context.Context, env *Environment) error {
	password, err := env.Secrets.Resolve(ctx, s.SLDPassword)
	if err != nil {
		return fmt.Errorf("cannot resolve SLD password: %w", err)
	}
	return env.Agent.ConfigureOutsideDiscovery(ctx, hostagent.Destination{
		Host:     s.SLDHost,
		Port:     s.SLDPort,
		Username: s.SLDUsername,
		Password: password,
		UseSSL:   true,
	})
}
