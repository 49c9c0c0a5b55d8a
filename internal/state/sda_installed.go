package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/sapops/hostctl/internal/hostagent"
)

// KindSDAInstalled is the state document identifier for SDAInstalled.
const KindSDAInstalled = "sda_installed"

// SDAInstalled ensures a Simple Diagnostics Agent is deployed on the host
// agent.
type SDAInstalled struct {
	// ArchivePath is the SDA SAR archive on the managed host.
	ArchivePath string
	// JVMArchivePath is the SAP JVM SAR archive.
	JVMArchivePath string
	// Verify toggles TLS certificate verification of the SDA session.
	Verify bool
	// Overwrite deploys even when an SDA already answers the ping service.
	Overwrite bool
}

// Name returns the SDA archive path.
func (s SDAInstalled) Name() string { return s.ArchivePath }

// Kind returns the state type identifier.
func (s SDAInstalled) Kind() string { return KindSDAInstalled }

// Apply probes the SDA ping service and deploys the archives on a miss.
func (s SDAInstalled) Apply(ctx context.Context, env *Environment) Result {
	if !s.Overwrite {
		version, err := env.Agent.PingSDA(ctx, s.Verify)
		switch {
		case err == nil:
			return Result{
				Name:    s.ArchivePath,
				Kind:    s.Kind(),
				Outcome: OutcomeUnchanged,
				Comment: fmt.Sprintf("SDA %s is already installed", version),
			}
		case !errors.Is(err, hostagent.ErrSDANotInstalled):
			return failure(s.Kind(), s.ArchivePath, fmt.Sprintf("cannot probe SDA: %v", err), Changes{})
		}
	}

	old := "SDA was not installed"
	if s.Overwrite {
		old = "SDA was possibly installed"
	}

	if env.DryRun {
		return Result{
			Name:    s.ArchivePath,
			Kind:    s.Kind(),
			Outcome: OutcomeWouldChange,
			Comment: "SDA would be installed",
			Changes: Changes{Old: []string{old}, New: []string{"SDA would be installed"}},
		}
	}

	if err := env.Agent.DeploySDA(ctx, s.ArchivePath, s.JVMArchivePath, s.Verify); err != nil {
		return failure(s.Kind(), s.ArchivePath, fmt.Sprintf("cannot install SDA: %v", err), Changes{})
	}

	return Result{
		Name:    s.ArchivePath,
		Kind:    s.Kind(),
		Outcome: OutcomeSucceeded,
		Comment: "installed SDA",
		Changes: Changes{Old: []string{old}, New: []string{"SDA is installed"}},
	}
}
