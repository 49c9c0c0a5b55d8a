package handlers

import (
	"context"
	"fmt"

	"github.com/sapops/hostctl/internal/config"
	"github.com/sapops/hostctl/internal/logging"
	"github.com/sapops/hostctl/internal/secrets"
	"github.com/sapops/hostctl/internal/sldreg"
	"github.com/sapops/hostctl/internal/soap"
	"github.com/sapops/hostctl/internal/state"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// findStateFile locates the default state document.
	findStateFile = config.FindStateFile

	// loadStateFile loads a state document from disk.
	loadStateFile = config.LoadFile

	// newInspector creates the local sldreg inspector.
	newInspector = func() *sldreg.Inspector {
		return sldreg.NewInspector("")
	}

	// newEngine creates the state engine.
	newEngine = func(env *state.Environment) applier {
		return state.NewEngine(env)
	}
)

// applier matches state.Engine for test injection.
type applier interface {
	Apply(ctx context.Context, states []state.State) state.Summary
}

// Apply loads a state document and establishes every declared state on the
// host agent, idempotently. With dryRun set, no mutation happens; states
// report what they would change.
func Apply(ctx context.Context, configPath string, dryRun bool) error {
	if configPath == "" {
		path, err := findStateFile()
		if err != nil {
			return fmt.Errorf("no state document found: %w", err)
		}
		configPath = path
	}

	doc, err := loadStateFile(configPath)
	if err != nil {
		return err
	}

	states, err := doc.BuildStates()
	if err != nil {
		return err
	}

	env, err := buildEnvironment(ctx, doc, dryRun)
	if err != nil {
		return err
	}

	summary := newEngine(env).Apply(ctx, states)
	printSummary(summary, dryRun)

	if summary.Failed() {
		return fmt.Errorf("apply finished with failed states")
	}
	return nil
}

// buildEnvironment wires the agent client, sldreg inspector and secret
// resolver for the document. The agent password reference is resolved here,
// once, before any state runs.
func buildEnvironment(ctx context.Context, doc *config.Document, dryRun bool) (*state.Environment, error) {
	// An unset vault section falls back to VAULT_ADDR / VAULT_TOKEN.
	token, err := resolveVaultToken(ctx, doc.Vault.Token)
	if err != nil {
		return nil, err
	}
	resolver := newResolver(secrets.NewVaultResolver(doc.Vault.Address, token))

	password, err := resolver.Resolve(ctx, doc.Agent.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve host agent password: %w", err)
	}

	agent := newAgentClient(soap.Options{
		Host:      doc.Host,
		HTTPSPort: doc.Agent.Port,
		Username:  doc.Agent.Username,
		Password:  password,
		Fallback:  doc.Agent.FallbackEnabled(),
		Insecure:  doc.Agent.Insecure,
		Timeout:   doc.Agent.Timeout,
	})

	return &state.Environment{
		Agent:   agent,
		SLD:     newInspector(),
		Secrets: resolver,
		DryRun:  dryRun,
		Log:     logging.New("apply"),
	}, nil
}

// resolveVaultToken resolves env: and file: token references. The Vault
// itself cannot be used to fetch its own token.
func resolveVaultToken(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	token, err := newResolver(nil).Resolve(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("failed to resolve vault token: %w", err)
	}
	return token, nil
}

// printSummary outputs per-state results and a totals line.
func printSummary(summary state.Summary, dryRun bool) {
	for _, result := range summary.Results {
		fmt.Printf("%s[%s]: %s\n", result.Kind, result.Name, result.Outcome)
		if result.Comment != "" {
			fmt.Printf("  comment: %s\n", result.Comment)
		}
		for _, change := range result.Changes.Old {
			fmt.Printf("  old: %s\n", change)
		}
		for _, change := range result.Changes.New {
			fmt.Printf("  new: %s\n", change)
		}
	}

	counts := summary.Counts()
	fmt.Printf("\nApplied %d state(s): %d succeeded, %d unchanged, %d failed",
		len(summary.Results),
		counts[state.OutcomeSucceeded],
		counts[state.OutcomeUnchanged],
		counts[state.OutcomeFailed])
	if dryRun {
		fmt.Printf(", %d would change", counts[state.OutcomeWouldChange])
	}
	fmt.Println()
}
