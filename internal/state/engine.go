package state

import (
	"context"

	"github.com/sapops/hostctl/internal/logging"
)

// Summary aggregates the results of an apply run.
type Summary struct {
	Results []Result
}

// Failed reports whether any state failed.
func (s Summary) Failed() bool {
	for _, result := range s.Results {
		if result.Failed() {
			return true
		}
	}
	return false
}

// Counts returns the number of results per outcome.
func (s Summary) Counts() map[Outcome]int {
	counts := map[Outcome]int{}
	for _, result := range s.Results {
		counts[result.Outcome]++
	}
	return counts
}

// Engine applies states in document order.
type Engine struct {
	env *Environment
	log logging.Logger
}

// NewEngine returns an Engine operating in the given environment.
func NewEngine(env *Environment) *Engine {
	if env.Log == nil {
		env.Log = logging.New("state")
	}
	return &Engine{env: env, log: env.Log}
}

// Apply runs every state and collects the results. A failing state does not
// stop later states; each reports independently.
func (e *Engine) Apply(ctx context.Context, states []State) Summary {
	summary := Summary{Results: make([]Result, 0, len(states))}
	for _, desired := range states {
		log := e.log.WithField("state", desired.Kind()).WithField("name", desired.Name())
		log.Info("applying state")

		result := desired.Apply(ctx, e.env)

		if result.Failed() {
			log.WithField("comment", result.Comment).Error("state failed")
		} else {
			log.WithField("outcome", result.Outcome).Info("state applied")
		}
		summary.Results = append(summary.Results, result)
	}
	return summary
}
