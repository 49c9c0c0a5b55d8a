package state

// Outcome is the terminal status of a state application.
type Outcome string

const (
	// OutcomeSucceeded means the state mutated the host into the desired
	// shape.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeUnchanged means the host already matched the desired state and
	// nothing was mutated.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeWouldChange is reported in dry-run mode instead of mutating.
	OutcomeWouldChange Outcome = "would change"
	// OutcomeFailed means the state could not be established.
	OutcomeFailed Outcome = "failed"
)

// Changes records what a state did (or would do), in before/after form.
type Changes struct {
	Old []string
	New []string
}

// Empty reports whether no changes were recorded.
func (c Changes) Empty() bool {
	return len(c.Old) == 0 && len(c.New) == 0
}

// Result is the outcome contract every state reports.
type Result struct {
	Name    string
	Kind    string
	Outcome Outcome
	Comment string
	Changes Changes
}

// Failed reports whether the state could not be established.
func (r Result) Failed() bool {
	return r.Outcome == OutcomeFailed
}

func failure(kind, name, comment string, changes Changes) Result {
	return Result{
		Name:    name,
		Kind:    kind,
		Outcome: OutcomeFailed,
		Comment: comment,
		Changes: changes,
	}
}
