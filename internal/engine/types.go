package engine

// Outcome represents the result of one rebase attempt on a pull request
type Outcome int

const (
	// OutcomeNoChange indicates the rebase left the branch identical to its remote tip
	OutcomeNoChange Outcome = iota
	// OutcomePushed indicates the rebased branch was pushed to the remote
	OutcomePushed
	// OutcomePushRaced indicates the lease push was rejected and the local branch was reset to the remote tip
	OutcomePushRaced
	// OutcomeConflict indicates the rebase conflicted and was aborted
	OutcomeConflict
)

// String returns a human-readable name for the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeNoChange:
		return "no change"
	case OutcomePushed:
		return "pushed"
	case OutcomePushRaced:
		return "push raced, reset to remote"
	case OutcomeConflict:
		return "conflict, aborted"
	default:
		return "unknown"
	}
}

// Changed reports whether the outcome altered remote-visible or local branch
// state in a way that can affect dependent pull requests.
func (o Outcome) Changed() bool {
	return o == OutcomePushed || o == OutcomePushRaced
}

// Summary describes a full propagation run
type Summary struct {
	Passes    int
	Pushed    int
	Raced     int
	Conflicts int
	Skipped   int
}
