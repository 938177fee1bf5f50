package engine

import (
	"context"
	"errors"

	rbterrors "rebasebot.dev/rebasebot/internal/errors"
	"rebasebot.dev/rebasebot/internal/github"
)

// Propagate runs rebase passes over the pull requests until a fixpoint: a
// full pass in which no pull request pushed or reset anything. Remote tips
// are re-snapshotted at the start of every pass, so a branch rewritten in an
// earlier pass holds its dependents back exactly one pass.
//
// PRs are visited in the order they were listed. No topological sort is
// needed: rebasing a base branch makes its dependents ineligible for the
// rest of the pass, and the next pass picks them up against fresh state.
// Termination relies on the stack being a finite, acyclic chain of base/head
// relationships; a cycle among the PRs would loop forever and is a
// precondition violation.
func (e *Engine) Propagate(ctx context.Context, prs []*github.PullRequestInfo) (*Summary, error) {
	summary := &Summary{}

	if e.dryRun {
		return summary, e.dryRunPass(ctx, prs, summary)
	}

	e.announce(ctx, prs)

	for {
		if e.maxPasses > 0 && summary.Passes >= e.maxPasses {
			e.splog.Warn("Stopping after %d passes without reaching a fixpoint", summary.Passes)
			break
		}
		summary.Passes++

		changed, err := e.runPass(ctx, prs, summary)
		if err != nil {
			return summary, err
		}
		if changed == 0 {
			break
		}
		e.splog.Debug("Pass %d changed %d branches; running another pass", summary.Passes, changed)
	}

	return summary, nil
}

// runPass executes one pass over the pull requests and returns the number of
// PRs whose outcome can affect dependents.
func (e *Engine) runPass(ctx context.Context, prs []*github.PullRequestInfo, summary *Summary) (int, error) {
	snapshot := e.snapshotRemoteTips(ctx, prs)

	changed := 0
	for _, pr := range prs {
		eligible, reason, err := e.isEligibleInPass(ctx, pr, snapshot)
		if err != nil {
			e.splog.Warn("Skipping %q: %v", pr.Title, err)
			summary.Skipped++
			continue
		}
		if !eligible {
			e.splog.Info("Not rebasing %q %s <- %s: %s", pr.Title, pr.Base, pr.Head, reason)
			continue
		}

		outcome, err := e.RebaseOne(ctx, pr)
		if err != nil {
			if errors.Is(err, rbterrors.ErrFatal) {
				return changed, err
			}
			e.splog.Warn("Skipping %q: %v", pr.Title, err)
			summary.Skipped++
			continue
		}

		switch outcome {
		case OutcomePushed:
			summary.Pushed++
		case OutcomePushRaced:
			summary.Raced++
		case OutcomeConflict:
			summary.Conflicts++
		}
		if outcome.Changed() {
			changed++
		}
	}

	return changed, nil
}

// announce logs the eligible set as of the start of the run
func (e *Engine) announce(ctx context.Context, prs []*github.PullRequestInfo) {
	eligible := e.preview(ctx, prs)
	e.splog.Info("Going to rebase %d/%d safe pull requests:", len(eligible), len(prs))
	for _, pr := range eligible {
		e.splog.Info("  %q %s <- %s", pr.Title, pr.Base, pr.Head)
	}
}

// preview returns the PRs eligible against current branch state, without
// logging per-PR verdicts or mutating anything.
func (e *Engine) preview(ctx context.Context, prs []*github.PullRequestInfo) []*github.PullRequestInfo {
	snapshot := e.snapshotRemoteTips(ctx, prs)

	var eligible []*github.PullRequestInfo
	for _, pr := range prs {
		ok, _, err := e.isEligibleInPass(ctx, pr, snapshot)
		if err == nil && ok {
			eligible = append(eligible, pr)
		}
	}
	return eligible
}

// dryRunPass reports what the first pass would do, without touching anything
func (e *Engine) dryRunPass(ctx context.Context, prs []*github.PullRequestInfo, summary *Summary) error {
	summary.Passes = 1
	snapshot := e.snapshotRemoteTips(ctx, prs)

	var eligible []*github.PullRequestInfo
	for _, pr := range prs {
		ok, reason, err := e.isEligibleInPass(ctx, pr, snapshot)
		if err != nil {
			e.splog.Warn("Skipping %q: %v", pr.Title, err)
			summary.Skipped++
			continue
		}
		if !ok {
			e.splog.Info("Would not rebase %q %s <- %s: %s", pr.Title, pr.Base, pr.Head, reason)
			continue
		}
		eligible = append(eligible, pr)
	}

	e.splog.Info("Would rebase %d/%d safe pull requests:", len(eligible), len(prs))
	for _, pr := range eligible {
		e.splog.Info("  %q %s <- %s", pr.Title, pr.Base, pr.Head)
	}

	return nil
}
