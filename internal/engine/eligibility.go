package engine

import (
	"context"
	"errors"
	"fmt"

	rbterrors "rebasebot.dev/rebasebot/internal/errors"
	"rebasebot.dev/rebasebot/internal/github"
)

// remoteSnapshot records the remote tracking tip of each branch as of the
// start of a pass. Branches with no tracking ref are absent.
type remoteSnapshot map[string]string

// snapshotRemoteTips captures the remote tracking tips of every base and
// head branch referenced by the pull requests.
func (e *Engine) snapshotRemoteTips(ctx context.Context, prs []*github.PullRequestInfo) remoteSnapshot {
	snapshot := remoteSnapshot{}
	for _, pr := range prs {
		for _, branchName := range []string{pr.Base, pr.Head} {
			if _, ok := snapshot[branchName]; ok {
				continue
			}
			sha, err := e.git.GetRemoteSha(ctx, e.remote, branchName)
			if err != nil {
				continue
			}
			snapshot[branchName] = sha
		}
	}
	return snapshot
}

// IsEligible reports whether a pull request may be rebased right now: both
// its base and head branches must be safe. An unsafe or missing branch makes
// the PR ineligible, never a run-stopping error.
func (e *Engine) IsEligible(ctx context.Context, pr *github.PullRequestInfo) (eligible bool, reason string, err error) {
	return e.isEligibleInPass(ctx, pr, e.snapshotRemoteTips(ctx, []*github.PullRequestInfo{pr}))
}

// isEligibleInPass evaluates eligibility against the pass's snapshot of
// remote tips. Local tips are read live: a base branch rewritten by an
// earlier rebase in the same pass no longer matches its snapshotted remote
// tip, so its dependents are held back until the next pass re-snapshots.
func (e *Engine) isEligibleInPass(ctx context.Context, pr *github.PullRequestInfo, snapshot remoteSnapshot) (eligible bool, reason string, err error) {
	for _, branchName := range []string{pr.Base, pr.Head} {
		remoteSha, ok := snapshot[branchName]
		if !ok {
			return false, fmt.Sprintf("branch %s has no %s tracking ref", branchName, e.remote), nil
		}

		safe, unsafeReason, err := e.isSafeAgainst(ctx, branchName, remoteSha)
		if err != nil {
			if errors.Is(err, rbterrors.ErrBranchNotFound) {
				return false, err.Error(), nil
			}
			return false, "", err
		}
		if !safe {
			return false, unsafeReason, nil
		}
	}

	return true, "", nil
}
