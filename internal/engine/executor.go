package engine

import (
	"context"
	"errors"

	rbterrors "rebasebot.dev/rebasebot/internal/errors"
	"rebasebot.dev/rebasebot/internal/git"
	"rebasebot.dev/rebasebot/internal/github"
)

// RebaseOne rebases one pull request's head branch onto its base and pushes
// the result with a lease guard. The originally checked-out branch is
// restored before returning, on every exit path.
//
// A conflicting rebase is aborted and reported as OutcomeConflict; a lease
// violation on push hard-resets the local head to the remote tip and is
// reported as OutcomePushRaced. The only fatal error is a post-conflict
// abort that does not reach the aborted state.
func (e *Engine) RebaseOne(ctx context.Context, pr *github.PullRequestInfo) (outcome Outcome, err error) {
	originalBranch, err := e.git.GetCurrentBranch(ctx)
	if err != nil {
		return OutcomeNoChange, err
	}

	defer func() {
		if restoreErr := e.git.CheckoutBranch(ctx, originalBranch); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()

	// The lease expectation: the remote tip this rebase starts from. A push
	// must fail if the remote moves past this point before we get there.
	expectedRemoteSha, err := e.git.GetRemoteSha(ctx, e.remote, pr.Head)
	if err != nil {
		return OutcomeNoChange, err
	}

	if err := e.git.CheckoutBranch(ctx, pr.Head); err != nil {
		return OutcomeNoChange, err
	}

	e.splog.Info("Rebasing %q %s <- %s...", pr.Title, pr.Base, pr.Head)

	result, err := e.git.Rebase(ctx, pr.Head, pr.Base)
	if err != nil {
		// Includes the fatal RebaseAbortError; let the loop classify it
		return OutcomeConflict, err
	}
	if result == git.RebaseConflict {
		e.splog.Warn("Rebase of %q conflicted; aborted, branch unchanged", pr.Title)
		return OutcomeConflict, nil
	}

	// Ancestry changed, so re-derive safety from fresh state. A safe head
	// means the rebase produced the same commits already on the remote.
	safe, _, err := e.IsSafe(ctx, pr.Head)
	if err != nil {
		return OutcomeNoChange, err
	}
	if safe {
		e.splog.Info("No changes for %q. Not pushing to remote.", pr.Title)
		return OutcomeNoChange, nil
	}

	e.splog.Info("Pushing %s to %s...", pr.Head, e.remote)

	if err := e.git.PushBranchWithLease(ctx, e.remote, pr.Head, expectedRemoteSha); err != nil {
		if errors.Is(err, rbterrors.ErrStaleRemoteInfo) {
			return e.resetToRemote(ctx, pr)
		}
		return OutcomeNoChange, err
	}

	e.splog.Info("Successfully pushed %s for %q", pr.Head, pr.Title)
	return OutcomePushed, nil
}

// resetToRemote discards the local rebase of pr.Head in favor of the remote
// state after a lost push race. The next pass re-evaluates from the new tip.
func (e *Engine) resetToRemote(ctx context.Context, pr *github.PullRequestInfo) (Outcome, error) {
	e.splog.Warn("Push of %s rejected: remote advanced concurrently. Resetting to %s/%s...", pr.Head, e.remote, pr.Head)

	remoteSha, err := e.git.GetRemoteSha(ctx, e.remote, pr.Head)
	if err != nil {
		return OutcomePushRaced, err
	}
	if err := e.git.HardReset(ctx, remoteSha); err != nil {
		return OutcomePushRaced, err
	}

	e.splog.Info("Successfully reset %s", pr.Head)
	return OutcomePushRaced, nil
}
