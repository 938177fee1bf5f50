package git

import (
	"context"
	"fmt"
)

// FetchAll fetches all remotes, pruning remote-tracking refs that no longer
// exist on the remote.
func FetchAll(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "fetch", "--all", "--prune", "--quiet")
	if err != nil {
		return fmt.Errorf("failed to fetch remotes: %w", err)
	}
	return nil
}

// FastForward advances the local branchName to its remote tracking tip.
// It is a no-op when the branch is already up to date and an error when the
// local branch has diverged (a fast-forward is not possible).
func FastForward(ctx context.Context, remote, branchName string) error {
	localSha, err := GetRevision(ctx, branchName)
	if err != nil {
		return err
	}
	remoteSha, err := GetRemoteSha(ctx, remote, branchName)
	if err != nil {
		return err
	}

	if localSha == remoteSha {
		return nil
	}

	fastForwardable, err := IsAncestor(ctx, localSha, remoteSha)
	if err != nil {
		return err
	}
	if !fastForwardable {
		return fmt.Errorf("local branch %s has diverged from %s/%s; cannot fast-forward", branchName, remote, branchName)
	}

	current, err := GetCurrentBranch(ctx)
	if err == nil && current == branchName {
		// Checked out: move the work tree along with the ref
		_, err = RunGitCommandWithContext(ctx, "merge", "--ff-only", "--quiet", remoteSha)
		if err != nil {
			return fmt.Errorf("failed to fast-forward %s: %w", branchName, err)
		}
		return nil
	}

	if err := UpdateBranchRef(ctx, branchName, remoteSha); err != nil {
		return fmt.Errorf("failed to fast-forward %s: %w", branchName, err)
	}
	return nil
}
