package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	rbterrors "rebasebot.dev/rebasebot/internal/errors"
)

// GetRevision returns the SHA a branch currently points to.
// Returns a BranchNotFoundError if the branch cannot be resolved.
func GetRevision(ctx context.Context, branchName string) (string, error) {
	sha, err := RunGitCommandWithContext(ctx, "rev-parse", "--verify", "--quiet", branchName)
	if err != nil || sha == "" {
		return "", rbterrors.NewBranchNotFoundError(branchName)
	}
	return sha, nil
}

// GetRemoteSha returns the SHA of a remote-tracking branch.
// Returns a BranchNotFoundError if no tracking ref exists.
func GetRemoteSha(ctx context.Context, remote, branchName string) (string, error) {
	ref := fmt.Sprintf("%s/%s", remote, branchName)
	sha, err := RunGitCommandWithContext(ctx, "rev-parse", "--verify", "--quiet",
		"refs/remotes/"+ref)
	if err != nil || sha == "" {
		return "", rbterrors.NewBranchNotFoundError(ref)
	}
	return sha, nil
}

// CountCommitRange returns the number of commits reachable from until but
// not from since, i.e. `git rev-list --count since..until`.
func CountCommitRange(ctx context.Context, since, until string) (int, error) {
	output, err := RunGitCommandWithContext(ctx, "rev-list", "--count",
		fmt.Sprintf("%s..%s", since, until))
	if err != nil {
		return 0, fmt.Errorf("failed to count commits in %s..%s: %w", since, until, err)
	}
	count, err := strconv.Atoi(output)
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list output %q: %w", output, err)
	}
	return count, nil
}

// IsAncestor reports whether ancestor is reachable from descendant
func IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	_, err := RunGitCommandWithContext(ctx, "merge-base", "--is-ancestor", ancestor, descendant)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateBranchRef updates a branch reference to point to a new commit
func UpdateBranchRef(ctx context.Context, branchName, commitSHA string) error {
	_, err := RunGitCommandWithContext(ctx, "update-ref", "refs/heads/"+branchName, commitSHA)
	if err != nil {
		return fmt.Errorf("failed to update branch ref: %w", err)
	}
	return nil
}
