package git

import (
	"context"
	"fmt"
	"strings"

	rbterrors "rebasebot.dev/rebasebot/internal/errors"
)

// GetCurrentBranch returns the name of the currently checked-out branch.
// Returns ErrNotOnBranch if HEAD is detached.
func GetCurrentBranch(ctx context.Context) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil || output == "" {
		return "", rbterrors.ErrNotOnBranch
	}
	return output, nil
}

// CheckoutBranch checks out an existing branch
func CheckoutBranch(ctx context.Context, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "checkout", "-q", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// BranchExists reports whether a local branch exists
func BranchExists(ctx context.Context, branchName string) bool {
	_, err := RunGitCommandWithContext(ctx, "show-ref", "--verify", "--quiet", "refs/heads/"+branchName)
	return err == nil
}

// HasUncommittedChanges reports whether the working tree or index differ from HEAD.
// Untracked files do not count; they survive checkouts and rebases unharmed.
func HasUncommittedChanges(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, fmt.Errorf("failed to get worktree status: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// StashPush pushes current changes to the stash
func StashPush(ctx context.Context, message string) (string, error) {
	args := []string{"stash", "push", "-u"}
	if message != "" {
		args = append(args, "-m", message)
	}
	output, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("stash push failed: %w", err)
	}
	return output, nil
}

// StashPop pops the most recent stash
func StashPop(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "stash", "pop")
	if err != nil {
		return fmt.Errorf("stash pop failed: %w", err)
	}
	return nil
}
