package git

import (
	"context"
	"fmt"
	"os"

	rbterrors "rebasebot.dev/rebasebot/internal/errors"
)

// RebaseResult represents the result of a rebase operation
type RebaseResult int

const (
	// RebaseDone indicates the rebase was successful
	RebaseDone RebaseResult = iota
	// RebaseConflict indicates the rebase failed and was aborted
	RebaseConflict
)

// Rebase rebases branchName onto the tip of onto. The branch must already be
// checked out. On failure the rebase is aborted; if the abort does not bring
// the repository out of the rebasing state, a RebaseAbortError is returned
// and no further automation should touch the repository.
func Rebase(ctx context.Context, branchName, onto string) (RebaseResult, error) {
	_, err := RunGitCommandWithContext(ctx, "rebase", onto, branchName)
	if err == nil {
		return RebaseDone, nil
	}

	abortErr := RebaseAbort(ctx)
	if IsRebaseInProgress(ctx) {
		return RebaseConflict, rbterrors.NewRebaseAbortError(branchName, abortErr)
	}

	return RebaseConflict, nil
}

// RebaseAbort aborts an in-progress rebase
func RebaseAbort(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "rebase", "--abort")
	if err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}

// IsRebaseInProgress checks if a rebase is currently in progress
func IsRebaseInProgress(ctx context.Context) bool {
	// Check for .git/rebase-merge or .git/rebase-apply directories.
	// This is more reliable than checking REBASE_HEAD which can persist after rebase
	gitDir, err := RunGitCommandWithContext(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return false
	}

	if _, err := os.Stat(gitDir + "/rebase-merge"); err == nil {
		return true
	}
	if _, err := os.Stat(gitDir + "/rebase-apply"); err == nil {
		return true
	}
	return false
}
