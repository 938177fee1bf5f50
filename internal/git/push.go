package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	rbterrors "rebasebot.dev/rebasebot/internal/errors"
)

// PushBranchWithLease force-pushes branchName to remote, guarded by a lease
// on expectedRemoteSha: the remote rejects the update unless its ref still
// points at expectedRemoteSha. Returns ErrStaleRemoteInfo when the lease is
// violated, meaning someone else updated the remote ref since it was fetched.
func PushBranchWithLease(ctx context.Context, remote, branchName, expectedRemoteSha string) error {
	lease := fmt.Sprintf("--force-with-lease=%s:%s", branchName, expectedRemoteSha)

	_, err := RunGitCommandWithContext(ctx, "push", lease, remote, branchName)
	if err != nil {
		var cmdErr *rbterrors.GitCommandError
		if errors.As(err, &cmdErr) {
			combined := cmdErr.Stderr + cmdErr.Stdout
			if strings.Contains(combined, "stale info") || strings.Contains(combined, "[rejected]") {
				return fmt.Errorf("push of %s rejected by lease check: %w", branchName, rbterrors.ErrStaleRemoteInfo)
			}
		}
		return fmt.Errorf("failed to push branch %s: %w", branchName, err)
	}

	return nil
}
