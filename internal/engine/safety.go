package engine

import (
	"context"
	"fmt"
)

// IsSafe reports whether a local branch is identical to its remote tracking
// counterpart. When the branch is not safe, reason describes the divergence.
//
// The verdict is computed from fresh ref state on every call. Callers must
// not cache it across a rebase, push, or reset: any of those changes
// ancestry and invalidates the previous answer.
func (e *Engine) IsSafe(ctx context.Context, branchName string) (safe bool, reason string, err error) {
	remoteSha, err := e.git.GetRemoteSha(ctx, e.remote, branchName)
	if err != nil {
		return false, "", err
	}
	return e.isSafeAgainst(ctx, branchName, remoteSha)
}

// isSafeAgainst compares a local branch against a specific remote tip, which
// is either the live tracking ref or the tip recorded in a pass snapshot.
func (e *Engine) isSafeAgainst(ctx context.Context, branchName, remoteSha string) (safe bool, reason string, err error) {
	localSha, err := e.git.GetRevision(ctx, branchName)
	if err != nil {
		return false, "", err
	}
	if localSha == remoteSha {
		return true, "", nil
	}

	remoteRef := fmt.Sprintf("%s/%s", e.remote, branchName)

	ahead, err := e.git.CountCommitRange(ctx, remoteSha, localSha)
	if err != nil {
		return false, "", err
	}
	behind, err := e.git.CountCommitRange(ctx, localSha, remoteSha)
	if err != nil {
		return false, "", err
	}

	return false, fmt.Sprintf("%s is %d commits ahead, %d commits behind %s", branchName, ahead, behind, remoteRef), nil
}
