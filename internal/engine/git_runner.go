package engine

import (
	"context"

	"rebasebot.dev/rebasebot/internal/git"
)

// GitRunner defines the git operations the engine needs.
// This allows the engine to be used with both real git and mock implementations.
type GitRunner interface {
	// Branch state
	GetCurrentBranch(ctx context.Context) (string, error)
	CheckoutBranch(ctx context.Context, branchName string) error
	GetRevision(ctx context.Context, branchName string) (string, error)
	GetRemoteSha(ctx context.Context, remote, branchName string) (string, error)
	CountCommitRange(ctx context.Context, since, until string) (int, error)

	// Mutating operations
	Rebase(ctx context.Context, branchName, onto string) (git.RebaseResult, error)
	PushBranchWithLease(ctx context.Context, remote, branchName, expectedRemoteSha string) error
	HardReset(ctx context.Context, sha string) error
}

// NewRealRunner returns a GitRunner backed by the git binary
func NewRealRunner() GitRunner {
	return &realRunner{}
}

// realRunner implements GitRunner by calling the git package functions
type realRunner struct{}

func (r *realRunner) GetCurrentBranch(ctx context.Context) (string, error) {
	return git.GetCurrentBranch(ctx)
}

func (r *realRunner) CheckoutBranch(ctx context.Context, branchName string) error {
	return git.CheckoutBranch(ctx, branchName)
}

func (r *realRunner) GetRevision(ctx context.Context, branchName string) (string, error) {
	return git.GetRevision(ctx, branchName)
}

func (r *realRunner) GetRemoteSha(ctx context.Context, remote, branchName string) (string, error) {
	return git.GetRemoteSha(ctx, remote, branchName)
}

func (r *realRunner) CountCommitRange(ctx context.Context, since, until string) (int, error) {
	return git.CountCommitRange(ctx, since, until)
}

func (r *realRunner) Rebase(ctx context.Context, branchName, onto string) (git.RebaseResult, error) {
	return git.Rebase(ctx, branchName, onto)
}

func (r *realRunner) PushBranchWithLease(ctx context.Context, remote, branchName, expectedRemoteSha string) error {
	return git.PushBranchWithLease(ctx, remote, branchName, expectedRemoteSha)
}

func (r *realRunner) HardReset(ctx context.Context, sha string) error {
	return git.HardReset(ctx, sha)
}
