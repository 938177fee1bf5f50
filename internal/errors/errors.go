// Package errors provides sentinel errors and custom error types for the rebasebot application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNoRemote indicates that the repository has no usable remote
	ErrNoRemote = errors.New("no remote configured")

	// ErrDirtyWorktree indicates uncommitted changes in the working tree
	ErrDirtyWorktree = errors.New("working tree has uncommitted changes")

	// ErrStaleRemoteInfo indicates that a force-with-lease push was rejected
	// because the remote ref moved since it was last fetched
	ErrStaleRemoteInfo = errors.New("stale remote info")

	// ErrFatal marks conditions that require manual repository inspection.
	// Errors wrapping ErrFatal must stop the run immediately.
	ErrFatal = errors.New("fatal repository state")
)

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// RebaseAbortError reports that a conflicted rebase could not be aborted,
// leaving the repository mid-rebase. This is the one condition the
// propagation loop treats as fatal.
type RebaseAbortError struct {
	BranchName string
	Err        error
}

func (e *RebaseAbortError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rebase of %s conflicted and the abort did not complete: %v", e.BranchName, e.Err)
	}
	return fmt.Sprintf("rebase of %s conflicted and the abort did not complete", e.BranchName)
}

func (e *RebaseAbortError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrFatal
func (e *RebaseAbortError) Is(target error) bool {
	return target == ErrFatal
}

// NewRebaseAbortError creates a new RebaseAbortError
func NewRebaseAbortError(branchName string, err error) *RebaseAbortError {
	return &RebaseAbortError{BranchName: branchName, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
