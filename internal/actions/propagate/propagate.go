// Package propagate implements the top-level rebase-propagation workflow:
// fetch, fast-forward the trunk, list the user's open pull requests and run
// the engine to fixpoint.
package propagate

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	rbterrors "rebasebot.dev/rebasebot/internal/errors"
	"rebasebot.dev/rebasebot/internal/git"
	"rebasebot.dev/rebasebot/internal/github"
	"rebasebot.dev/rebasebot/internal/runtime"
)

// Options contains options for the propagate action
type Options struct {
	// Yes skips the confirmation prompt
	Yes bool

	// DryRun reports what would happen without mutating anything
	DryRun bool

	// Autostash stashes uncommitted changes around the run instead of
	// refusing to start
	Autostash bool
}

// Action runs one full propagation
func Action(ctx context.Context, rt *runtime.Context, opts Options) error {
	splog := rt.Splog

	dirty, err := git.HasUncommittedChanges(ctx)
	if err != nil {
		return err
	}
	if dirty && !opts.DryRun {
		if !opts.Autostash {
			return fmt.Errorf("%w; commit, stash, or pass --autostash", rbterrors.ErrDirtyWorktree)
		}
		if _, err := git.StashPush(ctx, "rebasebot autostash"); err != nil {
			return err
		}
		defer func() {
			if popErr := git.StashPop(ctx); popErr != nil {
				splog.Warn("Failed to restore autostashed changes: %v", popErr)
			}
		}()
	}

	splog.Info("Fetching %s...", rt.Remote)
	if err := git.FetchAll(ctx); err != nil {
		return err
	}

	trunk := rt.Trunk
	if trunk == "" {
		repoInfo, err := rt.GitHubClient.GetRepository(ctx)
		if err != nil {
			return err
		}
		trunk = repoInfo.DefaultBranch
	}

	splog.Debug("Fast-forwarding %s", trunk)
	if err := git.FastForward(ctx, rt.Remote, trunk); err != nil {
		return err
	}

	prs, err := github.ListMyOpenPullRequests(ctx, rt.GitHubClient)
	if err != nil {
		return err
	}
	if len(prs) == 0 {
		splog.Info("No open pull requests to rebase.")
		return nil
	}

	if !opts.DryRun && !confirm(opts, len(prs)) {
		splog.Info("Aborted.")
		return nil
	}

	summary, err := rt.Engine.Propagate(ctx, prs)
	if err != nil {
		return err
	}

	if !opts.DryRun {
		splog.Info("Done in %d passes: %d pushed, %d raced, %d conflicted, %d skipped",
			summary.Passes, summary.Pushed, summary.Raced, summary.Conflicts, summary.Skipped)
	}
	return nil
}

// confirm asks before mutating anything. Non-interactive runs proceed
// without asking, matching unattended use from cron or CI.
func confirm(opts Options, prCount int) bool {
	if opts.Yes {
		return true
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return true
	}

	proceed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Rebase up to %d open pull requests?", prCount),
		Default: true,
	}
	if err := survey.AskOne(prompt, &proceed); err != nil {
		return false
	}
	return proceed
}
