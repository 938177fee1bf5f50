// Package cli wires the cobra command tree for rebasebot.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rebasebot.dev/rebasebot/internal/actions/propagate"
	"rebasebot.dev/rebasebot/internal/runtime"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		yes       bool
		dryRun    bool
		autostash bool
		remote    string
		maxPasses int
		logFile   string
	)

	rootCmd := &cobra.Command{
		Use:   "rebasebot",
		Short: "Rebasebot keeps your stacked pull requests rebased onto a moving base branch",
		Long: `Rebasebot keeps your stacked pull requests rebased onto a moving base branch.

It fetches, fast-forwards the default branch, then repeatedly rebases each of
your open pull requests onto its base and force-pushes with a lease, until a
full pass changes nothing. Branches that have diverged from their remote
counterpart are left alone.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			rt, err := runtime.NewContext(ctx, runtime.Options{
				Remote:    remote,
				LogFile:   logFile,
				MaxPasses: maxPasses,
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			return propagate.Action(ctx, rt, propagate.Options{
				Yes:       yes,
				DryRun:    dryRun,
				Autostash: autostash,
			})
		},
	}

	rootCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Don't prompt for confirmation before rebasing")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report what would be rebased without changing anything")
	rootCmd.Flags().BoolVar(&autostash, "autostash", false, "Stash uncommitted changes before the run and restore them after")
	rootCmd.Flags().StringVar(&remote, "remote", "", "Remote to compare against and push to (default from repo config, then \"origin\")")
	rootCmd.Flags().IntVar(&maxPasses, "max-passes", 0, "Stop after this many passes even without reaching a fixpoint (0 = unlimited)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Also write a timestamped run log to this file (rotated)")

	return rootCmd
}
