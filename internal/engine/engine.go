// Package engine implements the stacked-rebase propagation engine: deciding
// which branches are safe to touch, rebasing each eligible pull request onto
// its base, pushing with a lease guard, and repeating until a full pass over
// the stack changes nothing.
package engine

import (
	"rebasebot.dev/rebasebot/internal/output"
)

// Options configures an Engine
type Options struct {
	// Remote is the remote name branches are compared against and pushed to
	Remote string

	// MaxPasses bounds the number of propagation passes; 0 means unlimited
	MaxPasses int

	// DryRun reports what one pass would do without mutating anything
	DryRun bool
}

// Engine drives rebase propagation over a set of pull requests
type Engine struct {
	git    GitRunner
	splog  *output.Splog
	remote string

	maxPasses int
	dryRun    bool
}

// New creates an Engine
func New(runner GitRunner, splog *output.Splog, opts Options) *Engine {
	remote := opts.Remote
	if remote == "" {
		remote = "origin"
	}

	return &Engine{
		git:       runner,
		splog:     splog,
		remote:    remote,
		maxPasses: opts.MaxPasses,
		dryRun:    opts.DryRun,
	}
}

// Remote returns the remote name the engine operates against
func (e *Engine) Remote() string {
	return e.remote
}
