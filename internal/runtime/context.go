// Package runtime provides a context type that holds the engine, logger and
// GitHub client for use throughout the application.
package runtime

import (
	"context"
	"fmt"

	"rebasebot.dev/rebasebot/internal/config"
	"rebasebot.dev/rebasebot/internal/engine"
	"rebasebot.dev/rebasebot/internal/git"
	"rebasebot.dev/rebasebot/internal/github"
	"rebasebot.dev/rebasebot/internal/output"
)

// Context provides access to the engine, logger and GitHub client
type Context struct {
	Engine       *engine.Engine
	Splog        *output.Splog
	GitHubClient github.Client
	RepoRoot     string
	Remote       string
	Trunk        string
}

// Options configures context construction
type Options struct {
	// Remote overrides the configured remote name
	Remote string

	// LogFile enables rotating file logging when non-empty
	LogFile string

	// MaxPasses bounds the propagation loop; 0 means unlimited
	MaxPasses int

	// DryRun makes the engine report instead of mutate
	DryRun bool
}

// NewContext discovers the repository, loads configuration and assembles the
// run context. The repository must have the resolved remote configured.
func NewContext(ctx context.Context, opts Options) (*Context, error) {
	if err := git.InitDefaultRepo(); err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to get repo root: %w", err)
	}

	splog, err := output.NewSplogWithConfig(opts.LogFile)
	if err != nil {
		return nil, err
	}

	remote := opts.Remote
	if remote == "" {
		remote, err = config.GetRemote(repoRoot)
		if err != nil {
			return nil, err
		}
	}

	remoteURL, err := git.GetRemoteURL(ctx, remote)
	if err != nil {
		return nil, err
	}

	ghClient, err := github.NewRealClient(ctx, remoteURL)
	if err != nil {
		return nil, err
	}

	maxPasses := opts.MaxPasses
	if maxPasses == 0 {
		cfg, err := config.GetRepoConfig(repoRoot)
		if err != nil {
			return nil, err
		}
		if cfg.MaxPasses != nil {
			maxPasses = *cfg.MaxPasses
		}
	}

	trunk, err := config.GetTrunk(repoRoot)
	if err != nil {
		return nil, err
	}

	eng := engine.New(engine.NewRealRunner(), splog, engine.Options{
		Remote:    remote,
		MaxPasses: maxPasses,
		DryRun:    opts.DryRun,
	})

	return &Context{
		Engine:       eng,
		Splog:        splog,
		GitHubClient: ghClient,
		RepoRoot:     repoRoot,
		Remote:       remote,
		Trunk:        trunk,
	}, nil
}

// Close releases resources held by the context
func (c *Context) Close() error {
	return c.Splog.Close()
}
