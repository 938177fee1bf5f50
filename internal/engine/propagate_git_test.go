package engine_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"rebasebot.dev/rebasebot/internal/engine"
	"rebasebot.dev/rebasebot/internal/git"
	"rebasebot.dev/rebasebot/internal/github"
	"rebasebot.dev/rebasebot/internal/output"
	"rebasebot.dev/rebasebot/testhelpers"
)

// End-to-end propagation over real repositories: a stack of two branches is
// rebased level by level after main moves, and the remote ends up matching
// the local stack.

func newGitEngine(opts engine.Options) *engine.Engine {
	return engine.New(engine.NewRealRunner(), output.NewSplogWithWriter(io.Discard), opts)
}

// buildStack creates feature-a on main and feature-b on feature-a, pushes
// both, then lands a new commit on main so the stack needs rebasing.
func buildStack(t *testing.T, scene *testhelpers.Scene) {
	t.Helper()

	err := scene.Repo.CreateAndCheckoutBranch("feature-a")
	require.NoError(t, err)
	err = scene.Repo.CreateChangeAndCommit("feature a change", "a")
	require.NoError(t, err)
	err = scene.Repo.PushBranch("origin", "feature-a")
	require.NoError(t, err)

	err = scene.Repo.CreateAndCheckoutBranch("feature-b")
	require.NoError(t, err)
	err = scene.Repo.CreateChangeAndCommit("feature b change", "b")
	require.NoError(t, err)
	err = scene.Repo.PushBranch("origin", "feature-b")
	require.NoError(t, err)

	err = scene.Repo.CheckoutBranch("main")
	require.NoError(t, err)
	err = scene.Repo.CreateChangeAndCommit("main moves on", "main")
	require.NoError(t, err)
	err = scene.Repo.PushBranch("origin", "main")
	require.NoError(t, err)
}

func stackPRs() []*github.PullRequestInfo {
	return []*github.PullRequestInfo{
		{Number: 1, Title: "Add feature A", Base: "main", Head: "feature-a"},
		{Number: 2, Title: "Add feature B", Base: "feature-a", Head: "feature-b"},
	}
}

func TestPropagateOverRealRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("rebases a stack one level per pass and pushes each level", func(t *testing.T) {
		scene, _ := testhelpers.NewSceneWithRemote(t)
		buildStack(t, scene)

		summary, err := newGitEngine(engine.Options{}).Propagate(ctx, stackPRs())
		require.NoError(t, err)
		require.Equal(t, 3, summary.Passes)
		require.Equal(t, 2, summary.Pushed)
		require.Zero(t, summary.Conflicts)

		// The whole stack sits on the new main
		onMain, err := git.IsAncestor(ctx, "main", "feature-a")
		require.NoError(t, err)
		require.True(t, onMain)
		onA, err := git.IsAncestor(ctx, "feature-a", "feature-b")
		require.NoError(t, err)
		require.True(t, onA)

		// Remote matches local for both levels
		for _, branch := range []string{"feature-a", "feature-b"} {
			localSha, err := scene.Repo.GetRevision(branch)
			require.NoError(t, err)
			remoteSha, err := git.GetRemoteSha(ctx, "origin", branch)
			require.NoError(t, err)
			require.Equal(t, localSha, remoteSha)
		}

		// We started on main and end on main
		branch, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "main", branch)
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		scene, _ := testhelpers.NewSceneWithRemote(t)
		buildStack(t, scene)

		e := newGitEngine(engine.Options{})
		_, err := e.Propagate(ctx, stackPRs())
		require.NoError(t, err)

		summary, err := e.Propagate(ctx, stackPRs())
		require.NoError(t, err)
		require.Equal(t, 1, summary.Passes)
		require.Zero(t, summary.Pushed)
	})

	t.Run("conflicting level is skipped and the repository stays clean", func(t *testing.T) {
		scene, _ := testhelpers.NewSceneWithRemote(t)

		// feature-a and main both rewrite the same file
		err := scene.Repo.CreateAndCheckoutBranch("feature-a")
		require.NoError(t, err)
		err = scene.Repo.CreateChangeAndCommit("feature version", "clash")
		require.NoError(t, err)
		err = scene.Repo.PushBranch("origin", "feature-a")
		require.NoError(t, err)

		err = scene.Repo.CheckoutBranch("main")
		require.NoError(t, err)
		err = scene.Repo.CreateChangeAndCommit("main version", "clash")
		require.NoError(t, err)
		err = scene.Repo.PushBranch("origin", "main")
		require.NoError(t, err)

		beforeSha, err := scene.Repo.GetRevision("feature-a")
		require.NoError(t, err)

		prs := []*github.PullRequestInfo{
			{Number: 1, Title: "Add feature A", Base: "main", Head: "feature-a"},
		}
		summary, err := newGitEngine(engine.Options{}).Propagate(ctx, prs)
		require.NoError(t, err)
		require.Equal(t, 1, summary.Conflicts)

		require.False(t, git.IsRebaseInProgress(ctx))

		afterSha, err := scene.Repo.GetRevision("feature-a")
		require.NoError(t, err)
		require.Equal(t, beforeSha, afterSha)

		branch, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "main", branch)
	})

	t.Run("lost push race resets the local branch", func(t *testing.T) {
		scene, bareDir := testhelpers.NewSceneWithRemote(t)
		buildStack(t, scene)

		// A second clone pushes to feature-a after our last fetch
		other, err := testhelpers.CloneGitRepo(t.TempDir(), bareDir)
		require.NoError(t, err)
		err = other.CheckoutBranch("feature-a")
		require.NoError(t, err)
		err = other.CreateChangeAndCommit("concurrent change", "other")
		require.NoError(t, err)
		err = other.RunGitCommand("push", "--quiet", "origin", "feature-a")
		require.NoError(t, err)

		staleSha, err := git.GetRemoteSha(ctx, "origin", "feature-a")
		require.NoError(t, err)

		prs := []*github.PullRequestInfo{
			{Number: 1, Title: "Add feature A", Base: "main", Head: "feature-a"},
		}
		summary, err := newGitEngine(engine.Options{MaxPasses: 1}).Propagate(ctx, prs)
		require.NoError(t, err)
		require.Equal(t, 1, summary.Raced)
		require.Zero(t, summary.Pushed)

		// Local feature-a is back at the last known remote tip
		localSha, err := scene.Repo.GetRevision("feature-a")
		require.NoError(t, err)
		require.Equal(t, staleSha, localSha)
	})
}
