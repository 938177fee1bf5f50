package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"rebasebot.dev/rebasebot/internal/git"
	"rebasebot.dev/rebasebot/testhelpers"
)

func TestRebase(t *testing.T) {
	ctx := context.Background()

	t.Run("rebases branch onto moved base", func(t *testing.T) {
		scene := testhelpers.NewScene(t)

		err := scene.Repo.CreateAndCheckoutBranch("feature")
		require.NoError(t, err)
		err = scene.Repo.CreateChangeAndCommit("feature change", "feature")
		require.NoError(t, err)

		err = scene.Repo.CheckoutBranch("main")
		require.NoError(t, err)
		err = scene.Repo.CreateChangeAndCommit("main update", "main")
		require.NoError(t, err)
		mainSha, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)

		err = scene.Repo.CheckoutBranch("feature")
		require.NoError(t, err)

		result, err := git.Rebase(ctx, "feature", "main")
		require.NoError(t, err)
		require.Equal(t, git.RebaseDone, result)

		// main's tip is now an ancestor of feature
		onBase, err := git.IsAncestor(ctx, mainSha, "feature")
		require.NoError(t, err)
		require.True(t, onBase)

		messages, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Equal(t, []string{"feature change", "main update", "initial"}, messages)
	})

	t.Run("rebase onto unchanged base is a no-op", func(t *testing.T) {
		scene := testhelpers.NewScene(t)

		err := scene.Repo.CreateAndCheckoutBranch("feature")
		require.NoError(t, err)
		err = scene.Repo.CreateChangeAndCommit("feature change", "feature")
		require.NoError(t, err)
		before, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)

		result, err := git.Rebase(ctx, "feature", "main")
		require.NoError(t, err)
		require.Equal(t, git.RebaseDone, result)

		after, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("conflicting rebase is aborted and leaves the branch unchanged", func(t *testing.T) {
		scene := testhelpers.NewScene(t)

		// Both sides edit the same file
		err := scene.Repo.CreateAndCheckoutBranch("feature")
		require.NoError(t, err)
		err = scene.Repo.CreateChangeAndCommit("feature version", "conflict")
		require.NoError(t, err)
		before, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)

		err = scene.Repo.CheckoutBranch("main")
		require.NoError(t, err)
		err = scene.Repo.CreateChangeAndCommit("main version", "conflict")
		require.NoError(t, err)

		err = scene.Repo.CheckoutBranch("feature")
		require.NoError(t, err)

		result, err := git.Rebase(ctx, "feature", "main")
		require.NoError(t, err)
		require.Equal(t, git.RebaseConflict, result)

		require.False(t, git.IsRebaseInProgress(ctx))

		after, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)
		require.Equal(t, before, after)
	})
}

func TestIsRebaseInProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("false in a clean repository", func(t *testing.T) {
		testhelpers.NewScene(t)
		require.False(t, git.IsRebaseInProgress(ctx))
	})
}
