package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	rbterrors "rebasebot.dev/rebasebot/internal/errors"
	"rebasebot.dev/rebasebot/internal/git"
	"rebasebot.dev/rebasebot/testhelpers"
)

func TestPushBranchWithLease(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes a rewritten branch when the lease holds", func(t *testing.T) {
		scene, _ := testhelpers.NewSceneWithRemote(t)

		err := scene.Repo.CreateAndCheckoutBranch("feature")
		require.NoError(t, err)
		err = scene.Repo.CreateChangeAndCommit("feature change", "feature")
		require.NoError(t, err)
		err = scene.Repo.PushBranch("origin", "feature")
		require.NoError(t, err)

		expectedRemoteSha, err := git.GetRemoteSha(ctx, "origin", "feature")
		require.NoError(t, err)

		// Rewrite the branch so the push is not a fast-forward
		err = scene.Repo.RunGitCommand("commit", "--amend", "-m", "feature change, amended")
		require.NoError(t, err)
		localSha, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)
		require.NotEqual(t, expectedRemoteSha, localSha)

		err = git.PushBranchWithLease(ctx, "origin", "feature", expectedRemoteSha)
		require.NoError(t, err)

		remoteSha, err := git.GetRemoteSha(ctx, "origin", "feature")
		require.NoError(t, err)
		require.Equal(t, localSha, remoteSha)
	})

	t.Run("rejects the push when the remote moved past the lease", func(t *testing.T) {
		scene, bareDir := testhelpers.NewSceneWithRemote(t)

		err := scene.Repo.CreateAndCheckoutBranch("feature")
		require.NoError(t, err)
		err = scene.Repo.CreateChangeAndCommit("feature change", "feature")
		require.NoError(t, err)
		err = scene.Repo.PushBranch("origin", "feature")
		require.NoError(t, err)

		expectedRemoteSha, err := git.GetRemoteSha(ctx, "origin", "feature")
		require.NoError(t, err)

		// A second clone pushes to feature behind our back
		other, err := testhelpers.CloneGitRepo(t.TempDir(), bareDir)
		require.NoError(t, err)
		err = other.CheckoutBranch("feature")
		require.NoError(t, err)
		err = other.CreateChangeAndCommit("concurrent change", "other")
		require.NoError(t, err)
		err = other.RunGitCommand("push", "--quiet", "origin", "feature")
		require.NoError(t, err)

		err = scene.Repo.RunGitCommand("commit", "--amend", "-m", "feature change, amended")
		require.NoError(t, err)

		err = git.PushBranchWithLease(ctx, "origin", "feature", expectedRemoteSha)
		require.ErrorIs(t, err, rbterrors.ErrStaleRemoteInfo)

		// The concurrent push survives
		remoteSha, err := other.GetRevision("feature")
		require.NoError(t, err)
		err = scene.Repo.Fetch("origin")
		require.NoError(t, err)
		fetched, err := git.GetRemoteSha(ctx, "origin", "feature")
		require.NoError(t, err)
		require.Equal(t, remoteSha, fetched)
	})
}
