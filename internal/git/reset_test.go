package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"rebasebot.dev/rebasebot/internal/git"
	"rebasebot.dev/rebasebot/testhelpers"
)

func TestHardReset(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the branch and the work tree", func(t *testing.T) {
		scene := testhelpers.NewScene(t)

		base, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)

		err = scene.Repo.CreateChangeAndCommit("discarded", "extra")
		require.NoError(t, err)

		err = git.HardReset(ctx, base)
		require.NoError(t, err)

		sha, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)
		require.Equal(t, base, sha)

		dirty, err := git.HasUncommittedChanges(ctx)
		require.NoError(t, err)
		require.False(t, dirty)
	})
}
