package testhelpers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scene sets up a temporary Git repository with an initial commit and
// changes the working directory into it for the duration of a test.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// NewScene creates a scene and registers cleanup with the test.
func NewScene(t *testing.T) *Scene {
	t.Helper()

	dir, err := os.MkdirTemp("", "rebasebot-test-")
	require.NoError(t, err)

	repo, err := NewGitRepo(dir)
	require.NoError(t, err)

	err = repo.CreateChangeAndCommit("initial", "init")
	require.NoError(t, err)

	oldDir, err := os.Getwd()
	require.NoError(t, err)

	err = os.Chdir(dir)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = os.Chdir(oldDir)
		_ = os.RemoveAll(dir)
	})

	return &Scene{Dir: dir, Repo: repo}
}

// NewSceneWithRemote creates a scene whose main branch is pushed to a
// bare "origin" remote. Returns the scene and the bare repository path.
func NewSceneWithRemote(t *testing.T) (*Scene, string) {
	t.Helper()

	scene := NewScene(t)

	bareDir, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)

	err = scene.Repo.PushBranch("origin", "main")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = os.RemoveAll(bareDir)
	})

	return scene, bareDir
}
