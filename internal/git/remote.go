package git

import (
	"context"
	"fmt"

	rbterrors "rebasebot.dev/rebasebot/internal/errors"
)

// GetRemoteURL returns the configured URL for a remote.
// Returns ErrNoRemote if the remote does not exist.
func GetRemoteURL(ctx context.Context, remote string) (string, error) {
	url, err := RunGitCommandWithContext(ctx, "config", "--get", fmt.Sprintf("remote.%s.url", remote))
	if err != nil || url == "" {
		return "", fmt.Errorf("remote %s: %w", remote, rbterrors.ErrNoRemote)
	}
	return url, nil
}

// HasRemote reports whether a remote with the given name is configured
func HasRemote(ctx context.Context, remote string) bool {
	_, err := GetRemoteURL(ctx, remote)
	return err == nil
}
