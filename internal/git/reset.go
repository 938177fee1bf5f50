package git

import (
	"context"
	"fmt"
)

// HardReset performs a hard reset of the checked-out branch to a specific SHA
func HardReset(ctx context.Context, sha string) error {
	_, err := RunGitCommandWithContext(ctx, "reset", "--hard", sha)
	if err != nil {
		return fmt.Errorf("failed to hard reset to %s: %w", sha, err)
	}
	return nil
}
