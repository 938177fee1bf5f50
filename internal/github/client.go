// Package github provides a client for interacting with the GitHub API.
package github

import (
	"context"
)

// PullRequestInfo contains information about a pull request.
// This is a simplified struct to avoid coupling callers to the go-github library.
type PullRequestInfo struct {
	Number    int
	HTMLURL   string
	Title     string
	State     string
	Base      string
	Head      string
	UserLogin string
}

// RepositoryInfo contains information about a repository
type RepositoryInfo struct {
	Owner         string
	Name          string
	DefaultBranch string
}

// Client is an interface for GitHub API interactions
type Client interface {
	// GetRepository returns repository details, including the default branch
	GetRepository(ctx context.Context) (*RepositoryInfo, error)

	// ListOpenPullRequests returns all open pull requests, following pagination
	ListOpenPullRequests(ctx context.Context) ([]*PullRequestInfo, error)

	// GetAuthenticatedUser returns the login of the token's user
	GetAuthenticatedUser(ctx context.Context) (string, error)

	// GetOwnerRepo returns the repository owner and name
	GetOwnerRepo() (owner, repo string)
}

// ListMyOpenPullRequests lists open pull requests owned by the authenticated
// user, preserving the order the API reports them in.
func ListMyOpenPullRequests(ctx context.Context, client Client) ([]*PullRequestInfo, error) {
	user, err := client.GetAuthenticatedUser(ctx)
	if err != nil {
		return nil, err
	}

	all, err := client.ListOpenPullRequests(ctx)
	if err != nil {
		return nil, err
	}

	var mine []*PullRequestInfo
	for _, pr := range all {
		if pr.UserLogin == user {
			mine = append(mine, pr)
		}
	}

	return mine, nil
}
