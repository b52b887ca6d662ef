package github

import (
	"context"
	"fmt"
)

// HeadBranch returns the head branch name of a pull request. Used by the
// webhook adapter for deliveries whose payload does not carry the branch.
func (c *Client) HeadBranch(ctx context.Context, repoFullName string, prNumber int) (string, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return "", err
	}

	pr, resp, err := c.gh.PullRequests.Get(ctx, owner, repo, prNumber)
	if err != nil {
		return "", fmt.Errorf("fetching PR %s#%d: %w", repoFullName, prNumber, err)
	}

	logRateLimit(resp, repoFullName+"/pr", 0, 1)

	return pr.GetHead().GetRef(), nil
}
