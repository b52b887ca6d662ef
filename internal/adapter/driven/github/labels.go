package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v82/github"

	"github.com/chevah/github-hooks-server/internal/domain/model"
)

// GetLabels returns the current label set of a pull request. Labels live on
// the underlying issue, so this goes through the Issues API. Pagination is
// handled automatically.
func (c *Client) GetLabels(ctx context.Context, repoFullName string, prNumber int) (model.LabelSet, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.ListOptions{PerPage: 100}
	labels := model.NewLabelSet()

	for {
		page, resp, err := c.gh.Issues.ListLabelsByIssue(ctx, owner, repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing labels for %s#%d (page %d): %w", repoFullName, prNumber, opts.Page, err)
		}

		logRateLimit(resp, repoFullName+"/labels", opts.Page, len(page))

		for _, l := range page {
			labels[l.GetName()] = struct{}{}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return labels, nil
}

// UpdateLabels applies a label delta to a pull request, removals first so
// the managed labels stay mutually exclusive even if a later call fails.
// Removing a label that is already gone is not an error: a racing delivery
// may have removed it first, and the desired end state holds either way.
func (c *Client) UpdateLabels(ctx context.Context, repoFullName string, prNumber int, remove, add []string) error {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return err
	}

	for _, label := range remove {
		resp, err := c.gh.Issues.RemoveLabelForIssue(ctx, owner, repo, prNumber, label)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return fmt.Errorf("removing label %q from %s#%d: %w", label, repoFullName, prNumber, err)
		}
		logRateLimit(resp, repoFullName+"/labels", 0, 1)
	}

	if len(add) > 0 {
		_, resp, err := c.gh.Issues.AddLabelsToIssue(ctx, owner, repo, prNumber, add)
		if err != nil {
			return fmt.Errorf("adding labels %v to %s#%d: %w", add, repoFullName, prNumber, err)
		}
		logRateLimit(resp, repoFullName+"/labels", 0, len(add))
	}

	return nil
}

// isNotFound reports whether the error is a GitHub 404 response.
func isNotFound(err error) bool {
	var ghErr *gh.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}
