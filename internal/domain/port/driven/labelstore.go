package driven

import (
	"context"

	"github.com/chevah/github-hooks-server/internal/domain/model"
)

// LabelStore defines the driven port for pull request label access on
// GitHub. GitHub holds the state of record; the core always recomputes the
// desired set from a fresh GetLabels read and hands back only the delta, so
// labels outside the managed vocabulary are never touched by a write.
type LabelStore interface {
	// GetLabels returns the current label set of a pull request.
	GetLabels(ctx context.Context, repoFullName string, prNumber int) (model.LabelSet, error)

	// UpdateLabels applies a label delta, removing before adding so the
	// managed labels stay mutually exclusive even if a call fails midway.
	UpdateLabels(ctx context.Context, repoFullName string, prNumber int, remove, add []string) error
}
