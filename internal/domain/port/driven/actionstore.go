package driven

import (
	"context"
	"time"

	"github.com/chevah/github-hooks-server/internal/domain/model"
)

// ActionStore defines the driven port for the activity log that backs the
// leaderboard.
type ActionStore interface {
	// Record appends one action to the log.
	Record(ctx context.Context, action model.Action) error

	// ListBetween returns the actions with start <= OccurredAt < end,
	// oldest first.
	ListBetween(ctx context.Context, start, end time.Time) ([]model.Action, error)
}
