package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/chevah/github-hooks-server/internal/domain/model"
	"github.com/chevah/github-hooks-server/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ActionStore = (*ActionRepo)(nil)

// ActionRepo is the SQLite implementation of the ActionStore port interface.
type ActionRepo struct {
	db *DB
}

// NewActionRepo creates a new ActionRepo backed by the given DB.
func NewActionRepo(db *DB) *ActionRepo {
	return &ActionRepo{db: db}
}

// Record appends one action to the activity log.
func (r *ActionRepo) Record(ctx context.Context, action model.Action) error {
	const query = `
		INSERT INTO actions (kind, ticket, author, pr_number, occurred_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		string(action.Kind), action.Ticket, action.Author,
		action.PRNumber, action.OccurredAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record %s action for pr %d: %w", action.Kind, action.PRNumber, err)
	}

	return nil
}

// ListBetween returns the actions with start <= occurred_at < end, oldest first.
func (r *ActionRepo) ListBetween(ctx context.Context, start, end time.Time) ([]model.Action, error) {
	const query = `
		SELECT id, kind, ticket, author, pr_number, occurred_at
		FROM actions
		WHERE occurred_at >= ? AND occurred_at < ?
		ORDER BY occurred_at ASC, id ASC
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("list actions between %s and %s: %w", start, end, err)
	}
	defer rows.Close()

	var actions []model.Action
	for rows.Next() {
		var a model.Action
		var kind string
		if err := rows.Scan(&a.ID, &kind, &a.Ticket, &a.Author, &a.PRNumber, &a.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan action row: %w", err)
		}
		a.Kind = model.ActionKind(kind)
		a.OccurredAt = a.OccurredAt.UTC()
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate action rows: %w", err)
	}

	return actions, nil
}
