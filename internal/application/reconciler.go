package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/chevah/github-hooks-server/internal/domain/model"
	"github.com/chevah/github-hooks-server/internal/domain/port/driven"
)

// Reconciler interprets inbound webhook events and keeps the two external
// systems in sync: the pull request's managed labels on GitHub and the
// associated ticket's comment history. It holds no state of its own; every
// invocation recomputes the desired labels from a fresh read, so concurrent
// deliveries for the same PR degrade to last-write-wins, never to corrupted
// history.
type Reconciler struct {
	labels  driven.LabelStore
	tracker driven.TicketTracker
	actions driven.ActionStore
	logger  *slog.Logger
}

// NewReconciler creates a Reconciler with the required collaborators.
func NewReconciler(
	labels driven.LabelStore,
	tracker driven.TicketTracker,
	actions driven.ActionStore,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		labels:  labels,
		tracker: tracker,
		actions: actions,
		logger:  logger,
	}
}

// Handle runs the reconciliation pipeline for one event and reports the
// outcome. External failures are captured per step and logged with enough
// context to replay the delivery; they never propagate as a crash. The two
// side effects are independent, so a failed label write does not stop the
// ticket comment and vice versa.
func (r *Reconciler) Handle(ctx context.Context, e model.Event) model.ReviewOutcome {
	if !e.Actionable() {
		r.logger.Info("event ignored",
			"kind", e.Kind,
			"pr", e.PRNumber,
			"repo", e.RepoFullName,
		)
		return model.ReviewOutcome{Disposition: model.DispositionIgnored}
	}

	outcome := model.ReviewOutcome{}

	// Ticket linkage is optional: branches without a leading ticket id are
	// common, and label sync must happen regardless.
	var ticket *model.TicketRef
	if ref, ok := model.ResolveTicket(e.BranchName); ok {
		ticket = &ref
		outcome.Ticket = ticket
	}

	outcome.Labels, outcome.LabelErr = r.syncLabels(ctx, e)

	if ticket != nil {
		outcome.Comment, outcome.CommentErr = r.appendTicketComment(ctx, e, ticket.ID)
	}

	switch {
	case outcome.LabelErr != nil || outcome.CommentErr != nil:
		outcome.Disposition = model.DispositionError
	case ticket == nil:
		outcome.Disposition = model.DispositionNoTicket
	default:
		outcome.Disposition = model.DispositionApplied
	}

	r.recordAction(ctx, e, ticket)

	r.logger.Info("event handled",
		"kind", e.Kind,
		"pr", e.PRNumber,
		"repo", e.RepoFullName,
		"disposition", outcome.Disposition,
	)
	return outcome
}

// syncLabels reads the current label set, computes the desired one, and
// applies the delta. Writes are skipped when nothing changes to avoid
// redundant API calls.
func (r *Reconciler) syncLabels(ctx context.Context, e model.Event) (model.LabelSet, error) {
	current, err := r.labels.GetLabels(ctx, e.RepoFullName, e.PRNumber)
	if err != nil {
		r.logger.Error("label read failed",
			"kind", e.Kind,
			"repo", e.RepoFullName,
			"pr", e.PRNumber,
			"error", err,
		)
		return nil, err
	}

	next := model.NextLabels(e, current)
	if next.Equal(current) {
		return next, nil
	}

	var remove, add []string
	for _, l := range current.Sorted() {
		if !next.Has(l) {
			remove = append(remove, l)
		}
	}
	for _, l := range next.Sorted() {
		if !current.Has(l) {
			add = append(add, l)
		}
	}

	if err := r.labels.UpdateLabels(ctx, e.RepoFullName, e.PRNumber, remove, add); err != nil {
		r.logger.Error("label write failed",
			"kind", e.Kind,
			"repo", e.RepoFullName,
			"pr", e.PRNumber,
			"remove", remove,
			"add", add,
			"error", err,
		)
		return next, err
	}

	return next, nil
}

// appendTicketComment formats and submits the ticket history entry.
func (r *Reconciler) appendTicketComment(ctx context.Context, e model.Event, ticketID uint32) (string, error) {
	text := FormatTicketComment(e)

	if err := r.tracker.AppendComment(ctx, ticketID, text); err != nil {
		r.logger.Error("ticket comment failed",
			"kind", e.Kind,
			"repo", e.RepoFullName,
			"pr", e.PRNumber,
			"ticket", ticketID,
			"error", err,
		)
		return "", err
	}
	return text, nil
}

// recordAction logs the event into the activity store for leaderboard
// scoring. The log is advisory: a failed write is logged and dropped rather
// than surfacing in the outcome.
func (r *Reconciler) recordAction(ctx context.Context, e model.Event, ticket *model.TicketRef) {
	action := model.Action{
		Kind:       actionKind(e),
		Author:     e.SenderLogin,
		PRNumber:   e.PRNumber,
		OccurredAt: time.Now().UTC(),
	}
	if ticket != nil {
		action.Ticket = ticket.ID
	}

	if err := r.actions.Record(ctx, action); err != nil {
		r.logger.Warn("action record failed",
			"kind", e.Kind,
			"pr", e.PRNumber,
			"error", err,
		)
	}
}

// actionKind maps an actionable event to its scoring classification.
func actionKind(e model.Event) model.ActionKind {
	switch e.Kind {
	case model.EventReviewRequested:
		return model.ActionNeedsReview
	case model.EventReviewSubmitted:
		if e.Verdict == model.VerdictApproved || e.Verdict == model.VerdictChangesRequested {
			return model.ActionDoneReview
		}
	}
	return model.ActionComment
}
