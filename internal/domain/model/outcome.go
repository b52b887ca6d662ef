package model

// Disposition summarizes how one event was handled.
type Disposition string

const (
	// DispositionApplied: labels reconciled and ticket comment appended.
	DispositionApplied Disposition = "applied"
	// DispositionIgnored: non-actionable event, no collaborator calls made.
	DispositionIgnored Disposition = "ignored"
	// DispositionNoTicket: labels reconciled but the branch carries no
	// ticket id, so the comment step was skipped.
	DispositionNoTicket Disposition = "no-ticket"
	// DispositionError: at least one external step failed. The invocation
	// still ran to completion; per-step errors say which side effect is
	// missing.
	DispositionError Disposition = "error"
)

// ReviewOutcome is the result of handling a single event. It exists for
// logging and the webhook response; nothing persists it.
//
// The label write and the ticket comment are independent side effects, so
// each step carries its own error. One succeeding while the other fails is
// an expected partial-failure mode, not a fatal condition.
type ReviewOutcome struct {
	Disposition Disposition
	Labels      LabelSet   // Desired label set; nil when the current set could not be read.
	Ticket      *TicketRef // nil when the branch resolved to no ticket.
	Comment     string     // Ticket comment text submitted; empty when none.
	LabelErr    error
	CommentErr  error
}
