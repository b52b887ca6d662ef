package model

// EventKind is the semantic classification of an inbound webhook delivery.
type EventKind string

const (
	EventReviewRequested EventKind = "review_requested"
	EventReviewSubmitted EventKind = "review_submitted"
	EventCommentCreated  EventKind = "comment_created"
	EventOther           EventKind = "other"
)

// Verdict is the state a submitted review carries.
type Verdict string

const (
	VerdictApproved         Verdict = "approved"
	VerdictChangesRequested Verdict = "changes_requested"
	VerdictCommented        Verdict = "commented"
)

// Event is the semantic representation of one webhook payload. It is built
// once per delivery by the driving adapter and never mutated afterwards.
type Event struct {
	Kind         EventKind
	Verdict      Verdict // Set only when Kind is EventReviewSubmitted.
	RepoFullName string
	PRNumber     int
	BranchName   string
	SenderLogin  string
	CommentBody  string // Set only when Kind is EventCommentCreated.
}

// Actionable reports whether the event drives the reconciliation pipeline.
// Only creation-type review signals count; edits, deletions and dismissals
// are deliberately ignored so labels never flap on retractions. An event
// missing the fields its kind requires is treated the same as an
// unrecognized kind, never as an error.
func (e Event) Actionable() bool {
	if e.PRNumber <= 0 || e.RepoFullName == "" {
		return false
	}

	switch e.Kind {
	case EventReviewRequested, EventCommentCreated:
		return true
	case EventReviewSubmitted:
		switch e.Verdict {
		case VerdictApproved, VerdictChangesRequested, VerdictCommented:
			return true
		}
		return false
	}
	return false
}
