package model

import "time"

// ActionKind classifies a handled event for leaderboard scoring.
type ActionKind string

const (
	// ActionDoneReview: a review was completed (approved or changes requested).
	ActionDoneReview ActionKind = "done-review"
	// ActionNeedsReview: a pull request was submitted for review.
	ActionNeedsReview ActionKind = "needs-review"
	// ActionComment: a comment that changed no state.
	ActionComment ActionKind = "comment"
)

// Action is one scored entry in the activity log. Recorded per handled
// event; the leaderboard aggregates a month of them.
type Action struct {
	ID         int64
	Kind       ActionKind
	Ticket     uint32 // 0 when the branch carried no ticket id.
	Author     string
	PRNumber   int
	OccurredAt time.Time
}
