package application

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chevah/github-hooks-server/internal/domain/model"
)

// Ticket comment markers. Every comment the reconciler appends starts with
// one of these, followed by the sender and the PR number in a fixed field
// order, so the leaderboard tooling can parse history without heuristics.
const (
	MarkerNeedsReview     = "needs-review"
	MarkerNeedsChanges    = "needs-changes"
	MarkerChangesApproved = "changes-approved"
	MarkerComment         = "comment"

	// markerApprovedAt is the historical spelling of changes-approved found
	// in ticket comments written before this convention settled. Accepted on
	// parse, never emitted.
	markerApprovedAt = "approved-at"
)

// markerAliases translates every accepted marker spelling to its canonical
// form. Legacy handling lives entirely in this table; nothing downstream
// branches on old spellings.
var markerAliases = map[string]string{
	MarkerNeedsReview:     MarkerNeedsReview,
	MarkerNeedsChanges:    MarkerNeedsChanges,
	MarkerChangesApproved: MarkerChangesApproved,
	MarkerComment:         MarkerComment,
	markerApprovedAt:      MarkerChangesApproved,
}

// eventMarker returns the marker describing an actionable event.
func eventMarker(e model.Event) string {
	switch e.Kind {
	case model.EventReviewRequested:
		return MarkerNeedsReview
	case model.EventReviewSubmitted:
		switch e.Verdict {
		case model.VerdictChangesRequested:
			return MarkerNeedsChanges
		case model.VerdictApproved:
			return MarkerChangesApproved
		}
		return MarkerComment
	}
	return MarkerComment
}

// FormatTicketComment renders the ticket history entry for an event:
//
//	<marker>: <sender> on PR #<number>
//
// For plain comments the original body follows after a blank line, verbatim
// and untruncated, so the ticket keeps full context.
func FormatTicketComment(e model.Event) string {
	head := fmt.Sprintf("%s: %s on PR #%d", eventMarker(e), e.SenderLogin, e.PRNumber)

	if e.Kind == model.EventCommentCreated && e.CommentBody != "" {
		return head + "\n\n" + e.CommentBody
	}
	return head
}

// ParseMarker extracts the canonical marker from a ticket comment produced
// by FormatTicketComment or by the conventions that preceded it. ok is
// false when the text carries no recognized marker.
func ParseMarker(text string) (marker string, ok bool) {
	head, _, found := strings.Cut(text, ":")
	if !found {
		return "", false
	}

	canonical, known := markerAliases[strings.TrimSpace(head)]
	if !known {
		return "", false
	}
	return canonical, true
}

// ParseTicketComment extracts the canonical marker, the sender and the PR
// number from a ticket comment head. ok is false unless the head carries
// all three fields in the FormatTicketComment shape; a recognized marker
// alone is not enough, because history reconstruction needs the author.
func ParseTicketComment(text string) (marker, sender string, pr int, ok bool) {
	head, _, _ := strings.Cut(text, "\n")

	marker, ok = ParseMarker(head)
	if !ok {
		return "", "", 0, false
	}

	_, rest, _ := strings.Cut(head, ":")
	sender, number, found := strings.Cut(strings.TrimSpace(rest), " on PR #")
	if !found || sender == "" {
		return "", "", 0, false
	}

	pr, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil || pr <= 0 {
		return "", "", 0, false
	}
	return marker, sender, pr, true
}
