package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chevah/github-hooks-server/internal/domain/model"
)

func TestFormatTicketComment(t *testing.T) {
	tests := []struct {
		name  string
		event model.Event
		want  string
	}{
		{
			"review requested",
			model.Event{Kind: model.EventReviewRequested, SenderLogin: "adiroiban", PRNumber: 42},
			"needs-review: adiroiban on PR #42",
		},
		{
			"changes requested",
			model.Event{Kind: model.EventReviewSubmitted, Verdict: model.VerdictChangesRequested, SenderLogin: "danuker", PRNumber: 7},
			"needs-changes: danuker on PR #7",
		},
		{
			"approved",
			model.Event{Kind: model.EventReviewSubmitted, Verdict: model.VerdictApproved, SenderLogin: "io7m", PRNumber: 9},
			"changes-approved: io7m on PR #9",
		},
		{
			"comment with body",
			model.Event{Kind: model.EventCommentCreated, SenderLogin: "io7m", PRNumber: 3, CommentBody: "line one\nline two"},
			"comment: io7m on PR #3\n\nline one\nline two",
		},
		{
			"comment without body",
			model.Event{Kind: model.EventCommentCreated, SenderLogin: "io7m", PRNumber: 3},
			"comment: io7m on PR #3",
		},
		{
			"comment-only review",
			model.Event{Kind: model.EventReviewSubmitted, Verdict: model.VerdictCommented, SenderLogin: "io7m", PRNumber: 3},
			"comment: io7m on PR #3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTicketComment(tt.event))
		})
	}
}

func TestFormatTicketComment_BodyIsVerbatim(t *testing.T) {
	body := "  indented, **markdown**, and trailing spaces  "
	e := model.Event{Kind: model.EventCommentCreated, SenderLogin: "x", PRNumber: 1, CommentBody: body}

	got := FormatTicketComment(e)

	assert.Equal(t, "comment: x on PR #1\n\n"+body, got)
}

func TestParseTicketComment(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		marker string
		sender string
		pr     int
		ok     bool
	}{
		{"review head", "needs-review: adiroiban on PR #42", MarkerNeedsReview, "adiroiban", 42, true},
		{"legacy marker", "approved-at: danuker on PR #7", MarkerChangesApproved, "danuker", 7, true},
		{"comment with body", "comment: io7m on PR #3\n\nthe body\nmore body", MarkerComment, "io7m", 3, true},
		{"marker without sender", "needs-review: on PR #42", "", "", 0, false},
		{"marker without pr", "needs-review: adiroiban", "", "", 0, false},
		{"non-numeric pr", "needs-review: adiroiban on PR #soon", "", "", 0, false},
		{"unknown marker", "merged: adiroiban on PR #42", "", "", 0, false},
		{"plain text", "thanks for the review", "", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marker, sender, pr, ok := ParseTicketComment(tt.text)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.marker, marker)
			assert.Equal(t, tt.sender, sender)
			assert.Equal(t, tt.pr, pr)
		})
	}
}

func TestParseTicketComment_RoundTrip(t *testing.T) {
	e := model.Event{
		Kind:        model.EventReviewSubmitted,
		Verdict:     model.VerdictChangesRequested,
		SenderLogin: "adiroiban",
		PRNumber:    42,
	}

	marker, sender, pr, ok := ParseTicketComment(FormatTicketComment(e))

	assert.True(t, ok)
	assert.Equal(t, MarkerNeedsChanges, marker)
	assert.Equal(t, "adiroiban", sender)
	assert.Equal(t, 42, pr)
}

func TestParseMarker(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		marker string
		ok     bool
	}{
		{"needs-review", "needs-review: bob on PR #1", MarkerNeedsReview, true},
		{"needs-changes", "needs-changes: bob on PR #1", MarkerNeedsChanges, true},
		{"changes-approved", "changes-approved: bob on PR #1", MarkerChangesApproved, true},
		{"comment", "comment: bob on PR #1\n\nbody", MarkerComment, true},
		{"legacy approved-at", "approved-at: bob on PR #1", MarkerChangesApproved, true},
		{"leading whitespace", "  needs-review: bob", MarkerNeedsReview, true},
		{"unknown marker", "merged: bob on PR #1", "", false},
		{"no colon", "just some text", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marker, ok := ParseMarker(tt.text)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.marker, marker)
		})
	}
}
