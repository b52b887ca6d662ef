package httphandler

import (
	gh "github.com/google/go-github/v82/github"

	"github.com/chevah/github-hooks-server/internal/domain/model"
)

// MapWebHook converts a parsed go-github webhook event into the semantic
// Event the reconciler consumes. Only creation-type review signals map to
// actionable kinds; everything else, including payloads go-github parsed
// into a type this switch does not know, becomes EventOther and ends up
// ignored.
//
// Issue comment payloads carry no head branch; the webhook handler fills
// BranchName in afterwards from the PR itself.
func MapWebHook(event any) model.Event {
	switch e := event.(type) {
	case *gh.PullRequestEvent:
		if e.GetAction() != "review_requested" {
			return model.Event{Kind: model.EventOther}
		}
		return model.Event{
			Kind:         model.EventReviewRequested,
			RepoFullName: e.GetRepo().GetFullName(),
			PRNumber:     e.GetPullRequest().GetNumber(),
			BranchName:   e.GetPullRequest().GetHead().GetRef(),
			SenderLogin:  e.GetSender().GetLogin(),
		}

	case *gh.PullRequestReviewEvent:
		if e.GetAction() != "submitted" {
			return model.Event{Kind: model.EventOther}
		}
		return model.Event{
			Kind:         model.EventReviewSubmitted,
			Verdict:      mapVerdict(e.GetReview().GetState()),
			RepoFullName: e.GetRepo().GetFullName(),
			PRNumber:     e.GetPullRequest().GetNumber(),
			BranchName:   e.GetPullRequest().GetHead().GetRef(),
			SenderLogin:  e.GetSender().GetLogin(),
		}

	case *gh.IssueCommentEvent:
		if e.GetAction() != "created" || !e.GetIssue().IsPullRequest() {
			return model.Event{Kind: model.EventOther}
		}
		return model.Event{
			Kind:         model.EventCommentCreated,
			RepoFullName: e.GetRepo().GetFullName(),
			PRNumber:     e.GetIssue().GetNumber(),
			SenderLogin:  e.GetSender().GetLogin(),
			CommentBody:  e.GetComment().GetBody(),
		}
	}

	return model.Event{Kind: model.EventOther}
}

// mapVerdict converts a GitHub review state string to a Verdict. Unknown
// states yield the zero Verdict, which classification treats as malformed.
func mapVerdict(state string) model.Verdict {
	switch state {
	case "approved":
		return model.VerdictApproved
	case "changes_requested":
		return model.VerdictChangesRequested
	case "commented":
		return model.VerdictCommented
	}
	return ""
}
