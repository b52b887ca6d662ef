package model

// Managed label vocabulary. The core owns these three labels exclusively and
// guarantees at most one of them is ever present on a pull request.
const (
	LabelNeedsReview  = "needs-review"
	LabelNeedsChanges = "needs-changes"
	LabelNeedsMerge   = "needs-merge"
)

// managedLabels is the fixed vocabulary, in reconciliation order.
var managedLabels = []string{LabelNeedsReview, LabelNeedsChanges, LabelNeedsMerge}

// ReviewState is the review state of a pull request as reflected by its
// managed label. Modeling it as a variant keeps "two managed labels at once"
// unrepresentable in memory; conversion to and from the string label set
// happens only at the GitHub boundary.
type ReviewState int

const (
	ReviewStateNone ReviewState = iota
	ReviewStateNeedsReview
	ReviewStateNeedsChanges
	ReviewStateNeedsMerge
)

// Label returns the managed label for the state, or "" for ReviewStateNone.
func (s ReviewState) Label() string {
	switch s {
	case ReviewStateNeedsReview:
		return LabelNeedsReview
	case ReviewStateNeedsChanges:
		return LabelNeedsChanges
	case ReviewStateNeedsMerge:
		return LabelNeedsMerge
	}
	return ""
}

// StateFromLabels derives the review state from a label set. If more than one
// managed label is present (only possible through out-of-band edits) the
// first in vocabulary order wins; reconciliation repairs the set on the next
// actionable event.
func StateFromLabels(labels LabelSet) ReviewState {
	switch {
	case labels.Has(LabelNeedsReview):
		return ReviewStateNeedsReview
	case labels.Has(LabelNeedsChanges):
		return ReviewStateNeedsChanges
	case labels.Has(LabelNeedsMerge):
		return ReviewStateNeedsMerge
	}
	return ReviewStateNone
}

// TargetState returns the managed state an actionable event drives the pull
// request toward. ok is false when the event leaves labels untouched:
// comment-only reviews and plain comments are forwarded to the ticket but
// never alter state.
func TargetState(e Event) (state ReviewState, ok bool) {
	switch e.Kind {
	case EventReviewRequested:
		return ReviewStateNeedsReview, true
	case EventReviewSubmitted:
		switch e.Verdict {
		case VerdictChangesRequested:
			return ReviewStateNeedsChanges, true
		case VerdictApproved:
			return ReviewStateNeedsMerge, true
		}
	}
	return ReviewStateNone, false
}

// NextLabels computes the desired label set for an event given the current
// one: remove every label in the managed vocabulary, then add the single
// target label. Labels outside the vocabulary are never touched. Events with
// no target state yield the current set unchanged.
func NextLabels(e Event, current LabelSet) LabelSet {
	target, ok := TargetState(e)
	if !ok {
		return current.Clone()
	}

	next := current.Clone()
	for _, l := range managedLabels {
		delete(next, l)
	}
	if label := target.Label(); label != "" {
		next[label] = struct{}{}
	}
	return next
}
