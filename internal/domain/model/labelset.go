package model

import "sort"

// LabelSet is the set of labels on a pull request. The GitHub side is the
// source of truth; the core only ever computes a desired set from a fresh
// read and hands the delta back to the adapter.
type LabelSet map[string]struct{}

// NewLabelSet builds a LabelSet from the given label names.
func NewLabelSet(labels ...string) LabelSet {
	s := make(LabelSet, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

// Has reports whether the label is present.
func (s LabelSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Clone returns an independent copy of the set.
func (s LabelSet) Clone() LabelSet {
	out := make(LabelSet, len(s))
	for l := range s {
		out[l] = struct{}{}
	}
	return out
}

// Equal reports whether both sets contain exactly the same labels.
func (s LabelSet) Equal(other LabelSet) bool {
	if len(s) != len(other) {
		return false
	}
	for l := range s {
		if !other.Has(l) {
			return false
		}
	}
	return true
}

// Sorted returns the labels in lexical order, for stable logging and wire
// payloads.
func (s LabelSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
