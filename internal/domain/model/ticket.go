package model

import "strconv"

// TicketRef is a resolved Trac ticket identifier together with the branch
// name it was parsed from.
type TicketRef struct {
	ID     uint32
	Branch string
}

// ResolveTicket extracts the ticket id from a branch name. A ticket is
// present only when the branch begins with one or more ASCII digits followed
// by at least one non-digit character: "123-fix-bug" refers to ticket 123,
// "007_x" to ticket 7. Branches without a leading ticket id are a common,
// expected case (untracked feature branches), so every other shape yields
// ok == false rather than an error. The id must be positive and fit in 32
// bits.
func ResolveTicket(branch string) (ref TicketRef, ok bool) {
	digits := 0
	for digits < len(branch) && branch[digits] >= '0' && branch[digits] <= '9' {
		digits++
	}

	// No leading digits, or digits not followed by a separator.
	if digits == 0 || digits == len(branch) {
		return TicketRef{}, false
	}

	id, err := strconv.ParseUint(branch[:digits], 10, 32)
	if err != nil || id == 0 {
		return TicketRef{}, false
	}

	return TicketRef{ID: uint32(id), Branch: branch}, true
}
