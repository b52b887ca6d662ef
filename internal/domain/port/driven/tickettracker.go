package driven

import "context"

// TicketTracker defines the driven port for the ticket system. The core
// only ever appends, never edits, so racing deliveries can at worst reorder
// history entries.
type TicketTracker interface {
	// AppendComment adds a comment to the ticket's history.
	AppendComment(ctx context.Context, ticketID uint32, text string) error
}
