package domain

import "fmt"

// Ticket is a per-issue private channel plus its owner and number. Tickets are
// represented solely by the backing channel: closing a ticket deletes the
// channel, and a closed ticket's number is never reissued.
type Ticket struct {
	Number    int
	OwnerID   string
	ChannelID string
}

// Panel references the standing message carrying the create-ticket control.
type Panel struct {
	ChannelID string
	MessageID string
}

// FormatTicketNumber renders a ticket number zero-padded to four digits, so the
// first ticket is "0001".
func FormatTicketNumber(n int) string {
	return fmt.Sprintf("%04d", n)
}

// TicketChannelName returns the channel name for a ticket number.
func TicketChannelName(n int) string {
	return "ticket-" + FormatTicketNumber(n)
}
