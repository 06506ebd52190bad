package models

// TicketStatus is the support ticket lifecycle state.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketClosed     TicketStatus = "CLOSED"
)

// Ticket is a support request raised by or on behalf of a client.
type Ticket struct {
	TicketID    string       `db:"ticket_id"`
	ClientName  string       `db:"client_name"`
	Subject     string       `db:"subject"`
	Description string       `db:"description"`
	Status      TicketStatus `db:"status"`
	AssignedTo  string       `db:"assigned_to"`
	AuditFields
}
