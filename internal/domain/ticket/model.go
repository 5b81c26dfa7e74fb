package ticket

import (
	"github.com/netbill/netbill/internal/types"
)

// Ticket represents a customer support ticket
type Ticket struct {
	ID           string               `db:"id" json:"id"`
	CustomerID   string               `db:"customer_id" json:"customer_id"`
	TicketNumber string               `db:"ticket_number" json:"ticket_number"`
	Subject      string               `db:"subject" json:"subject"`
	Description  string               `db:"description" json:"description"`
	TicketStatus types.TicketStatus   `db:"ticket_status" json:"ticket_status"`
	Priority     types.TicketPriority `db:"priority" json:"priority"`
	AssignedTo   *string              `db:"assigned_to" json:"assigned_to,omitempty"`
	Replies      []*Reply             `db:"-" json:"replies,omitempty"`
	types.BaseModel
}

// Reply is one message on a ticket thread, authored by staff or by the
// customer through the portal
type Reply struct {
	ID         string                 `db:"id" json:"id"`
	TicketID   string                 `db:"ticket_id" json:"ticket_id"`
	AuthorID   string                 `db:"author_id" json:"author_id"`
	AuthorType types.TicketAuthorType `db:"author_type" json:"author_type"`
	Body       string                 `db:"body" json:"body"`
	types.BaseModel
}
