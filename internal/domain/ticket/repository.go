package ticket

import (
	"context"

	"github.com/netbill/netbill/internal/types"
)

// Repository defines the interface for ticket persistence operations
type Repository interface {
	// Create creates a new ticket
	Create(ctx context.Context, ticket *Ticket) error

	// Get retrieves a ticket by ID, including replies
	Get(ctx context.Context, id string) (*Ticket, error)

	// Update updates a ticket's status, priority and assignment
	Update(ctx context.Context, ticket *Ticket) error

	// List retrieves tickets based on filter criteria
	List(ctx context.Context, filter *types.TicketFilter) ([]*Ticket, error)

	// Count returns the total count of tickets matching the filter
	Count(ctx context.Context, filter *types.TicketFilter) (int, error)

	// AddReply appends a reply to a ticket thread
	AddReply(ctx context.Context, reply *Reply) error
}
