package testutil

import (
	"context"
	"sync"

	"github.com/netbill/netbill/internal/domain/ticket"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
)

// InMemoryTicketStore implements ticket.Repository
type InMemoryTicketStore struct {
	*InMemoryStore[*ticket.Ticket]

	mu      sync.RWMutex
	replies map[string][]*ticket.Reply
}

func NewInMemoryTicketStore() *InMemoryTicketStore {
	return &InMemoryTicketStore{
		InMemoryStore: NewInMemoryStore[*ticket.Ticket](),
		replies:       make(map[string][]*ticket.Reply),
	}
}

func copyTicket(t *ticket.Ticket) *ticket.Ticket {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Replies = nil
	for _, r := range t.Replies {
		rc := *r
		cp.Replies = append(cp.Replies, &rc)
	}
	return &cp
}

func ticketInScope(ctx context.Context, t *ticket.Ticket) bool {
	return t.TenantID == types.GetTenantID(ctx) && t.Status != types.StatusDeleted
}

func ticketFilterFn(ctx context.Context, t *ticket.Ticket, filter interface{}) bool {
	if !ticketInScope(ctx, t) {
		return false
	}

	f, ok := filter.(*types.TicketFilter)
	if !ok || f == nil {
		return true
	}

	if f.CustomerID != "" && t.CustomerID != f.CustomerID {
		return false
	}
	if f.Search != "" && !containsFold(t.TicketNumber, f.Search) && !containsFold(t.Subject, f.Search) {
		return false
	}
	if f.AssignedTo != "" && (t.AssignedTo == nil || *t.AssignedTo != f.AssignedTo) {
		return false
	}
	if len(f.TicketStatus) > 0 && !lo.Contains(f.TicketStatus, t.TicketStatus) {
		return false
	}
	if len(f.Priority) > 0 && !lo.Contains(f.Priority, t.Priority) {
		return false
	}
	return inTimeRange(t.CreatedAt, f.TimeRangeFilter)
}

func ticketSortFn(i, j *ticket.Ticket) bool {
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryTicketStore) Create(ctx context.Context, t *ticket.Ticket) error {
	return s.InMemoryStore.Create(ctx, t.ID, copyTicket(t))
}

func (s *InMemoryTicketStore) Get(ctx context.Context, id string) (*ticket.Ticket, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ticketInScope(ctx, t) {
		return nil, ierr.NewError("ticket not found").
			WithHint("The requested ticket was not found").
			Mark(ierr.ErrNotFound)
	}

	cp := copyTicket(t)
	s.mu.RLock()
	for _, r := range s.replies[id] {
		rc := *r
		cp.Replies = append(cp.Replies, &rc)
	}
	s.mu.RUnlock()
	return cp, nil
}

func (s *InMemoryTicketStore) Update(ctx context.Context, t *ticket.Ticket) error {
	if _, err := s.Get(ctx, t.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, t.ID, copyTicket(t))
}

func (s *InMemoryTicketStore) List(ctx context.Context, filter *types.TicketFilter) ([]*ticket.Ticket, error) {
	items, err := s.InMemoryStore.List(ctx, filter, ticketFilterFn, ticketSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(t *ticket.Ticket, _ int) *ticket.Ticket {
		return copyTicket(t)
	}), nil
}

func (s *InMemoryTicketStore) Count(ctx context.Context, filter *types.TicketFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, ticketFilterFn)
}

func (s *InMemoryTicketStore) AddReply(ctx context.Context, reply *ticket.Reply) error {
	if _, err := s.Get(ctx, reply.TicketID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rc := *reply
	s.replies[reply.TicketID] = append(s.replies[reply.TicketID], &rc)
	return nil
}

func (s *InMemoryTicketStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	s.replies = make(map[string][]*ticket.Reply)
	s.mu.Unlock()
}
