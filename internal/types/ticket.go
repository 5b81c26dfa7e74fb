package types

import (
	"fmt"

	"github.com/samber/lo"
)

// TicketStatus represents the lifecycle state of a support ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) Validate() error {
	allowed := []TicketStatus{
		TicketStatusOpen,
		TicketStatusInProgress,
		TicketStatusResolved,
		TicketStatusClosed,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid ticket status: %s", s)
	}
	return nil
}

// CanTransitionTo validates ticket status transitions. CLOSED is terminal;
// RESOLVED tickets can be reopened.
func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	switch s {
	case TicketStatusOpen:
		return target == TicketStatusInProgress || target == TicketStatusResolved || target == TicketStatusClosed
	case TicketStatusInProgress:
		return target == TicketStatusOpen || target == TicketStatusResolved || target == TicketStatusClosed
	case TicketStatusResolved:
		return target == TicketStatusOpen || target == TicketStatusClosed
	default:
		return false
	}
}

// TicketPriority represents the urgency of a support ticket
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

func (p TicketPriority) String() string {
	return string(p)
}

func (p TicketPriority) Validate() error {
	allowed := []TicketPriority{
		TicketPriorityLow,
		TicketPriorityMedium,
		TicketPriorityHigh,
		TicketPriorityUrgent,
	}
	if !lo.Contains(allowed, p) {
		return fmt.Errorf("invalid ticket priority: %s", p)
	}
	return nil
}

// TicketAuthorType distinguishes staff replies from customer replies
type TicketAuthorType string

const (
	TicketAuthorTypeStaff    TicketAuthorType = "STAFF"
	TicketAuthorTypeCustomer TicketAuthorType = "CUSTOMER"
)

func (t TicketAuthorType) String() string {
	return string(t)
}

// TicketFilter represents filters for ticket queries
type TicketFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// customer_id filters tickets raised by a specific customer
	CustomerID string `json:"customer_id,omitempty" form:"customer_id"`

	// search matches against ticket number or subject
	Search string `json:"search,omitempty" form:"search"`

	// assigned_to filters tickets assigned to a staff user
	AssignedTo string `json:"assigned_to,omitempty" form:"assigned_to"`

	// ticket_status filters by lifecycle state
	TicketStatus []TicketStatus `json:"ticket_status,omitempty" form:"ticket_status"`

	// priority filters by urgency
	Priority []TicketPriority `json:"priority,omitempty" form:"priority"`
}

func NewTicketFilter() *TicketFilter {
	return &TicketFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

func (f *TicketFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return err
		}
	}
	for _, status := range f.TicketStatus {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	for _, priority := range f.Priority {
		if err := priority.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *TicketFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

func (f *TicketFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

func (f *TicketFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
