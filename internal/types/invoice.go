package types

import (
	"fmt"

	"github.com/samber/lo"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
	InvoiceStatusRefunded  InvoiceStatus = "REFUNDED"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusPending,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusCancelled,
		InvoiceStatusRefunded,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid invoice status: %s", s)
	}
	return nil
}

// IsTerminal reports whether the status allows no further transitions
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusCancelled || s == InvoiceStatusRefunded
}

// CanTransitionTo validates invoice status transitions. PAID is only reached
// through payment recording, never via a direct status update.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusPending || target == InvoiceStatusCancelled
	case InvoiceStatusPending:
		return target == InvoiceStatusOverdue || target == InvoiceStatusCancelled
	case InvoiceStatusOverdue:
		return target == InvoiceStatusPending || target == InvoiceStatusCancelled
	case InvoiceStatusPaid:
		return target == InvoiceStatusRefunded
	default:
		return false
	}
}

// InvoiceItemType represents the type of an invoice line item
type InvoiceItemType string

const (
	InvoiceItemTypeRecurring InvoiceItemType = "RECURRING"
	InvoiceItemTypeTax       InvoiceItemType = "TAX"
	InvoiceItemTypeOneTime   InvoiceItemType = "ONE_TIME"
)

func (t InvoiceItemType) String() string {
	return string(t)
}

func (t InvoiceItemType) Validate() error {
	allowed := []InvoiceItemType{
		InvoiceItemTypeRecurring,
		InvoiceItemTypeTax,
		InvoiceItemTypeOneTime,
	}
	if !lo.Contains(allowed, t) {
		return fmt.Errorf("invalid invoice item type: %s", t)
	}
	return nil
}

// InvoiceFilter represents filters for invoice queries
type InvoiceFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// invoice_ids restricts results to invoices with the specified IDs
	InvoiceIDs []string `json:"invoice_ids,omitempty" form:"invoice_ids"`

	// customer_id filters invoices for a specific customer
	CustomerID string `json:"customer_id,omitempty" form:"customer_id"`

	// subscription_id filters invoices generated for a specific subscription
	SubscriptionID string `json:"subscription_id,omitempty" form:"subscription_id"`

	// invoice_status filters by the current state of invoices
	InvoiceStatus []InvoiceStatus `json:"invoice_status,omitempty" form:"invoice_status"`

	// invoice_number looks up a single invoice by its generated number
	InvoiceNumber string `json:"invoice_number,omitempty" form:"invoice_number"`
}

func NewInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

func NewNoLimitInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *InvoiceFilter) Validate() error {
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
	for _, status := range f.InvoiceStatus {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *InvoiceFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

func (f *InvoiceFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

func (f *InvoiceFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
