package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/netbill/netbill/internal/domain/invoice"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
)

// InMemoryInvoiceStore implements invoice.Repository, including the
// per-tenant monthly sequence counter.
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]

	seqMu     sync.Mutex
	sequences map[string]int64
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
		sequences:     make(map[string]int64),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	cp := *inv
	cp.LineItems = make([]*invoice.LineItem, len(inv.LineItems))
	for i, li := range inv.LineItems {
		item := *li
		cp.LineItems[i] = &item
	}
	return &cp
}

func invoiceInScope(ctx context.Context, inv *invoice.Invoice) bool {
	return inv.TenantID == types.GetTenantID(ctx) && inv.Status != types.StatusDeleted
}

func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
	if !invoiceInScope(ctx, inv) {
		return false
	}

	f, ok := filter.(*types.InvoiceFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.InvoiceIDs) > 0 && !lo.Contains(f.InvoiceIDs, inv.ID) {
		return false
	}
	if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
		return false
	}
	if f.SubscriptionID != "" && inv.SubscriptionID != f.SubscriptionID {
		return false
	}
	if len(f.InvoiceStatus) > 0 && !lo.Contains(f.InvoiceStatus, inv.InvoiceStatus) {
		return false
	}
	if f.InvoiceNumber != "" && inv.InvoiceNumber != f.InvoiceNumber {
		return false
	}
	return inTimeRange(inv.CreatedAt, f.TimeRangeFilter)
}

func (s *InMemoryInvoiceStore) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	exists, err := s.ExistsForPeriod(ctx, inv.SubscriptionID, inv.PeriodStart, inv.PeriodEnd)
	if err != nil {
		return err
	}
	if exists {
		return ierr.NewError("invoice already exists for billing period").
			WithHint("An invoice has already been generated for this period").
			WithReportableDetails(map[string]any{
				"subscription_id": inv.SubscriptionID,
				"period_start":    inv.PeriodStart,
				"period_end":      inv.PeriodEnd,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoiceInScope(ctx, inv) {
		return nil, ierr.NewError("invoice not found").
			WithHint("The requested invoice was not found").
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	existing, err := s.Get(ctx, inv.ID)
	if err != nil {
		return err
	}
	updated := copyInvoice(inv)
	if len(updated.LineItems) == 0 {
		updated.LineItems = existing.LineItems
	}
	return s.InMemoryStore.Update(ctx, inv.ID, updated)
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	items, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, func(i, j *invoice.Invoice) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func (s *InMemoryInvoiceStore) ExistsForPeriod(ctx context.Context, subscriptionID string, periodStart, periodEnd time.Time) (bool, error) {
	matches, err := s.InMemoryStore.Count(ctx, nil, func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return invoiceInScope(ctx, inv) &&
			inv.SubscriptionID == subscriptionID &&
			inv.PeriodStart.Equal(periodStart) &&
			inv.PeriodEnd.Equal(periodEnd) &&
			inv.InvoiceStatus != types.InvoiceStatusCancelled
	})
	if err != nil {
		return false, err
	}
	return matches > 0, nil
}

func (s *InMemoryInvoiceStore) NextSequence(ctx context.Context, yearMonth string) (int64, error) {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()

	key := types.GetTenantID(ctx) + ":" + yearMonth
	s.sequences[key]++
	return s.sequences[key], nil
}

func (s *InMemoryInvoiceStore) ListOverdue(ctx context.Context, asOf time.Time) ([]*invoice.Invoice, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return invoiceInScope(ctx, inv) &&
			inv.InvoiceStatus == types.InvoiceStatusPending &&
			inv.DueDate.Before(asOf)
	}, func(i, j *invoice.Invoice) bool {
		return i.DueDate.Before(j.DueDate)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

// Clear resets invoices and sequence counters
func (s *InMemoryInvoiceStore) Clear() {
	s.seqMu.Lock()
	s.sequences = make(map[string]int64)
	s.seqMu.Unlock()
	s.InMemoryStore.Clear()
}
