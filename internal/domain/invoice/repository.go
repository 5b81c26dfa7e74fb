package invoice

import (
	"context"
	"time"

	"github.com/netbill/netbill/internal/types"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// CreateWithLineItems creates an invoice and its line items atomically
	CreateWithLineItems(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID, including line items
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update updates an existing invoice
	Update(ctx context.Context, invoice *Invoice) error

	// List retrieves invoices based on filter criteria
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)

	// Count returns the total count of invoices matching the filter
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)

	// ExistsForPeriod reports whether a non-cancelled invoice already exists
	// for the subscription and billing period
	ExistsForPeriod(ctx context.Context, subscriptionID string, periodStart, periodEnd time.Time) (bool, error)

	// NextSequence atomically increments and returns the tenant's invoice
	// sequence for the given year-month (format YYYYMM)
	NextSequence(ctx context.Context, yearMonth string) (int64, error)

	// ListOverdue retrieves PENDING invoices whose due date has passed
	ListOverdue(ctx context.Context, asOf time.Time) ([]*Invoice, error)
}
