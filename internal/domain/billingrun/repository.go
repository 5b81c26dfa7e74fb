package billingrun

import (
	"context"

	"github.com/netbill/netbill/internal/types"
)

// Repository defines the interface for billing run persistence operations
type Repository interface {
	// Create creates a new billing run record
	Create(ctx context.Context, run *BillingRun) error

	// Get retrieves a billing run by ID
	Get(ctx context.Context, id string) (*BillingRun, error)

	// Update updates a billing run (counters, status, completion time)
	Update(ctx context.Context, run *BillingRun) error

	// List retrieves billing runs based on filter criteria
	List(ctx context.Context, filter *types.BillingRunFilter) ([]*BillingRun, error)

	// GetLatestCompleted returns the most recent completed non-dry run, nil
	// when the tenant has never billed
	GetLatestCompleted(ctx context.Context) (*BillingRun, error)
}
