package payment

import (
	"context"

	"github.com/netbill/netbill/internal/types"
)

// Repository defines the interface for payment persistence operations
type Repository interface {
	// Create creates a new payment
	Create(ctx context.Context, payment *Payment) error

	// Get retrieves a payment by ID
	Get(ctx context.Context, id string) (*Payment, error)

	// Update updates an existing payment
	Update(ctx context.Context, payment *Payment) error

	// List retrieves payments based on filter criteria
	List(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)

	// Count returns the total count of payments matching the filter
	Count(ctx context.Context, filter *types.PaymentFilter) (int, error)

	// GetByIdempotencyKey retrieves a payment by its idempotency key, nil
	// when absent
	GetByIdempotencyKey(ctx context.Context, key string) (*Payment, error)
}
