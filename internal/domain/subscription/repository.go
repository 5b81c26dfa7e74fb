package subscription

import (
	"context"
	"time"

	"github.com/netbill/netbill/internal/types"
)

// Repository defines the interface for subscription persistence operations
type Repository interface {
	// Create creates a new subscription
	Create(ctx context.Context, subscription *Subscription) error

	// Get retrieves a subscription by ID
	Get(ctx context.Context, id string) (*Subscription, error)

	// Update updates an existing subscription
	Update(ctx context.Context, subscription *Subscription) error

	// List retrieves subscriptions based on filter criteria
	List(ctx context.Context, filter *types.SubscriptionFilter) ([]*Subscription, error)

	// Count returns the total count of subscriptions matching the filter
	Count(ctx context.Context, filter *types.SubscriptionFilter) (int, error)

	// ListDue retrieves subscriptions due for billing at the given date:
	// ACTIVE, auto renew enabled, ends_at <= billingDate. An optional id set
	// restricts the selection.
	ListDue(ctx context.Context, billingDate time.Time, subscriptionIDs []string) ([]*Subscription, error)

	// CountDue returns the number of subscriptions due for billing at the
	// given date
	CountDue(ctx context.Context, billingDate time.Time) (int, error)

	// CountByPlanID returns the number of non-deleted subscriptions
	// referencing the plan
	CountByPlanID(ctx context.Context, planID string) (int, error)

	// CountActiveByCustomerID returns the number of ACTIVE subscriptions for
	// the customer
	CountActiveByCustomerID(ctx context.Context, customerID string) (int, error)
}
