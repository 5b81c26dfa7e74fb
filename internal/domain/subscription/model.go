package subscription

import (
	"time"

	"github.com/netbill/netbill/internal/types"
)

// Subscription represents a customer's enrollment in a plan. EndsAt is the
// authoritative next-billing-due timestamp: billing selects subscriptions
// with status ACTIVE, auto renew on, and EndsAt at or before the billing
// date.
type Subscription struct {
	ID                 string                   `db:"id" json:"id"`
	CustomerID         string                   `db:"customer_id" json:"customer_id"`
	PlanID             string                   `db:"plan_id" json:"plan_id"`
	SubscriptionStatus types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	AutoRenew          bool                     `db:"auto_renew" json:"auto_renew"`
	StartedAt          time.Time                `db:"started_at" json:"started_at"`
	EndsAt             time.Time                `db:"ends_at" json:"ends_at"`
	types.BaseModel
}

// IsDue reports whether the subscription qualifies for billing at the given
// billing date
func (s *Subscription) IsDue(billingDate time.Time) bool {
	return s.SubscriptionStatus == types.SubscriptionStatusActive &&
		s.AutoRenew &&
		!s.EndsAt.After(billingDate)
}
