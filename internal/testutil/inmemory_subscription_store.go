package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/netbill/netbill/internal/domain/subscription"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	*InMemoryStore[*subscription.Subscription]
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		InMemoryStore: NewInMemoryStore[*subscription.Subscription](),
	}
}

func copySubscription(sub *subscription.Subscription) *subscription.Subscription {
	if sub == nil {
		return nil
	}
	cp := *sub
	return &cp
}

func subscriptionInScope(ctx context.Context, sub *subscription.Subscription) bool {
	return sub.TenantID == types.GetTenantID(ctx) && sub.Status != types.StatusDeleted
}

func subscriptionFilterFn(ctx context.Context, sub *subscription.Subscription, filter interface{}) bool {
	if !subscriptionInScope(ctx, sub) {
		return false
	}

	f, ok := filter.(*types.SubscriptionFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.SubscriptionIDs) > 0 && !lo.Contains(f.SubscriptionIDs, sub.ID) {
		return false
	}
	if f.CustomerID != "" && sub.CustomerID != f.CustomerID {
		return false
	}
	if f.PlanID != "" && sub.PlanID != f.PlanID {
		return false
	}
	if len(f.SubscriptionStatus) > 0 && !lo.Contains(f.SubscriptionStatus, sub.SubscriptionStatus) {
		return false
	}
	if f.AutoRenew != nil && sub.AutoRenew != *f.AutoRenew {
		return false
	}
	return inTimeRange(sub.CreatedAt, f.TimeRangeFilter)
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	return s.InMemoryStore.Create(ctx, sub.ID, copySubscription(sub))
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !subscriptionInScope(ctx, sub) {
		return nil, ierr.NewError("subscription not found").
			WithHint("The requested subscription was not found").
			Mark(ierr.ErrNotFound)
	}
	return copySubscription(sub), nil
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	if _, err := s.Get(ctx, sub.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, sub.ID, copySubscription(sub))
}

func (s *InMemorySubscriptionStore) List(ctx context.Context, filter *types.SubscriptionFilter) ([]*subscription.Subscription, error) {
	items, err := s.InMemoryStore.List(ctx, filter, subscriptionFilterFn, func(i, j *subscription.Subscription) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(sub *subscription.Subscription, _ int) *subscription.Subscription {
		return copySubscription(sub)
	}), nil
}

func (s *InMemorySubscriptionStore) Count(ctx context.Context, filter *types.SubscriptionFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, subscriptionFilterFn)
}

func (s *InMemorySubscriptionStore) ListDue(ctx context.Context, billingDate time.Time, subscriptionIDs []string) ([]*subscription.Subscription, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, sub *subscription.Subscription, _ interface{}) bool {
		if !subscriptionInScope(ctx, sub) || !sub.IsDue(billingDate) {
			return false
		}
		return len(subscriptionIDs) == 0 || lo.Contains(subscriptionIDs, sub.ID)
	}, nil)
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].EndsAt.Equal(items[j].EndsAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].EndsAt.Before(items[j].EndsAt)
	})

	return lo.Map(items, func(sub *subscription.Subscription, _ int) *subscription.Subscription {
		return copySubscription(sub)
	}), nil
}

func (s *InMemorySubscriptionStore) CountDue(ctx context.Context, billingDate time.Time) (int, error) {
	due, err := s.ListDue(ctx, billingDate, nil)
	if err != nil {
		return 0, err
	}
	return len(due), nil
}

func (s *InMemorySubscriptionStore) CountByPlanID(ctx context.Context, planID string) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, func(ctx context.Context, sub *subscription.Subscription, _ interface{}) bool {
		return subscriptionInScope(ctx, sub) && sub.PlanID == planID
	})
}

func (s *InMemorySubscriptionStore) CountActiveByCustomerID(ctx context.Context, customerID string) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, func(ctx context.Context, sub *subscription.Subscription, _ interface{}) bool {
		return subscriptionInScope(ctx, sub) &&
			sub.CustomerID == customerID &&
			sub.SubscriptionStatus == types.SubscriptionStatusActive
	})
}
