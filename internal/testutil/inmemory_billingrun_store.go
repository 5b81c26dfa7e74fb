package testutil

import (
	"context"

	"github.com/netbill/netbill/internal/domain/billingrun"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
)

// InMemoryBillingRunStore implements billingrun.Repository
type InMemoryBillingRunStore struct {
	*InMemoryStore[*billingrun.BillingRun]
}

func NewInMemoryBillingRunStore() *InMemoryBillingRunStore {
	return &InMemoryBillingRunStore{
		InMemoryStore: NewInMemoryStore[*billingrun.BillingRun](),
	}
}

func copyBillingRun(r *billingrun.BillingRun) *billingrun.BillingRun {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Items = append(billingrun.RunItems{}, r.Items...)
	return &cp
}

func billingRunInScope(ctx context.Context, r *billingrun.BillingRun) bool {
	return r.TenantID == types.GetTenantID(ctx) && r.Status != types.StatusDeleted
}

func billingRunFilterFn(ctx context.Context, r *billingrun.BillingRun, filter interface{}) bool {
	if !billingRunInScope(ctx, r) {
		return false
	}

	f, ok := filter.(*types.BillingRunFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.RunStatus) > 0 && !lo.Contains(f.RunStatus, r.RunStatus) {
		return false
	}
	if f.DryRun != nil && r.DryRun != *f.DryRun {
		return false
	}
	return inTimeRange(r.CreatedAt, f.TimeRangeFilter)
}

func (s *InMemoryBillingRunStore) Create(ctx context.Context, r *billingrun.BillingRun) error {
	return s.InMemoryStore.Create(ctx, r.ID, copyBillingRun(r))
}

func (s *InMemoryBillingRunStore) Get(ctx context.Context, id string) (*billingrun.BillingRun, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !billingRunInScope(ctx, r) {
		return nil, ierr.NewError("billing run not found").
			WithHint("The requested billing run was not found").
			Mark(ierr.ErrNotFound)
	}
	return copyBillingRun(r), nil
}

func (s *InMemoryBillingRunStore) Update(ctx context.Context, r *billingrun.BillingRun) error {
	if _, err := s.Get(ctx, r.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, r.ID, copyBillingRun(r))
}

func (s *InMemoryBillingRunStore) List(ctx context.Context, filter *types.BillingRunFilter) ([]*billingrun.BillingRun, error) {
	items, err := s.InMemoryStore.List(ctx, filter, billingRunFilterFn, func(i, j *billingrun.BillingRun) bool {
		return i.StartedAt.After(j.StartedAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(r *billingrun.BillingRun, _ int) *billingrun.BillingRun {
		return copyBillingRun(r)
	}), nil
}

func (s *InMemoryBillingRunStore) GetLatestCompleted(ctx context.Context) (*billingrun.BillingRun, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, r *billingrun.BillingRun, _ interface{}) bool {
		return billingRunInScope(ctx, r) &&
			r.RunStatus == types.BillingRunStatusCompleted &&
			!r.DryRun &&
			r.CompletedAt != nil
	}, func(i, j *billingrun.BillingRun) bool {
		return i.CompletedAt.After(*j.CompletedAt)
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return copyBillingRun(items[0]), nil
}
