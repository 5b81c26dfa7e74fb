package testutil

import (
	"context"

	"github.com/netbill/netbill/internal/domain/tenant"
	ierr "github.com/netbill/netbill/internal/errors"
)

// InMemoryTenantStore implements tenant.Repository
type InMemoryTenantStore struct {
	*InMemoryStore[*tenant.Tenant]
}

func NewInMemoryTenantStore() *InMemoryTenantStore {
	return &InMemoryTenantStore{
		InMemoryStore: NewInMemoryStore[*tenant.Tenant](),
	}
}

func copyTenant(t *tenant.Tenant) *tenant.Tenant {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (s *InMemoryTenantStore) Create(ctx context.Context, t *tenant.Tenant) error {
	if existing, _ := s.GetBySlug(ctx, t.Slug); existing != nil {
		return ierr.NewError("tenant slug already taken").
			WithHintf("A tenant with slug %s already exists", t.Slug).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, t.ID, copyTenant(t))
}

func (s *InMemoryTenantStore) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyTenant(t), nil
}

func (s *InMemoryTenantStore) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	tenants, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, t *tenant.Tenant, _ interface{}) bool {
		return t.Slug == slug
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, ierr.NewError("tenant not found").
			WithHintf("No tenant with slug %s", slug).
			Mark(ierr.ErrNotFound)
	}
	return copyTenant(tenants[0]), nil
}

func (s *InMemoryTenantStore) Update(ctx context.Context, t *tenant.Tenant) error {
	return s.InMemoryStore.Update(ctx, t.ID, copyTenant(t))
}

func (s *InMemoryTenantStore) List(ctx context.Context) ([]*tenant.Tenant, error) {
	return s.InMemoryStore.List(ctx, nil, nil, func(i, j *tenant.Tenant) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
}
