package testutil

import (
	"context"
	"sort"

	"github.com/netbill/netbill/internal/domain/settings"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
)

// InMemorySettingsStore implements settings.Repository. Rows are keyed by
// (tenant, key), matching the unique constraint the SQL store relies on.
type InMemorySettingsStore struct {
	*InMemoryStore[*settings.Setting]
}

func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		InMemoryStore: NewInMemoryStore[*settings.Setting](),
	}
}

func copySetting(s *settings.Setting) *settings.Setting {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Value = make(types.Document, len(s.Value))
	for k, v := range s.Value {
		cp.Value[k] = v
	}
	return &cp
}

func settingStoreKey(tenantID, key string) string {
	return tenantID + ":" + key
}

func (s *InMemorySettingsStore) Create(ctx context.Context, setting *settings.Setting) error {
	key := settingStoreKey(setting.TenantID, setting.Key)
	if err := s.InMemoryStore.Create(ctx, key, copySetting(setting)); err != nil {
		return ierr.WithError(err).
			WithHintf("A setting with key %s already exists", setting.Key).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemorySettingsStore) GetByKey(ctx context.Context, key string) (*settings.Setting, error) {
	setting, err := s.InMemoryStore.Get(ctx, settingStoreKey(types.GetTenantID(ctx), key))
	if err != nil {
		return nil, ierr.NewErrorf("setting %s not found", key).
			WithHintf("No setting found for key %s", key).
			Mark(ierr.ErrNotFound)
	}
	return copySetting(setting), nil
}

func (s *InMemorySettingsStore) Update(ctx context.Context, setting *settings.Setting) error {
	key := settingStoreKey(types.GetTenantID(ctx), setting.Key)
	if _, err := s.InMemoryStore.Get(ctx, key); err != nil {
		return ierr.NewErrorf("setting %s not found", setting.Key).
			WithHintf("No setting found for key %s", setting.Key).
			Mark(ierr.ErrNotFound)
	}
	return s.InMemoryStore.Update(ctx, key, copySetting(setting))
}

func (s *InMemorySettingsStore) List(ctx context.Context) ([]*settings.Setting, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, st *settings.Setting, _ interface{}) bool {
		return st.TenantID == types.GetTenantID(ctx) && st.Status != types.StatusDeleted
	}, nil)
	if err != nil {
		return nil, err
	}

	out := make([]*settings.Setting, 0, len(items))
	for _, st := range items {
		out = append(out, copySetting(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
