package service

import (
	"context"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/cache"
	"github.com/netbill/netbill/internal/domain/settings"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
)

const settingsCacheTTL = 5 * time.Minute

// SettingsService manages per-tenant configuration documents. Values are
// schema validated on both read and write, so a malformed document can never
// reach billing or dispatch code.
type SettingsService interface {
	GetSetting(ctx context.Context, key string) (*dto.SettingResponse, error)
	UpdateSetting(ctx context.Context, key string, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error)
	ListSettings(ctx context.Context) ([]*dto.SettingResponse, error)

	// GetInvoiceConfig returns the typed invoice numbering configuration,
	// falling back to defaults when the tenant has no stored value
	GetInvoiceConfig(ctx context.Context) (types.InvoiceConfig, error)

	// SeedDefaults creates the default settings rows for a new tenant
	SeedDefaults(ctx context.Context) error
}

type settingsService struct {
	ServiceParams
}

func NewSettingsService(params ServiceParams) SettingsService {
	return &settingsService{ServiceParams: params}
}

func (s *settingsService) GetSetting(ctx context.Context, key string) (*dto.SettingResponse, error) {
	if !types.IsValidSettingKey(key) {
		return nil, ierr.NewError("unknown setting key").
			WithHintf("Unknown setting key: %s", key).
			Mark(ierr.ErrValidation)
	}

	setting, err := s.getOrDefault(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := types.ValidateSettingValue(key, setting.Value); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Stored value for %s failed validation", key).
			Mark(ierr.ErrValidation)
	}

	return dto.NewSettingResponse(setting), nil
}

func (s *settingsService) UpdateSetting(ctx context.Context, key string, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !types.IsValidSettingKey(key) {
		return nil, ierr.NewError("unknown setting key").
			WithHintf("Unknown setting key: %s", key).
			Mark(ierr.ErrValidation)
	}
	if err := types.ValidateSettingValue(key, req.Value); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Setting value failed schema validation").
			Mark(ierr.ErrValidation)
	}

	existing, err := s.SettingsRepo.GetByKey(ctx, key)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		existing = &settings.Setting{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTING),
			Key:       key,
			Value:     req.Value,
			BaseModel: types.GetDefaultBaseModel(ctx),
		}
		if err := s.SettingsRepo.Create(ctx, existing); err != nil {
			return nil, err
		}
	} else {
		existing.Value = req.Value
		if err := s.SettingsRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
	}

	s.Cache.Delete(ctx, s.cacheKey(ctx, key))

	s.Logger.Infow("setting updated",
		"tenant_id", types.GetTenantID(ctx),
		"key", key,
	)

	return dto.NewSettingResponse(existing), nil
}

func (s *settingsService) ListSettings(ctx context.Context) ([]*dto.SettingResponse, error) {
	stored, err := s.SettingsRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SettingResponse, 0, len(stored))
	for _, setting := range stored {
		responses = append(responses, dto.NewSettingResponse(setting))
	}
	return responses, nil
}

func (s *settingsService) GetInvoiceConfig(ctx context.Context) (types.InvoiceConfig, error) {
	key := types.SettingKeyInvoiceConfig.String()

	if cached, found := s.Cache.Get(ctx, s.cacheKey(ctx, key)); found {
		if cfg, ok := cached.(types.InvoiceConfig); ok {
			return cfg, nil
		}
	}

	setting, err := s.getOrDefault(ctx, key)
	if err != nil {
		return types.DefaultInvoiceConfig(), err
	}

	cfg := types.InvoiceConfigFromDocument(setting.Value)
	s.Cache.Set(ctx, s.cacheKey(ctx, key), cfg, settingsCacheTTL)
	return cfg, nil
}

func (s *settingsService) SeedDefaults(ctx context.Context) error {
	for key, def := range types.GetDefaultSettings() {
		setting := &settings.Setting{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTING),
			Key:       key.String(),
			Value:     def.DefaultValue,
			BaseModel: types.GetDefaultBaseModel(ctx),
		}
		if err := s.SettingsRepo.Create(ctx, setting); err != nil {
			if ierr.IsAlreadyExists(err) {
				continue
			}
			return err
		}
	}
	return nil
}

// getOrDefault returns the stored setting, or an unsaved row holding the
// built-in default when the tenant has none
func (s *settingsService) getOrDefault(ctx context.Context, key string) (*settings.Setting, error) {
	setting, err := s.SettingsRepo.GetByKey(ctx, key)
	if err == nil {
		return setting, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	def, ok := types.GetDefaultSettings()[types.SettingKey(key)]
	if !ok {
		return nil, err
	}
	return &settings.Setting{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTING),
		Key:       key,
		Value:     def.DefaultValue,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}, nil
}

func (s *settingsService) cacheKey(ctx context.Context, key string) string {
	return cache.GenerateKey(cache.PrefixSettings, types.GetTenantID(ctx), key)
}
