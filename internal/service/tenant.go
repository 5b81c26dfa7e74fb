package service

import (
	"context"
	"strings"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/tenant"
	"github.com/netbill/netbill/internal/domain/user"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
)

// TenantService handles tenant registration and branding. Registration is the
// only operation that runs without tenant context: it creates the tenant, its
// owner user and the default settings inside one transaction.
type TenantService interface {
	Register(ctx context.Context, req *dto.RegisterTenantRequest) (*dto.RegisterTenantResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TenantResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.TenantResponse, error)
	UpdateBranding(ctx context.Context, req *dto.UpdateBrandingRequest) (*dto.TenantResponse, error)
}

type tenantService struct {
	ServiceParams
	settingsService SettingsService
}

func NewTenantService(params ServiceParams) TenantService {
	return &tenantService{
		ServiceParams:   params,
		settingsService: NewSettingsService(params),
	}
}

func (s *tenantService) Register(ctx context.Context, req *dto.RegisterTenantRequest) (*dto.RegisterTenantResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	t := &tenant.Tenant{
		ID:       types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		Name:     req.Name,
		Slug:     slug,
		Branding: req.Branding,
		Status:   types.StatusPublished,
	}

	// the rest of the registration runs in the new tenant's scope
	ctx = types.SetTenantID(ctx, t.ID)

	owner := &user.User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:     strings.ToLower(req.OwnerEmail),
		Name:      req.OwnerName,
		Role:      types.UserRoleOwner,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	ctx = types.SetUserID(ctx, owner.ID)
	owner.CreatedBy = owner.ID
	owner.UpdatedBy = owner.ID

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		now := owner.CreatedAt
		t.CreatedAt = now
		t.UpdatedAt = now
		if err := s.TenantRepo.Create(ctx, t); err != nil {
			return err
		}
		if err := s.UserRepo.Create(ctx, owner); err != nil {
			return err
		}
		return s.settingsService.SeedDefaults(ctx)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("tenant registered",
		"tenant_id", t.ID,
		"slug", t.Slug,
		"owner_id", owner.ID,
	)

	return &dto.RegisterTenantResponse{
		Tenant: dto.NewTenantResponse(t),
		Owner:  dto.NewUserResponse(owner),
	}, nil
}

func (s *tenantService) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	t, err := s.TenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewTenantResponse(t), nil
}

func (s *tenantService) GetBySlug(ctx context.Context, slug string) (*dto.TenantResponse, error) {
	t, err := s.TenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return dto.NewTenantResponse(t), nil
}

func (s *tenantService) UpdateBranding(ctx context.Context, req *dto.UpdateBrandingRequest) (*dto.TenantResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tenantID := types.GetTenantID(ctx)
	if tenantID == "" {
		return nil, ierr.NewError("missing tenant context").
			WithHint("Tenant context is required").
			Mark(ierr.ErrPermissionDenied)
	}

	t, err := s.TenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	t.Branding = req.Branding
	if err := s.TenantRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	return dto.NewTenantResponse(t), nil
}
