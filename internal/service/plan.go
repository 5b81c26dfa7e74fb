package service

import (
	"context"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/plan"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
)

type PlanService interface {
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error)
	UpdatePlan(ctx context.Context, id string, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error)
	DeletePlan(ctx context.Context, id string) (*dto.DeletePlanResponse, error)
	ListPlans(ctx context.Context, filter *types.PlanFilter) (*dto.ListPlansResponse, error)
}

type planService struct {
	ServiceParams
}

func NewPlanService(params ServiceParams) PlanService {
	return &planService{ServiceParams: params}
}

func (s *planService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p := &plan.Plan{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Currency:      req.Currency,
		TaxRate:       req.TaxRate,
		DurationDays:  req.DurationDays,
		FairUsePolicy: req.FairUsePolicy,
		IsActive:      isActive,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	if err := p.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Plan validation failed").
			Mark(ierr.ErrValidation)
	}

	if err := s.PlanRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return dto.NewPlanResponse(p), nil
}

func (s *planService) GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error) {
	p, err := s.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPlanResponse(p), nil
}

// UpdatePlan edits the plan row. Price and tax changes only affect invoices
// generated after the change; existing invoices keep their captured amounts.
func (s *planService) UpdatePlan(ctx context.Context, id string, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.TaxRate != nil {
		p.TaxRate = *req.TaxRate
	}
	if req.DurationDays != nil {
		p.DurationDays = *req.DurationDays
	}
	if req.FairUsePolicy != nil {
		p.FairUsePolicy = *req.FairUsePolicy
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := p.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Plan validation failed").
			Mark(ierr.ErrValidation)
	}

	if err := s.PlanRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return dto.NewPlanResponse(p), nil
}

// DeletePlan removes an unreferenced plan. When subscriptions reference the
// plan it is deactivated instead, so historical billing stays intact.
func (s *planService) DeletePlan(ctx context.Context, id string) (*dto.DeletePlanResponse, error) {
	p, err := s.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	refs, err := s.SubscriptionRepo.CountByPlanID(ctx, id)
	if err != nil {
		return nil, err
	}

	if refs > 0 {
		p.IsActive = false
		if err := s.PlanRepo.Update(ctx, p); err != nil {
			return nil, err
		}
		s.Logger.Infow("plan deactivated instead of deleted",
			"plan_id", id,
			"subscription_refs", refs,
		)
		return &dto.DeletePlanResponse{Deactivated: true}, nil
	}

	if err := s.PlanRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.DeletePlanResponse{Deleted: true}, nil
}

func (s *planService) ListPlans(ctx context.Context, filter *types.PlanFilter) (*dto.ListPlansResponse, error) {
	if filter == nil {
		filter = types.NewPlanFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter").
			Mark(ierr.ErrValidation)
	}

	plans, err := s.PlanRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.PlanRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewListPlansResponse(plans, total), nil
}
