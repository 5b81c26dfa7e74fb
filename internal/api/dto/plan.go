package dto

import (
	"time"

	"github.com/netbill/netbill/internal/domain/plan"
	"github.com/netbill/netbill/internal/types"
	"github.com/netbill/netbill/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CreatePlanRequest struct {
	Name          string          `json:"name" binding:"required" validate:"required,min=2,max=255"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Currency      string          `json:"currency" binding:"required" validate:"required,len=3,uppercase"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	DurationDays  int             `json:"duration_days" binding:"required" validate:"required,min=1,max=3650"`
	FairUsePolicy types.Document  `json:"fair_use_policy,omitempty"`
	IsActive      *bool           `json:"is_active,omitempty"`
}

func (r *CreatePlanRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type UpdatePlanRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	TaxRate       *decimal.Decimal `json:"tax_rate,omitempty"`
	DurationDays  *int             `json:"duration_days,omitempty" validate:"omitempty,min=1,max=3650"`
	FairUsePolicy *types.Document  `json:"fair_use_policy,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

func (r *UpdatePlanRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type PlanResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	DurationDays  int             `json:"duration_days"`
	FairUsePolicy types.Document  `json:"fair_use_policy,omitempty"`
	IsActive      bool            `json:"is_active"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewPlanResponse(p *plan.Plan) *PlanResponse {
	return &PlanResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Currency:      p.Currency,
		TaxRate:       p.TaxRate,
		DurationDays:  p.DurationDays,
		FairUsePolicy: p.FairUsePolicy,
		IsActive:      p.IsActive,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type ListPlansResponse struct {
	Items []*PlanResponse `json:"items"`
	Total int             `json:"total"`
}

func NewListPlansResponse(plans []*plan.Plan, total int) *ListPlansResponse {
	return &ListPlansResponse{
		Items: lo.Map(plans, func(p *plan.Plan, _ int) *PlanResponse {
			return NewPlanResponse(p)
		}),
		Total: total,
	}
}

// DeletePlanResponse reports whether the plan was removed or only
// deactivated because subscriptions still reference it
type DeletePlanResponse struct {
	Deleted     bool `json:"deleted"`
	Deactivated bool `json:"deactivated"`
}
