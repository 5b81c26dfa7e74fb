package dto

import (
	"time"

	"github.com/netbill/netbill/internal/domain/customer"
	"github.com/netbill/netbill/internal/types"
	"github.com/netbill/netbill/internal/validator"
	"github.com/samber/lo"
)

type CreateCustomerRequest struct {
	Name          string         `json:"name" binding:"required" validate:"required,min=2,max=255"`
	Email         string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string         `json:"phone,omitempty" validate:"omitempty,max=32"`
	Address       types.Document `json:"address,omitempty"`
	Tags          types.Tags     `json:"tags,omitempty"`
	PortalEnabled bool           `json:"portal_enabled"`
}

func (r *CreateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type UpdateCustomerRequest struct {
	Name          *string         `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email         *string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string         `json:"phone,omitempty" validate:"omitempty,max=32"`
	Address       *types.Document `json:"address,omitempty"`
	Tags          *types.Tags     `json:"tags,omitempty"`
	PortalEnabled *bool           `json:"portal_enabled,omitempty"`
}

func (r *UpdateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type CustomerResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Address       types.Document `json:"address,omitempty"`
	Tags          types.Tags     `json:"tags,omitempty"`
	PortalEnabled bool           `json:"portal_enabled"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func NewCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		Tags:          c.Tags,
		PortalEnabled: c.PortalEnabled,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type ListCustomersResponse struct {
	Items []*CustomerResponse `json:"items"`
	Total int                 `json:"total"`
}

func NewListCustomersResponse(customers []*customer.Customer, total int) *ListCustomersResponse {
	return &ListCustomersResponse{
		Items: lo.Map(customers, func(c *customer.Customer, _ int) *CustomerResponse {
			return NewCustomerResponse(c)
		}),
		Total: total,
	}
}
