package dto

import (
	"time"

	"github.com/netbill/netbill/internal/domain/tenant"
	"github.com/netbill/netbill/internal/domain/user"
	"github.com/netbill/netbill/internal/types"
	"github.com/netbill/netbill/internal/validator"
)

// RegisterTenantRequest creates a tenant with its owner user in one call
type RegisterTenantRequest struct {
	Name       string         `json:"name" binding:"required" validate:"required,min=2,max=255"`
	Slug       string         `json:"slug" binding:"required" validate:"required,min=2,max=64,lowercase"`
	OwnerEmail string         `json:"owner_email" binding:"required,email" validate:"required,email"`
	OwnerName  string         `json:"owner_name" binding:"required" validate:"required,min=2,max=255"`
	Branding   types.Document `json:"branding,omitempty"`
}

func (r *RegisterTenantRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type UpdateBrandingRequest struct {
	Branding types.Document `json:"branding" binding:"required" validate:"required"`
}

func (r *UpdateBrandingRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type TenantResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	Branding  types.Document `json:"branding,omitempty"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewTenantResponse(t *tenant.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Branding:  t.Branding,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

type RegisterTenantResponse struct {
	Tenant *TenantResponse `json:"tenant"`
	Owner  *UserResponse   `json:"owner"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}
