package dto

import (
	"time"

	"github.com/netbill/netbill/internal/domain/settings"
	"github.com/netbill/netbill/internal/types"
	"github.com/netbill/netbill/internal/validator"
)

type UpdateSettingRequest struct {
	Value types.Document `json:"value" binding:"required" validate:"required"`
}

func (r *UpdateSettingRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type SettingResponse struct {
	ID        string         `json:"id"`
	Key       string         `json:"key"`
	Value     types.Document `json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewSettingResponse(s *settings.Setting) *SettingResponse {
	return &SettingResponse{
		ID:        s.ID,
		Key:       s.Key,
		Value:     s.Value,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
