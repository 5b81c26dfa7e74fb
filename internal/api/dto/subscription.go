package dto

import (
	"time"

	"github.com/netbill/netbill/internal/domain/subscription"
	"github.com/netbill/netbill/internal/validator"
	"github.com/samber/lo"
)

type CreateSubscriptionRequest struct {
	CustomerID string     `json:"customer_id" binding:"required" validate:"required"`
	PlanID     string     `json:"plan_id" binding:"required" validate:"required"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	AutoRenew  *bool      `json:"auto_renew,omitempty"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ChangeAutoRenewRequest struct {
	AutoRenew bool `json:"auto_renew"`
}

type SubscriptionResponse struct {
	ID                 string    `json:"id"`
	CustomerID         string    `json:"customer_id"`
	PlanID             string    `json:"plan_id"`
	SubscriptionStatus string    `json:"subscription_status"`
	AutoRenew          bool      `json:"auto_renew"`
	StartedAt          time.Time `json:"started_at"`
	EndsAt             time.Time `json:"ends_at"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewSubscriptionResponse(s *subscription.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:                 s.ID,
		CustomerID:         s.CustomerID,
		PlanID:             s.PlanID,
		SubscriptionStatus: s.SubscriptionStatus.String(),
		AutoRenew:          s.AutoRenew,
		StartedAt:          s.StartedAt,
		EndsAt:             s.EndsAt,
		Status:             string(s.Status),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

type ListSubscriptionsResponse struct {
	Items []*SubscriptionResponse `json:"items"`
	Total int                     `json:"total"`
}

func NewListSubscriptionsResponse(subs []*subscription.Subscription, total int) *ListSubscriptionsResponse {
	return &ListSubscriptionsResponse{
		Items: lo.Map(subs, func(s *subscription.Subscription, _ int) *SubscriptionResponse {
			return NewSubscriptionResponse(s)
		}),
		Total: total,
	}
}
