package service

import (
	"context"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/subscription"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
)

type SubscriptionService interface {
	CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	ListSubscriptions(ctx context.Context, filter *types.SubscriptionFilter) (*dto.ListSubscriptionsResponse, error)
	SuspendSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	ResumeSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	TerminateSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	ChangeAutoRenew(ctx context.Context, id string, autoRenew bool) (*dto.SubscriptionResponse, error)
}

type subscriptionService struct {
	ServiceParams
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{ServiceParams: params}
}

// CreateSubscription enrolls a customer in a plan. The subscription starts
// ACTIVE with ends_at one plan duration past started_at, which makes it due
// for its second period on that date; the first period is considered covered
// by signup.
func (s *subscriptionService) CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	p, err := s.PlanRepo.Get(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ierr.NewError("plan is not active").
			WithHint("Cannot subscribe to an inactive plan").
			WithReportableDetails(map[string]any{"plan_id": p.ID}).
			Mark(ierr.ErrInvalidOperation)
	}

	startedAt := time.Now().UTC()
	if req.StartedAt != nil {
		startedAt = req.StartedAt.UTC()
	}
	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}

	sub := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		CustomerID:         req.CustomerID,
		PlanID:             req.PlanID,
		SubscriptionStatus: types.SubscriptionStatusActive,
		AutoRenew:          autoRenew,
		StartedAt:          startedAt,
		EndsAt:             startedAt.AddDate(0, 0, p.DurationDays),
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}

	if err := s.SubscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("subscription created",
		"subscription_id", sub.ID,
		"customer_id", sub.CustomerID,
		"plan_id", sub.PlanID,
		"ends_at", sub.EndsAt,
	)

	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubscriptionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, filter *types.SubscriptionFilter) (*dto.ListSubscriptionsResponse, error) {
	if filter == nil {
		filter = types.NewSubscriptionFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter").
			Mark(ierr.ErrValidation)
	}

	subs, err := s.SubscriptionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.SubscriptionRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewListSubscriptionsResponse(subs, total), nil
}

func (s *subscriptionService) SuspendSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	return s.transition(ctx, id, types.SubscriptionStatusSuspended)
}

func (s *subscriptionService) ResumeSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	return s.transition(ctx, id, types.SubscriptionStatusActive)
}

func (s *subscriptionService) TerminateSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	return s.transition(ctx, id, types.SubscriptionStatusTerminated)
}

func (s *subscriptionService) ChangeAutoRenew(ctx context.Context, id string, autoRenew bool) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubscriptionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.SubscriptionStatus == types.SubscriptionStatusTerminated {
		return nil, ierr.NewError("subscription is terminated").
			WithHint("Cannot change auto renew on a terminated subscription").
			Mark(ierr.ErrInvalidOperation)
	}

	sub.AutoRenew = autoRenew
	if err := s.SubscriptionRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) transition(ctx context.Context, id string, target types.SubscriptionStatus) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubscriptionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !sub.SubscriptionStatus.CanTransitionTo(target) {
		return nil, ierr.NewError("invalid subscription status transition").
			WithHintf("Cannot transition subscription from %s to %s", sub.SubscriptionStatus, target).
			WithReportableDetails(map[string]any{
				"subscription_id": id,
				"from":            sub.SubscriptionStatus,
				"to":              target,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	sub.SubscriptionStatus = target
	if err := s.SubscriptionRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("subscription status changed",
		"subscription_id", id,
		"subscription_status", target,
	)

	return dto.NewSubscriptionResponse(sub), nil
}
