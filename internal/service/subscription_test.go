package service

import (
	"testing"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/customer"
	"github.com/netbill/netbill/internal/domain/plan"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SubscriptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  SubscriptionService
	testData struct {
		customer *customer.Customer
		plan     *plan.Plan
	}
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceSuite))
}

func (s *SubscriptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSubscriptionService(newServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *SubscriptionServiceSuite) setupTestData() {
	ctx := s.GetContext()
	stores := s.GetStores()

	s.testData.customer = &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Ravi Kumar",
		Email:     "ravi@example.com",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.CustomerRepo.Create(ctx, s.testData.customer))

	s.testData.plan = &plan.Plan{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		Name:         "Fiber 100",
		Price:        decimal.RequireFromString("49.99"),
		Currency:     "USD",
		TaxRate:      decimal.RequireFromString("18"),
		DurationDays: 30,
		IsActive:     true,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.PlanRepo.Create(ctx, s.testData.plan))
}

func (s *SubscriptionServiceSuite) createSubscription() *dto.SubscriptionResponse {
	resp, err := s.service.CreateSubscription(s.GetContext(), &dto.CreateSubscriptionRequest{
		CustomerID: s.testData.customer.ID,
		PlanID:     s.testData.plan.ID,
	})
	s.Require().NoError(err)
	return resp
}

func (s *SubscriptionServiceSuite) TestCreateSubscription() {
	startedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	resp, err := s.service.CreateSubscription(s.GetContext(), &dto.CreateSubscriptionRequest{
		CustomerID: s.testData.customer.ID,
		PlanID:     s.testData.plan.ID,
		StartedAt:  &startedAt,
	})
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive.String(), resp.SubscriptionStatus)
	s.True(resp.AutoRenew)
	s.True(resp.EndsAt.Equal(startedAt.AddDate(0, 0, 30)),
		"first period is covered by signup; billing owes the second")
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionUnknownCustomer() {
	_, err := s.service.CreateSubscription(s.GetContext(), &dto.CreateSubscriptionRequest{
		CustomerID: "cust_missing",
		PlanID:     s.testData.plan.ID,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionInactivePlan() {
	ctx := s.GetContext()
	p, err := s.GetStores().PlanRepo.Get(ctx, s.testData.plan.ID)
	s.NoError(err)
	p.IsActive = false
	s.NoError(s.GetStores().PlanRepo.Update(ctx, p))

	_, err = s.service.CreateSubscription(ctx, &dto.CreateSubscriptionRequest{
		CustomerID: s.testData.customer.ID,
		PlanID:     s.testData.plan.ID,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *SubscriptionServiceSuite) TestSuspendAndResume() {
	sub := s.createSubscription()

	suspended, err := s.service.SuspendSubscription(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusSuspended.String(), suspended.SubscriptionStatus)

	resumed, err := s.service.ResumeSubscription(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive.String(), resumed.SubscriptionStatus)
}

func (s *SubscriptionServiceSuite) TestTerminateIsTerminal() {
	sub := s.createSubscription()

	_, err := s.service.TerminateSubscription(s.GetContext(), sub.ID)
	s.NoError(err)

	_, err = s.service.ResumeSubscription(s.GetContext(), sub.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err), "terminated subscriptions never come back")
}

func (s *SubscriptionServiceSuite) TestResumeActiveRejected() {
	sub := s.createSubscription()

	_, err := s.service.ResumeSubscription(s.GetContext(), sub.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *SubscriptionServiceSuite) TestChangeAutoRenew() {
	sub := s.createSubscription()

	resp, err := s.service.ChangeAutoRenew(s.GetContext(), sub.ID, false)
	s.NoError(err)
	s.False(resp.AutoRenew)

	_, err = s.service.TerminateSubscription(s.GetContext(), sub.ID)
	s.NoError(err)

	_, err = s.service.ChangeAutoRenew(s.GetContext(), sub.ID, true)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *SubscriptionServiceSuite) TestListSubscriptionsByStatus() {
	first := s.createSubscription()
	second := s.createSubscription()
	_, err := s.service.SuspendSubscription(s.GetContext(), second.ID)
	s.NoError(err)

	filter := types.NewSubscriptionFilter()
	filter.SubscriptionStatus = []types.SubscriptionStatus{types.SubscriptionStatusActive}
	resp, err := s.service.ListSubscriptions(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal(first.ID, resp.Items[0].ID)

	ids := lo.Map(resp.Items, func(i *dto.SubscriptionResponse, _ int) string { return i.ID })
	s.NotContains(ids, second.ID)
}
