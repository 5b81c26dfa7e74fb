package service

import (
	"testing"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/customer"
	"github.com/netbill/netbill/internal/domain/subscription"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PlanServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PlanService
}

func TestPlanService(t *testing.T) {
	suite.Run(t, new(PlanServiceSuite))
}

func (s *PlanServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPlanService(newServiceParams(&s.BaseServiceTestSuite))
}

func (s *PlanServiceSuite) createPlan() *dto.PlanResponse {
	resp, err := s.service.CreatePlan(s.GetContext(), &dto.CreatePlanRequest{
		Name:         "Fiber 100",
		Price:        decimal.RequireFromString("49.99"),
		Currency:     "USD",
		TaxRate:      decimal.RequireFromString("18"),
		DurationDays: 30,
	})
	s.Require().NoError(err)
	return resp
}

func (s *PlanServiceSuite) TestCreatePlan() {
	resp := s.createPlan()
	s.NotEmpty(resp.ID)
	s.True(resp.IsActive, "plans default to active")
	s.True(resp.Price.Equal(decimal.RequireFromString("49.99")))
}

func (s *PlanServiceSuite) TestCreatePlanRejectsNegativePrice() {
	_, err := s.service.CreatePlan(s.GetContext(), &dto.CreatePlanRequest{
		Name:         "Bad",
		Price:        decimal.RequireFromString("-1"),
		Currency:     "USD",
		DurationDays: 30,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PlanServiceSuite) TestUpdatePlan() {
	created := s.createPlan()

	newPrice := decimal.RequireFromString("59.99")
	resp, err := s.service.UpdatePlan(s.GetContext(), created.ID, &dto.UpdatePlanRequest{
		Price: &newPrice,
	})
	s.NoError(err)
	s.True(resp.Price.Equal(newPrice))
	s.Equal(created.Name, resp.Name, "unset fields stay untouched")
}

func (s *PlanServiceSuite) TestDeletePlanWithoutReferences() {
	created := s.createPlan()

	resp, err := s.service.DeletePlan(s.GetContext(), created.ID)
	s.NoError(err)
	s.True(resp.Deleted)
	s.False(resp.Deactivated)

	_, err = s.service.GetPlan(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PlanServiceSuite) TestDeletePlanWithSubscriptionsDeactivates() {
	ctx := s.GetContext()
	created := s.createPlan()

	cust := &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Mia Flores",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(ctx, cust))
	s.NoError(s.GetStores().SubscriptionRepo.Create(ctx, &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		CustomerID:         cust.ID,
		PlanID:             created.ID,
		SubscriptionStatus: types.SubscriptionStatusActive,
		AutoRenew:          true,
		StartedAt:          time.Now().UTC(),
		EndsAt:             time.Now().UTC().AddDate(0, 0, 30),
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}))

	resp, err := s.service.DeletePlan(ctx, created.ID)
	s.NoError(err)
	s.False(resp.Deleted)
	s.True(resp.Deactivated, "referenced plans deactivate so billing history survives")

	p, err := s.service.GetPlan(ctx, created.ID)
	s.NoError(err)
	s.False(p.IsActive)
}

func (s *PlanServiceSuite) TestListPlansActiveOnly() {
	active := s.createPlan()
	inactive, err := s.service.CreatePlan(s.GetContext(), &dto.CreatePlanRequest{
		Name:         "Legacy DSL",
		Price:        decimal.RequireFromString("19.99"),
		Currency:     "USD",
		DurationDays: 30,
		IsActive:     lo.ToPtr(false),
	})
	s.NoError(err)

	filter := types.NewPlanFilter()
	filter.IsActive = lo.ToPtr(true)
	resp, err := s.service.ListPlans(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal(active.ID, resp.Items[0].ID)
	s.NotEqual(inactive.ID, resp.Items[0].ID)
}
