package service

import (
	"testing"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/subscription"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CustomerService
}

func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewCustomerService(newServiceParams(&s.BaseServiceTestSuite))
}

func (s *CustomerServiceSuite) createCustomer(name, email string) *dto.CustomerResponse {
	resp, err := s.service.CreateCustomer(s.GetContext(), &dto.CreateCustomerRequest{
		Name:  name,
		Email: email,
	})
	s.Require().NoError(err)
	return resp
}

func (s *CustomerServiceSuite) TestCreateAndGetCustomer() {
	created := s.createCustomer("John Walker", "john@example.com")
	s.NotEmpty(created.ID)

	got, err := s.service.GetCustomer(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal("John Walker", got.Name)
	s.Equal("john@example.com", got.Email)
}

func (s *CustomerServiceSuite) TestUpdateCustomerPartial() {
	created := s.createCustomer("John Walker", "john@example.com")

	resp, err := s.service.UpdateCustomer(s.GetContext(), created.ID, &dto.UpdateCustomerRequest{
		Phone:         lo.ToPtr("+15550100"),
		PortalEnabled: lo.ToPtr(true),
	})
	s.NoError(err)
	s.Equal("+15550100", resp.Phone)
	s.True(resp.PortalEnabled)
	s.Equal("john@example.com", resp.Email, "unset fields stay untouched")
}

func (s *CustomerServiceSuite) TestDeleteCustomer() {
	created := s.createCustomer("John Walker", "john@example.com")

	s.NoError(s.service.DeleteCustomer(s.GetContext(), created.ID))

	_, err := s.service.GetCustomer(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CustomerServiceSuite) TestDeleteCustomerBlockedByActiveSubscription() {
	ctx := s.GetContext()
	created := s.createCustomer("John Walker", "john@example.com")

	sub := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		CustomerID:         created.ID,
		PlanID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		SubscriptionStatus: types.SubscriptionStatusActive,
		AutoRenew:          true,
		StartedAt:          time.Now().UTC(),
		EndsAt:             time.Now().UTC().AddDate(0, 0, 30),
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().SubscriptionRepo.Create(ctx, sub))

	err := s.service.DeleteCustomer(ctx, created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	// terminated subscriptions no longer block deletion
	sub.SubscriptionStatus = types.SubscriptionStatusTerminated
	s.NoError(s.GetStores().SubscriptionRepo.Update(ctx, sub))
	s.NoError(s.service.DeleteCustomer(ctx, created.ID))
}

func (s *CustomerServiceSuite) TestListCustomersSearch() {
	s.createCustomer("John Walker", "john@example.com")
	s.createCustomer("Jane Cooper", "jane@example.com")

	filter := types.NewCustomerFilter()
	filter.Search = "walker"
	resp, err := s.service.ListCustomers(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal("John Walker", resp.Items[0].Name)
}

func (s *CustomerServiceSuite) TestListCustomersPortalEnabled() {
	s.createCustomer("John Walker", "john@example.com")
	enabled, err := s.service.CreateCustomer(s.GetContext(), &dto.CreateCustomerRequest{
		Name:          "Jane Cooper",
		Email:         "jane@example.com",
		PortalEnabled: true,
	})
	s.NoError(err)

	filter := types.NewCustomerFilter()
	filter.PortalEnabled = lo.ToPtr(true)
	resp, err := s.service.ListCustomers(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal(enabled.ID, resp.Items[0].ID)
}
