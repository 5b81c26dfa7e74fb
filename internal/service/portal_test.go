package service

import (
	"context"
	"testing"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/customer"
	"github.com/netbill/netbill/internal/domain/invoice"
	"github.com/netbill/netbill/internal/domain/plan"
	"github.com/netbill/netbill/internal/domain/subscription"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PortalServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PortalService
	testData struct {
		customer *customer.Customer
		other    *customer.Customer
	}
}

func TestPortalService(t *testing.T) {
	suite.Run(t, new(PortalServiceSuite))
}

func (s *PortalServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPortalService(newServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

// portalCtx returns the suite context carrying a portal customer session
func (s *PortalServiceSuite) portalCtx() context.Context {
	return types.SetCustomerID(s.GetContext(), s.testData.customer.ID)
}

func (s *PortalServiceSuite) setupTestData() {
	ctx := s.GetContext()
	stores := s.GetStores()

	s.testData.customer = &customer.Customer{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:          "Dana Reyes",
		Email:         "dana@example.com",
		PortalEnabled: true,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.CustomerRepo.Create(ctx, s.testData.customer))

	s.testData.other = &customer.Customer{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:          "Someone Else",
		Email:         "else@example.com",
		PortalEnabled: true,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.CustomerRepo.Create(ctx, s.testData.other))

	p := &plan.Plan{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		Name:         "Fiber 100",
		Price:        decimal.RequireFromString("49.99"),
		Currency:     "USD",
		TaxRate:      decimal.Zero,
		DurationDays: 30,
		IsActive:     true,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.PlanRepo.Create(ctx, p))

	now := time.Now().UTC()
	for _, cust := range []*customer.Customer{s.testData.customer, s.testData.other} {
		s.NoError(stores.SubscriptionRepo.Create(ctx, &subscription.Subscription{
			ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
			CustomerID:         cust.ID,
			PlanID:             p.ID,
			SubscriptionStatus: types.SubscriptionStatusActive,
			AutoRenew:          true,
			StartedAt:          now,
			EndsAt:             now.AddDate(0, 0, 30),
			BaseModel:          types.GetDefaultBaseModel(ctx),
		}))

		s.NoError(stores.InvoiceRepo.CreateWithLineItems(ctx, &invoice.Invoice{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
			CustomerID:     cust.ID,
			SubscriptionID: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
			InvoiceNumber:  types.GenerateShortIDWithPrefix("NUM"),
			InvoiceStatus:  types.InvoiceStatusPending,
			Currency:       "USD",
			PeriodStart:    now.AddDate(0, 0, -30),
			PeriodEnd:      now,
			Subtotal:       decimal.RequireFromString("49.99"),
			TaxAmount:      decimal.Zero,
			Total:          decimal.RequireFromString("49.99"),
			DueDate:        now.AddDate(0, 0, 15),
			BaseModel:      types.GetDefaultBaseModel(ctx),
		}))
	}
}

func (s *PortalServiceSuite) TestGetOverview() {
	resp, err := s.service.GetOverview(s.portalCtx())
	s.NoError(err)
	s.Equal(s.testData.customer.ID, resp.Customer.ID)
	s.Equal(1, resp.UnpaidInvoices)
	s.True(resp.OutstandingBalance.Equal(decimal.RequireFromString("49.99")))
	s.Len(resp.ActiveSubscriptions, 1)
	s.Equal(0, resp.OpenTickets)
}

func (s *PortalServiceSuite) TestPortalRequiresCustomerSession() {
	_, err := s.service.GetOverview(s.GetContext())
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *PortalServiceSuite) TestOverviewRejectsDisabledPortal() {
	ctx := s.GetContext()
	cust, err := s.GetStores().CustomerRepo.Get(ctx, s.testData.customer.ID)
	s.NoError(err)
	cust.PortalEnabled = false
	s.NoError(s.GetStores().CustomerRepo.Update(ctx, cust))

	_, err = s.service.GetOverview(s.portalCtx())
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *PortalServiceSuite) TestMyInvoicesScopedToSession() {
	resp, err := s.service.MyInvoices(s.portalCtx(), nil)
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal(s.testData.customer.ID, resp.Items[0].CustomerID)
}

func (s *PortalServiceSuite) TestMyInvoicesIgnoresForeignCustomerFilter() {
	// a crafted filter naming another customer must still be overridden
	filter := types.NewInvoiceFilter()
	filter.CustomerID = s.testData.other.ID

	resp, err := s.service.MyInvoices(s.portalCtx(), filter)
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal(s.testData.customer.ID, resp.Items[0].CustomerID)
}

func (s *PortalServiceSuite) TestMySubscriptions() {
	resp, err := s.service.MySubscriptions(s.portalCtx())
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal(s.testData.customer.ID, resp.Items[0].CustomerID)
}

func (s *PortalServiceSuite) TestCreateTicketAuthorsAsSessionCustomer() {
	resp, err := s.service.CreateTicket(s.portalCtx(), &dto.PortalCreateTicketRequest{
		Subject:     "Slow speeds at night",
		Description: "Down to 5 Mbps after 8pm.",
	})
	s.NoError(err)
	s.Equal(s.testData.customer.ID, resp.CustomerID)
	s.Equal(types.TicketStatusOpen.String(), resp.TicketStatus)

	tickets, err := s.service.MyTickets(s.portalCtx(), nil)
	s.NoError(err)
	s.Equal(1, tickets.Total)
}
