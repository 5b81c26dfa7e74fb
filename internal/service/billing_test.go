package service

import (
	"testing"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/customer"
	"github.com/netbill/netbill/internal/domain/plan"
	"github.com/netbill/netbill/internal/domain/subscription"
	"github.com/netbill/netbill/internal/domain/tenant"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  BillingService
	testData struct {
		tenant       *tenant.Tenant
		customer     *customer.Customer
		plan         *plan.Plan
		subscription *subscription.Subscription
		billingDate  time.Time
	}
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewBillingService(newServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *BillingServiceSuite) setupTestData() {
	ctx := s.GetContext()
	stores := s.GetStores()

	s.testData.billingDate = time.Date(2025, 1, 15, 2, 0, 0, 0, time.UTC)

	s.testData.tenant = &tenant.Tenant{
		ID:        types.GetTenantID(ctx),
		Name:      "Acme Broadband",
		Slug:      "acme",
		Status:    types.StatusPublished,
		CreatedAt: s.GetNow(),
		UpdatedAt: s.GetNow(),
	}
	s.NoError(stores.TenantRepo.Create(ctx, s.testData.tenant))

	s.testData.customer = &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "John Walker",
		Email:     "john@example.com",
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

	s.testData.subscription = &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		CustomerID:         s.testData.customer.ID,
		PlanID:             s.testData.plan.ID,
		SubscriptionStatus: types.SubscriptionStatusActive,
		AutoRenew:          true,
		StartedAt:          s.testData.billingDate.AddDate(0, 0, -30),
		EndsAt:             s.testData.billingDate,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.SubscriptionRepo.Create(ctx, s.testData.subscription))
}

func (s *BillingServiceSuite) TestRunBillingGeneratesInvoice() {
	resp, err := s.service.RunBilling(s.GetContext(), &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err)
	s.Equal(1, resp.Processed)
	s.Equal(1, resp.Successful)
	s.Equal(0, resp.Failed)
	s.NotEmpty(resp.RunID)
	s.Len(resp.Items, 1)

	item := resp.Items[0]
	s.Equal(string(types.BillingItemOutcomeInvoiced), item.Outcome)
	s.Equal("INV-202501-0001", item.InvoiceNumber)
	s.True(item.Subtotal.Equal(decimal.RequireFromString("49.99")))
	s.True(item.TaxAmount.Equal(decimal.RequireFromString("9.00")), "tax should round half up to cents")
	s.True(item.Total.Equal(decimal.RequireFromString("58.99")))
	s.True(resp.TotalAmount.Equal(decimal.RequireFromString("58.99")))

	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), item.InvoiceID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPending, inv.InvoiceStatus)
	s.Equal(s.testData.subscription.ID, inv.SubscriptionID)
	s.True(inv.PeriodStart.Equal(s.testData.billingDate))
	s.True(inv.PeriodEnd.Equal(s.testData.billingDate.AddDate(0, 0, 30)))
	s.True(inv.DueDate.Equal(s.testData.billingDate.AddDate(0, 0, types.DefaultInvoiceDueDays)))
	s.Len(inv.LineItems, 2)
	s.Equal(types.InvoiceItemTypeRecurring, inv.LineItems[0].ItemType)
	s.Equal(types.InvoiceItemTypeTax, inv.LineItems[1].ItemType)

	sub, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), s.testData.subscription.ID)
	s.NoError(err)
	s.True(sub.EndsAt.Equal(s.testData.billingDate.AddDate(0, 0, 30)), "next due date should advance to period end")
}

func (s *BillingServiceSuite) TestRunBillingPersistsRunLog() {
	resp, err := s.service.RunBilling(s.GetContext(), &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err)

	run, err := s.GetStores().BillingRunRepo.Get(s.GetContext(), resp.RunID)
	s.NoError(err)
	s.Equal(types.BillingRunStatusCompleted, run.RunStatus)
	s.Equal(1, run.Processed)
	s.Equal(1, run.Successful)
	s.Equal(0, run.Failed)
	s.NotNil(run.CompletedAt)
	s.Len(run.Items, 1)
	s.Equal(types.BillingItemOutcomeInvoiced, run.Items[0].Outcome)
	s.True(run.TotalAmount.Equal(decimal.RequireFromString("58.99")))
}

func (s *BillingServiceSuite) TestRunBillingSkipsExistingPeriod() {
	ctx := s.GetContext()

	first, err := s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err)
	s.Equal(1, first.Successful)

	// simulate a crash after invoicing but before advancing the
	// subscription's due date, then re-run
	sub, err := s.GetStores().SubscriptionRepo.Get(ctx, s.testData.subscription.ID)
	s.NoError(err)
	sub.EndsAt = s.testData.billingDate
	s.NoError(s.GetStores().SubscriptionRepo.Update(ctx, sub))

	second, err := s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err)
	s.Equal(1, second.Processed)
	s.Equal(0, second.Successful)
	s.Equal(string(types.BillingItemOutcomeSkipped), second.Items[0].Outcome)

	count, err := s.GetStores().InvoiceRepo.Count(ctx, types.NewInvoiceFilter())
	s.NoError(err)
	s.Equal(1, count, "the covered period must never be invoiced twice")
}

func (s *BillingServiceSuite) TestRunBillingAlreadyBilledNotDue() {
	ctx := s.GetContext()

	_, err := s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err)

	// the due date advanced, so the same billing date selects nothing
	resp, err := s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err)
	s.Equal(0, resp.Processed)
}

func (s *BillingServiceSuite) TestRunBillingDryRun() {
	ctx := s.GetContext()

	resp, err := s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
		DryRun:      true,
	})
	s.NoError(err)
	s.True(resp.DryRun)
	s.Empty(resp.RunID)
	s.Equal(1, resp.Successful)
	s.True(resp.TotalAmount.Equal(decimal.RequireFromString("58.99")))

	count, err := s.GetStores().InvoiceRepo.Count(ctx, types.NewInvoiceFilter())
	s.NoError(err)
	s.Equal(0, count, "dry run must not create invoices")

	runs, err := s.GetStores().BillingRunRepo.List(ctx, types.NewBillingRunFilter())
	s.NoError(err)
	s.Empty(runs, "dry run must not persist a run log")

	sub, err := s.GetStores().SubscriptionRepo.Get(ctx, s.testData.subscription.ID)
	s.NoError(err)
	s.True(sub.EndsAt.Equal(s.testData.billingDate), "dry run must not advance subscriptions")
}

func (s *BillingServiceSuite) TestRunBillingContinuesPastFailures() {
	ctx := s.GetContext()
	stores := s.GetStores()

	broken := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		CustomerID:         s.testData.customer.ID,
		PlanID:             "plan_does_not_exist",
		SubscriptionStatus: types.SubscriptionStatusActive,
		AutoRenew:          true,
		StartedAt:          s.testData.billingDate.AddDate(0, 0, -30),
		EndsAt:             s.testData.billingDate.Add(-time.Hour),
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.SubscriptionRepo.Create(ctx, broken))

	resp, err := s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err, "one bad subscription must not abort the run")
	s.Equal(2, resp.Processed)
	s.Equal(1, resp.Successful)
	s.Equal(1, resp.Failed)

	var failed *dto.BillingItemResult
	for _, item := range resp.Items {
		if item.SubscriptionID == broken.ID {
			failed = item
		}
	}
	s.Require().NotNil(failed)
	s.Equal(string(types.BillingItemOutcomeFailed), failed.Outcome)
	s.Contains(failed.Error, "plan lookup failed")
}

func (s *BillingServiceSuite) TestRunBillingSequencePerMonth() {
	ctx := s.GetContext()
	stores := s.GetStores()

	second := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		CustomerID:         s.testData.customer.ID,
		PlanID:             s.testData.plan.ID,
		SubscriptionStatus: types.SubscriptionStatusActive,
		AutoRenew:          true,
		StartedAt:          s.testData.billingDate.AddDate(0, 0, -30),
		EndsAt:             s.testData.billingDate.Add(-time.Hour),
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.SubscriptionRepo.Create(ctx, second))

	resp, err := s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err)
	s.Equal(2, resp.Successful)

	numbers := map[string]bool{}
	for _, item := range resp.Items {
		numbers[item.InvoiceNumber] = true
	}
	s.True(numbers["INV-202501-0001"])
	s.True(numbers["INV-202501-0002"])
}

func (s *BillingServiceSuite) TestRunBillingTargetsSubscriptionIDs() {
	ctx := s.GetContext()
	stores := s.GetStores()

	other := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		CustomerID:         s.testData.customer.ID,
		PlanID:             s.testData.plan.ID,
		SubscriptionStatus: types.SubscriptionStatusActive,
		AutoRenew:          true,
		StartedAt:          s.testData.billingDate.AddDate(0, 0, -30),
		EndsAt:             s.testData.billingDate,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.SubscriptionRepo.Create(ctx, other))

	resp, err := s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate:     &s.testData.billingDate,
		SubscriptionIDs: []string{other.ID},
	})
	s.NoError(err)
	s.Equal(1, resp.Processed)
	s.Equal(other.ID, resp.Items[0].SubscriptionID)
}

func (s *BillingServiceSuite) TestRunBillingSkipsSuspendedAndNonRenewing() {
	ctx := s.GetContext()
	stores := s.GetStores()

	sub, err := stores.SubscriptionRepo.Get(ctx, s.testData.subscription.ID)
	s.NoError(err)
	sub.SubscriptionStatus = types.SubscriptionStatusSuspended
	s.NoError(stores.SubscriptionRepo.Update(ctx, sub))

	resp, err := s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err)
	s.Equal(0, resp.Processed)

	sub.SubscriptionStatus = types.SubscriptionStatusActive
	sub.AutoRenew = false
	s.NoError(stores.SubscriptionRepo.Update(ctx, sub))

	resp, err = s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err)
	s.Equal(0, resp.Processed)
}

func (s *BillingServiceSuite) TestPreviewBilling() {
	resp, err := s.service.PreviewBilling(s.GetContext(), &s.testData.billingDate)
	s.NoError(err)
	s.Equal(1, resp.Count)
	s.True(resp.TotalAmount.Equal(decimal.RequireFromString("58.99")))

	count, err := s.GetStores().InvoiceRepo.Count(s.GetContext(), types.NewInvoiceFilter())
	s.NoError(err)
	s.Equal(0, count)
}

func (s *BillingServiceSuite) TestGetBillingStatus() {
	ctx := s.GetContext()

	status, err := s.service.GetBillingStatus(ctx)
	s.NoError(err)
	s.Equal(types.BillingStatusPending, status.Status)
	s.Equal(1, status.PendingSubscriptions)
	s.Nil(status.LastBillingRun)

	_, err = s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err)

	status, err = s.service.GetBillingStatus(ctx)
	s.NoError(err)
	s.Equal(types.BillingStatusUpToDate, status.Status)
	s.Equal(0, status.PendingSubscriptions)
	s.NotNil(status.LastBillingRun)
	s.Equal(1, status.LastBillingRun.Successful)
}

func (s *BillingServiceSuite) TestListBillingRuns() {
	ctx := s.GetContext()

	_, err := s.service.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: &s.testData.billingDate,
	})
	s.NoError(err)

	resp, err := s.service.ListBillingRuns(ctx, types.NewBillingRunFilter())
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(types.BillingRunStatusCompleted.String(), resp.Items[0].RunStatus)
}
