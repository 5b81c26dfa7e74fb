package service

import (
	"testing"
	"time"

	"github.com/netbill/netbill/internal/domain/customer"
	"github.com/netbill/netbill/internal/domain/invoice"
	"github.com/netbill/netbill/internal/domain/subscription"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  ReportService
	customer *customer.Customer
}

func TestReportService(t *testing.T) {
	suite.Run(t, new(ReportServiceSuite))
}

func (s *ReportServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewReportService(newServiceParams(&s.BaseServiceTestSuite))

	ctx := s.GetContext()
	s.customer = &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Dana Reyes",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(ctx, s.customer))
}

func (s *ReportServiceSuite) seedInvoice(status types.InvoiceStatus, total string, periodStart, dueDate time.Time) {
	ctx := s.GetContext()
	amount := decimal.RequireFromString(total)
	s.NoError(s.GetStores().InvoiceRepo.CreateWithLineItems(ctx, &invoice.Invoice{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CustomerID:     s.customer.ID,
		SubscriptionID: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		InvoiceNumber:  types.GenerateShortIDWithPrefix("INV-"),
		InvoiceStatus:  status,
		Currency:       "USD",
		PeriodStart:    periodStart,
		PeriodEnd:      periodStart.AddDate(0, 0, 30),
		Subtotal:       amount,
		TaxAmount:      decimal.Zero,
		Total:          amount,
		DueDate:        dueDate,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}))
}

func (s *ReportServiceSuite) TestRevenueSummaryGroupsByMonth() {
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	s.seedInvoice(types.InvoiceStatusPaid, "50.00", jan, jan.AddDate(0, 0, 15))
	s.seedInvoice(types.InvoiceStatusPending, "30.00", jan, jan.AddDate(0, 0, 15))
	s.seedInvoice(types.InvoiceStatusPaid, "50.00", feb, feb.AddDate(0, 0, 15))
	// cancelled invoices never count
	s.seedInvoice(types.InvoiceStatusCancelled, "999.00", feb, feb.AddDate(0, 0, 15))

	resp, err := s.service.RevenueSummary(s.GetContext(), nil)
	s.NoError(err)
	s.True(resp.TotalInvoiced.Equal(decimal.RequireFromString("130.00")))
	s.True(resp.TotalCollected.Equal(decimal.RequireFromString("100.00")))

	s.Require().Len(resp.Months, 2)
	s.Equal("2025-01", resp.Months[0].Month)
	s.True(resp.Months[0].Invoiced.Equal(decimal.RequireFromString("80.00")))
	s.True(resp.Months[0].Collected.Equal(decimal.RequireFromString("50.00")))
	s.Equal(2, resp.Months[0].Invoices)
	s.Equal("2025-02", resp.Months[1].Month)
}

func (s *ReportServiceSuite) TestOutstandingAgingBuckets() {
	now := time.Now().UTC()

	s.seedInvoice(types.InvoiceStatusPending, "10.00", now.AddDate(0, 0, -30), now.AddDate(0, 0, 10))
	s.seedInvoice(types.InvoiceStatusOverdue, "20.00", now.AddDate(0, 0, -45), now.AddDate(0, 0, -15))
	s.seedInvoice(types.InvoiceStatusOverdue, "40.00", now.AddDate(0, 0, -150), now.AddDate(0, 0, -120))
	// paid invoices are not outstanding
	s.seedInvoice(types.InvoiceStatusPaid, "99.00", now.AddDate(0, 0, -30), now.AddDate(0, 0, -1))

	resp, err := s.service.Outstanding(s.GetContext())
	s.NoError(err)
	s.Equal(3, resp.InvoiceCount)
	s.True(resp.TotalOutstanding.Equal(decimal.RequireFromString("70.00")))

	byLabel := map[string]decimal.Decimal{}
	for _, b := range resp.Buckets {
		byLabel[b.Label] = b.Amount
	}
	s.True(byLabel["current"].Equal(decimal.RequireFromString("10.00")))
	s.True(byLabel["1-30"].Equal(decimal.RequireFromString("20.00")))
	s.True(byLabel["90+"].Equal(decimal.RequireFromString("40.00")))
}

func (s *ReportServiceSuite) TestSubscriptionBreakdown() {
	ctx := s.GetContext()
	now := time.Now().UTC()

	for _, status := range []types.SubscriptionStatus{
		types.SubscriptionStatusActive,
		types.SubscriptionStatusActive,
		types.SubscriptionStatusSuspended,
		types.SubscriptionStatusTerminated,
	} {
		s.NoError(s.GetStores().SubscriptionRepo.Create(ctx, &subscription.Subscription{
			ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
			CustomerID:         s.customer.ID,
			PlanID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
			SubscriptionStatus: status,
			AutoRenew:          true,
			StartedAt:          now,
			EndsAt:             now.AddDate(0, 0, 30),
			BaseModel:          types.GetDefaultBaseModel(ctx),
		}))
	}

	resp, err := s.service.SubscriptionBreakdown(ctx)
	s.NoError(err)
	s.Equal(4, resp.Total)
	s.Equal(2, resp.ByStatus[types.SubscriptionStatusActive.String()])
	s.Equal(1, resp.ByStatus[types.SubscriptionStatusSuspended.String()])
	s.Equal(1, resp.ByStatus[types.SubscriptionStatusTerminated.String()])
}
