package service

import (
	"testing"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/customer"
	"github.com/netbill/netbill/internal/domain/invoice"
	"github.com/netbill/netbill/internal/domain/tenant"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  InvoiceService
	testData struct {
		tenant   *tenant.Tenant
		customer *customer.Customer
		invoice  *invoice.Invoice
	}
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(newServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *InvoiceServiceSuite) setupTestData() {
	ctx := s.GetContext()
	stores := s.GetStores()

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
		Name:      "Sam Ortiz",
		Email:     "sam@example.com",
		Phone:     "+15550100",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.CustomerRepo.Create(ctx, s.testData.customer))

	s.testData.invoice = s.seedInvoice("INV-202501-0001", types.InvoiceStatusPending,
		time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC))
}

func (s *InvoiceServiceSuite) seedInvoice(number string, status types.InvoiceStatus, dueDate time.Time) *invoice.Invoice {
	ctx := s.GetContext()
	periodStart := dueDate.AddDate(0, 0, -15)
	inv := &invoice.Invoice{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CustomerID:     s.testData.customer.ID,
		SubscriptionID: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		InvoiceNumber:  number,
		InvoiceStatus:  status,
		Currency:       "USD",
		PeriodStart:    periodStart,
		PeriodEnd:      periodStart.AddDate(0, 0, 30),
		Subtotal:       decimal.RequireFromString("49.99"),
		TaxAmount:      decimal.RequireFromString("9.00"),
		Total:          decimal.RequireFromString("58.99"),
		DueDate:        dueDate,
		LineItems: []*invoice.LineItem{{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			ItemType:    types.InvoiceItemTypeRecurring,
			Description: "Fiber 100",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.RequireFromString("49.99"),
			Amount:      decimal.RequireFromString("49.99"),
			BaseModel:   types.GetDefaultBaseModel(ctx),
		}},
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().InvoiceRepo.CreateWithLineItems(ctx, inv))
	return inv
}

func (s *InvoiceServiceSuite) TestGetInvoice() {
	resp, err := s.service.GetInvoice(s.GetContext(), s.testData.invoice.ID)
	s.NoError(err)
	s.Equal(s.testData.invoice.InvoiceNumber, resp.InvoiceNumber)

	_, err = s.service.GetInvoice(s.GetContext(), "inv_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceStatusCancel() {
	resp, err := s.service.UpdateInvoiceStatus(s.GetContext(), s.testData.invoice.ID,
		&dto.UpdateInvoiceStatusRequest{InvoiceStatus: types.InvoiceStatusCancelled})
	s.NoError(err)
	s.Equal(types.InvoiceStatusCancelled.String(), resp.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceStatusRejectsDirectPaid() {
	_, err := s.service.UpdateInvoiceStatus(s.GetContext(), s.testData.invoice.ID,
		&dto.UpdateInvoiceStatusRequest{InvoiceStatus: types.InvoiceStatusPaid})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err), "paid is only reachable through payment recording")
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceStatusRejectsTerminal() {
	_, err := s.service.UpdateInvoiceStatus(s.GetContext(), s.testData.invoice.ID,
		&dto.UpdateInvoiceStatusRequest{InvoiceStatus: types.InvoiceStatusCancelled})
	s.NoError(err)

	_, err = s.service.UpdateInvoiceStatus(s.GetContext(), s.testData.invoice.ID,
		&dto.UpdateInvoiceStatusRequest{InvoiceStatus: types.InvoiceStatusPending})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestGeneratePDFCachesURL() {
	ctx := s.GetContext()

	first, err := s.service.GeneratePDF(ctx, s.testData.invoice.ID)
	s.NoError(err)
	s.NotEmpty(first.PDFURL)
	s.Len(s.GetPDFGenerator().Rendered, 1)

	second, err := s.service.GeneratePDF(ctx, s.testData.invoice.ID)
	s.NoError(err)
	s.Equal(first.PDFURL, second.PDFURL)
	s.Len(s.GetPDFGenerator().Rendered, 1, "a stored URL must not be re-rendered")
}

func (s *InvoiceServiceSuite) TestSendInvoiceRequiresContact() {
	ctx := s.GetContext()

	cust, err := s.GetStores().CustomerRepo.Get(ctx, s.testData.customer.ID)
	s.NoError(err)
	cust.Email = ""
	s.NoError(s.GetStores().CustomerRepo.Update(ctx, cust))

	_, err = s.service.SendInvoice(ctx, s.testData.invoice.ID, &dto.SendInvoiceRequest{
		Channel: "email",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestMarkOverdueInvoices() {
	ctx := s.GetContext()

	// one invoice past due, one still current, one already paid
	past := s.testData.invoice
	s.seedInvoice("INV-202501-0002", types.InvoiceStatusPending,
		time.Now().UTC().AddDate(0, 0, 15))
	s.seedInvoice("INV-202501-0003", types.InvoiceStatusPaid,
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))

	resp, err := s.service.MarkOverdueInvoices(ctx)
	s.NoError(err)
	s.Equal(1, resp.Updated)

	inv, err := s.GetStores().InvoiceRepo.Get(ctx, past.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusOverdue, inv.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestListInvoicesFiltersByStatus() {
	ctx := s.GetContext()
	s.seedInvoice("INV-202501-0002", types.InvoiceStatusPaid,
		time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC))

	filter := types.NewInvoiceFilter()
	filter.InvoiceStatus = []types.InvoiceStatus{types.InvoiceStatusPaid}
	resp, err := s.service.ListInvoices(ctx, filter)
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal("INV-202501-0002", resp.Items[0].InvoiceNumber)
}
