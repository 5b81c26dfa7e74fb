package service

import (
	"testing"
	"time"

	"github.com/netbill/netbill/internal/domain/customer"
	"github.com/netbill/netbill/internal/domain/invoice"
	"github.com/netbill/netbill/internal/domain/ticket"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SearchServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SearchService
}

func TestSearchService(t *testing.T) {
	suite.Run(t, new(SearchServiceSuite))
}

func (s *SearchServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSearchService(newServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *SearchServiceSuite) setupTestData() {
	ctx := s.GetContext()
	stores := s.GetStores()

	cust := &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Walker Networks",
		Email:     "walker@example.com",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.CustomerRepo.Create(ctx, cust))

	now := time.Now().UTC()
	s.NoError(stores.InvoiceRepo.CreateWithLineItems(ctx, &invoice.Invoice{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CustomerID:     cust.ID,
		SubscriptionID: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		InvoiceNumber:  "INV-202501-0042",
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

	s.NoError(stores.TicketRepo.Create(ctx, &ticket.Ticket{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TICKET),
		CustomerID:   cust.ID,
		TicketNumber: "TCK-AB12",
		Subject:      "Walker office link down",
		TicketStatus: types.TicketStatusOpen,
		Priority:     types.TicketPriorityMedium,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}))
}

func (s *SearchServiceSuite) TestSearchMatchesAcrossEntities() {
	resp, err := s.service.Search(s.GetContext(), "walker")
	s.NoError(err)
	s.Len(resp.Customers, 1)
	s.Len(resp.Tickets, 1)
	s.Empty(resp.Invoices)
}

func (s *SearchServiceSuite) TestSearchByInvoiceNumber() {
	resp, err := s.service.Search(s.GetContext(), "INV-202501-0042")
	s.NoError(err)
	s.Len(resp.Invoices, 1)
	s.Equal("INV-202501-0042", resp.Invoices[0].InvoiceNumber)
}

func (s *SearchServiceSuite) TestSearchRejectsShortQuery() {
	for _, q := range []string{"", " ", "a", " a "} {
		_, err := s.service.Search(s.GetContext(), q)
		s.Error(err)
		s.True(ierr.IsValidation(err))
	}
}

func (s *SearchServiceSuite) TestSearchNoMatches() {
	resp, err := s.service.Search(s.GetContext(), "nothing-here")
	s.NoError(err)
	s.Empty(resp.Customers)
	s.Empty(resp.Invoices)
	s.Empty(resp.Tickets)
}
