package service

import (
	"testing"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/customer"
	"github.com/netbill/netbill/internal/domain/invoice"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/testutil"
	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PaymentService
	testData struct {
		customer *customer.Customer
		invoice  *invoice.Invoice
	}
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPaymentService(newServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *PaymentServiceSuite) setupTestData() {
	ctx := s.GetContext()
	stores := s.GetStores()

	s.testData.customer = &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Jane Cooper",
		Email:     "jane@example.com",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.CustomerRepo.Create(ctx, s.testData.customer))

	periodStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.testData.invoice = &invoice.Invoice{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CustomerID:     s.testData.customer.ID,
		SubscriptionID: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		InvoiceNumber:  "INV-202501-0001",
		InvoiceStatus:  types.InvoiceStatusPending,
		Currency:       "USD",
		PeriodStart:    periodStart,
		PeriodEnd:      periodStart.AddDate(0, 0, 30),
		Subtotal:       decimal.RequireFromString("49.99"),
		TaxAmount:      decimal.RequireFromString("9.00"),
		Total:          decimal.RequireFromString("58.99"),
		DueDate:        periodStart.AddDate(0, 0, 15),
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.InvoiceRepo.CreateWithLineItems(ctx, s.testData.invoice))
}

func (s *PaymentServiceSuite) TestRecordPaymentSettlesInvoice() {
	resp, err := s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.RequireFromString("58.99"),
		PaymentMethod: types.PaymentMethodCash,
		Reference:     "receipt-184",
	})
	s.NoError(err)
	s.Equal(types.PaymentStatusCompleted.String(), resp.Payment.PaymentStatus)
	s.NotEmpty(resp.Payment.PaymentNumber)
	s.Equal(types.InvoiceStatusPaid.String(), resp.Invoice.InvoiceStatus)

	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), s.testData.invoice.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, inv.InvoiceStatus)
	s.NotNil(inv.PaidAt)
}

func (s *PaymentServiceSuite) TestRecordPartialPaymentLeavesInvoicePending() {
	resp, err := s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.RequireFromString("20.00"),
		PaymentMethod: types.PaymentMethodBankTransfer,
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPending.String(), resp.Invoice.InvoiceStatus)

	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), s.testData.invoice.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPending, inv.InvoiceStatus)
	s.Nil(inv.PaidAt)
}

func (s *PaymentServiceSuite) TestRecordPaymentRejectsNonPositiveAmount() {
	_, err := s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.Zero,
		PaymentMethod: types.PaymentMethodCash,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestRecordPaymentRejectsCancelledInvoice() {
	ctx := s.GetContext()
	inv, err := s.GetStores().InvoiceRepo.Get(ctx, s.testData.invoice.ID)
	s.NoError(err)
	inv.InvoiceStatus = types.InvoiceStatusCancelled
	s.NoError(s.GetStores().InvoiceRepo.Update(ctx, inv))

	_, err = s.service.RecordPayment(ctx, &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.RequireFromString("58.99"),
		PaymentMethod: types.PaymentMethodCash,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestRecordPaymentIdempotent() {
	receivedAt := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	req := &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.RequireFromString("58.99"),
		PaymentMethod: types.PaymentMethodCash,
		Reference:     "receipt-184",
		ReceivedAt:    &receivedAt,
	}

	first, err := s.service.RecordPayment(s.GetContext(), req)
	s.NoError(err)
	second, err := s.service.RecordPayment(s.GetContext(), req)
	s.NoError(err)
	s.Equal(first.Payment.ID, second.Payment.ID, "replayed request must return the original payment")

	count, err := s.GetStores().PaymentRepo.Count(s.GetContext(), types.NewPaymentFilter())
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PaymentServiceSuite) TestRefundPaymentFull() {
	ctx := s.GetContext()
	recorded, err := s.service.RecordPayment(ctx, &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.RequireFromString("58.99"),
		PaymentMethod: types.PaymentMethodCard,
	})
	s.NoError(err)

	refund, err := s.service.RefundPayment(ctx, recorded.Payment.ID, &dto.RefundPaymentRequest{})
	s.NoError(err)
	s.True(refund.Amount.Equal(decimal.RequireFromString("-58.99")), "refund is stored as a negative payment")
	s.Equal("REFUND-"+recorded.Payment.PaymentNumber, refund.Reference)

	original, err := s.GetStores().PaymentRepo.Get(ctx, recorded.Payment.ID)
	s.NoError(err)
	s.Equal(types.PaymentStatusRefunded, original.PaymentStatus)

	// the invoice stays PAID; refunds never rewrite billing history
	inv, err := s.GetStores().InvoiceRepo.Get(ctx, s.testData.invoice.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, inv.InvoiceStatus)
}

func (s *PaymentServiceSuite) TestRefundPaymentPartial() {
	ctx := s.GetContext()
	recorded, err := s.service.RecordPayment(ctx, &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.RequireFromString("58.99"),
		PaymentMethod: types.PaymentMethodCard,
	})
	s.NoError(err)

	refund, err := s.service.RefundPayment(ctx, recorded.Payment.ID, &dto.RefundPaymentRequest{
		Amount: decimal.RequireFromString("20.00"),
	})
	s.NoError(err)
	s.True(refund.Amount.Equal(decimal.RequireFromString("-20.00")))

	original, err := s.GetStores().PaymentRepo.Get(ctx, recorded.Payment.ID)
	s.NoError(err)
	s.Equal(types.PaymentStatusCompleted, original.PaymentStatus, "partial refund keeps the original completed")
}

func (s *PaymentServiceSuite) TestRefundPaymentRejectsExcessAmount() {
	ctx := s.GetContext()
	recorded, err := s.service.RecordPayment(ctx, &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.RequireFromString("58.99"),
		PaymentMethod: types.PaymentMethodCash,
	})
	s.NoError(err)

	_, err = s.service.RefundPayment(ctx, recorded.Payment.ID, &dto.RefundPaymentRequest{
		Amount: decimal.RequireFromString("100.00"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestRefundPaymentRejectsRefundOfRefund() {
	ctx := s.GetContext()
	recorded, err := s.service.RecordPayment(ctx, &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.RequireFromString("58.99"),
		PaymentMethod: types.PaymentMethodCash,
	})
	s.NoError(err)

	refund, err := s.service.RefundPayment(ctx, recorded.Payment.ID, &dto.RefundPaymentRequest{})
	s.NoError(err)

	_, err = s.service.RefundPayment(ctx, refund.ID, &dto.RefundPaymentRequest{})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestRefundPaymentIdempotent() {
	ctx := s.GetContext()
	recorded, err := s.service.RecordPayment(ctx, &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.RequireFromString("58.99"),
		PaymentMethod: types.PaymentMethodCash,
	})
	s.NoError(err)

	first, err := s.service.RefundPayment(ctx, recorded.Payment.ID, &dto.RefundPaymentRequest{
		Amount: decimal.RequireFromString("10.00"),
	})
	s.NoError(err)
	second, err := s.service.RefundPayment(ctx, recorded.Payment.ID, &dto.RefundPaymentRequest{
		Amount: decimal.RequireFromString("10.00"),
	})
	s.NoError(err)
	s.Equal(first.ID, second.ID)
}

func (s *PaymentServiceSuite) TestListPaymentsByInvoice() {
	ctx := s.GetContext()
	_, err := s.service.RecordPayment(ctx, &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.RequireFromString("20.00"),
		PaymentMethod: types.PaymentMethodCash,
		Reference:     "first",
	})
	s.NoError(err)
	_, err = s.service.RecordPayment(ctx, &dto.RecordPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		Amount:        decimal.RequireFromString("38.99"),
		PaymentMethod: types.PaymentMethodCash,
		Reference:     "second",
	})
	s.NoError(err)

	filter := types.NewPaymentFilter()
	filter.InvoiceID = s.testData.invoice.ID
	resp, err := s.service.ListPayments(ctx, filter)
	s.NoError(err)
	s.Equal(2, resp.Total)
	s.Len(resp.Items, 2)
}
