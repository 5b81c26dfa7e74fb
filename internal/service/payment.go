package service

import (
	"context"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/payment"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/idempotency"
	"github.com/netbill/netbill/internal/types"
)

type PaymentService interface {
	RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error)
	RefundPayment(ctx context.Context, paymentID string, req *dto.RefundPaymentRequest) (*dto.PaymentResponse, error)
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{ServiceParams: params}
}

// RecordPayment registers a completed payment against an invoice. A payment
// covering the invoice total settles the invoice; smaller payments are stored
// but leave the invoice state untouched.
func (s *paymentService) RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, ierr.NewError("payment amount must be positive").
			WithHint("Payment amount must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv.InvoiceStatus == types.InvoiceStatusCancelled {
		return nil, ierr.NewError("invoice is cancelled").
			WithHint("Cannot record payments against a cancelled invoice").
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrInvalidOperation)
	}

	receivedAt := time.Now().UTC()
	if req.ReceivedAt != nil {
		receivedAt = req.ReceivedAt.UTC()
	}

	idempKey := s.IdempGen.GenerateKey(idempotency.ScopePayment, map[string]interface{}{
		"invoice_id":  inv.ID,
		"amount":      req.Amount.String(),
		"method":      req.PaymentMethod.String(),
		"reference":   req.Reference,
		"received_at": receivedAt.Format(time.RFC3339),
	})
	if existing, err := s.PaymentRepo.GetByIdempotencyKey(ctx, idempKey); err != nil {
		return nil, err
	} else if existing != nil {
		return &dto.RecordPaymentResponse{
			Payment: dto.NewPaymentResponse(existing),
			Invoice: dto.NewInvoiceResponse(inv),
		}, nil
	}

	pay := &payment.Payment{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		InvoiceID:      &inv.ID,
		CustomerID:     inv.CustomerID,
		PaymentNumber:  types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_PAYMENT),
		Amount:         req.Amount,
		Currency:       inv.Currency,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  types.PaymentStatusCompleted,
		Reference:      req.Reference,
		ReceivedAt:     receivedAt,
		IdempotencyKey: idempKey,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	if err := pay.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Payment validation failed").
			Mark(ierr.ErrValidation)
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.PaymentRepo.Create(ctx, pay); err != nil {
			return err
		}

		// single-payment comparison: the payment alone must cover the total
		if req.Amount.GreaterThanOrEqual(inv.Total) && inv.InvoiceStatus != types.InvoiceStatusPaid {
			inv.InvoiceStatus = types.InvoiceStatusPaid
			inv.PaidAt = &receivedAt
			return s.InvoiceRepo.Update(ctx, inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("payment recorded",
		"payment_id", pay.ID,
		"payment_number", pay.PaymentNumber,
		"invoice_id", inv.ID,
		"amount", pay.Amount,
		"invoice_status", inv.InvoiceStatus,
	)

	return &dto.RecordPaymentResponse{
		Payment: dto.NewPaymentResponse(pay),
		Invoice: dto.NewInvoiceResponse(inv),
	}, nil
}

// RefundPayment records a refund as a separate negative payment row
// referencing the original by payment number. A full refund flips the
// original to REFUNDED; the invoice is never touched.
func (s *paymentService) RefundPayment(ctx context.Context, paymentID string, req *dto.RefundPaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	original, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if original.PaymentStatus != types.PaymentStatusCompleted {
		return nil, ierr.NewError("payment is not refundable").
			WithHintf("Only completed payments can be refunded; payment is %s", original.PaymentStatus).
			Mark(ierr.ErrInvalidOperation)
	}
	if original.IsRefund() {
		return nil, ierr.NewError("cannot refund a refund").
			WithHint("Refund rows cannot be refunded").
			Mark(ierr.ErrInvalidOperation)
	}

	amount := req.Amount
	if amount.IsZero() {
		amount = original.Amount
	}
	if !amount.IsPositive() || amount.GreaterThan(original.Amount) {
		return nil, ierr.NewError("invalid refund amount").
			WithHintf("Refund amount must be between 0 and %s", original.Amount.String()).
			WithReportableDetails(map[string]any{
				"payment_id":      paymentID,
				"original_amount": original.Amount,
				"refund_amount":   amount,
			}).
			Mark(ierr.ErrValidation)
	}

	now := time.Now().UTC()
	idempKey := s.IdempGen.GenerateKey(idempotency.ScopeRefund, map[string]interface{}{
		"payment_id": original.ID,
		"amount":     amount.String(),
	})
	if existing, err := s.PaymentRepo.GetByIdempotencyKey(ctx, idempKey); err != nil {
		return nil, err
	} else if existing != nil {
		return dto.NewPaymentResponse(existing), nil
	}

	refund := &payment.Payment{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		InvoiceID:      original.InvoiceID,
		CustomerID:     original.CustomerID,
		PaymentNumber:  types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_PAYMENT),
		Amount:         amount.Neg(),
		Currency:       original.Currency,
		PaymentMethod:  original.PaymentMethod,
		PaymentStatus:  types.PaymentStatusCompleted,
		Reference:      "REFUND-" + original.PaymentNumber,
		ReceivedAt:     now,
		IdempotencyKey: idempKey,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.PaymentRepo.Create(ctx, refund); err != nil {
			return err
		}
		if amount.Equal(original.Amount) {
			original.PaymentStatus = types.PaymentStatusRefunded
			return s.PaymentRepo.Update(ctx, original)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("payment refunded",
		"payment_id", original.ID,
		"refund_id", refund.ID,
		"amount", amount,
		"full_refund", amount.Equal(original.Amount),
	)

	return dto.NewPaymentResponse(refund), nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPaymentResponse(p), nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	if filter == nil {
		filter = types.NewPaymentFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter").
			Mark(ierr.ErrValidation)
	}

	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.PaymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewListPaymentsResponse(payments, total), nil
}
