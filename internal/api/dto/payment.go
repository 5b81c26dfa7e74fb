package dto

import (
	"time"

	"github.com/netbill/netbill/internal/domain/payment"
	"github.com/netbill/netbill/internal/types"
	"github.com/netbill/netbill/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	InvoiceID     string              `json:"invoice_id" binding:"required" validate:"required"`
	Amount        decimal.Decimal     `json:"amount" binding:"required"`
	PaymentMethod types.PaymentMethod `json:"payment_method" binding:"required" validate:"required"`
	Reference     string              `json:"reference,omitempty" validate:"omitempty,max=255"`
	ReceivedAt    *time.Time          `json:"received_at,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.PaymentMethod.Validate()
}

type RefundPaymentRequest struct {
	// Amount of the refund; defaults to the full original amount when zero
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty" validate:"omitempty,max=512"`
}

func (r *RefundPaymentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type PaymentResponse struct {
	ID             string          `json:"id"`
	InvoiceID      *string         `json:"invoice_id,omitempty"`
	CustomerID     string          `json:"customer_id"`
	PaymentNumber  string          `json:"payment_number"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentStatus  string          `json:"payment_status"`
	Reference      string          `json:"reference,omitempty"`
	ReceivedAt     time.Time       `json:"received_at"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func NewPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:             p.ID,
		InvoiceID:      p.InvoiceID,
		CustomerID:     p.CustomerID,
		PaymentNumber:  p.PaymentNumber,
		Amount:         p.Amount,
		Currency:       p.Currency,
		PaymentMethod:  p.PaymentMethod.String(),
		PaymentStatus:  p.PaymentStatus.String(),
		Reference:      p.Reference,
		ReceivedAt:     p.ReceivedAt,
		IdempotencyKey: p.IdempotencyKey,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type RecordPaymentResponse struct {
	Payment *PaymentResponse `json:"payment"`
	Invoice *InvoiceResponse `json:"invoice,omitempty"`
}

type ListPaymentsResponse struct {
	Items []*PaymentResponse `json:"items"`
	Total int                `json:"total"`
}

func NewListPaymentsResponse(payments []*payment.Payment, total int) *ListPaymentsResponse {
	return &ListPaymentsResponse{
		Items: lo.Map(payments, func(p *payment.Payment, _ int) *PaymentResponse {
			return NewPaymentResponse(p)
		}),
		Total: total,
	}
}
