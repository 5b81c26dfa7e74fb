package dto

import (
	"time"

	"github.com/netbill/netbill/internal/domain/invoice"
	"github.com/netbill/netbill/internal/types"
	"github.com/netbill/netbill/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type UpdateInvoiceStatusRequest struct {
	InvoiceStatus types.InvoiceStatus `json:"invoice_status" binding:"required" validate:"required"`
}

func (r *UpdateInvoiceStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.InvoiceStatus.Validate()
}

// SendInvoiceRequest dispatches an invoice over email or sms. Recipient
// overrides the customer's stored contact when set.
type SendInvoiceRequest struct {
	Channel   string `json:"channel" binding:"required" validate:"required,oneof=email sms"`
	Recipient string `json:"recipient,omitempty"`
}

func (r *SendInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type SendInvoiceResponse struct {
	InvoiceID string `json:"invoice_id"`
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Sent      bool   `json:"sent"`
}

type InvoiceLineItemResponse struct {
	ID          string          `json:"id"`
	ItemType    string          `json:"item_type"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

type InvoiceResponse struct {
	ID             string                     `json:"id"`
	CustomerID     string                     `json:"customer_id"`
	SubscriptionID string                     `json:"subscription_id"`
	InvoiceNumber  string                     `json:"invoice_number"`
	InvoiceStatus  string                     `json:"invoice_status"`
	Currency       string                     `json:"currency"`
	PeriodStart    time.Time                  `json:"period_start"`
	PeriodEnd      time.Time                  `json:"period_end"`
	Subtotal       decimal.Decimal            `json:"subtotal"`
	TaxAmount      decimal.Decimal            `json:"tax_amount"`
	Total          decimal.Decimal            `json:"total"`
	DueDate        time.Time                  `json:"due_date"`
	PaidAt         *time.Time                 `json:"paid_at,omitempty"`
	PDFURL         *string                    `json:"pdf_url,omitempty"`
	LineItems      []*InvoiceLineItemResponse `json:"line_items,omitempty"`
	Status         string                     `json:"status"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:             inv.ID,
		CustomerID:     inv.CustomerID,
		SubscriptionID: inv.SubscriptionID,
		InvoiceNumber:  inv.InvoiceNumber,
		InvoiceStatus:  inv.InvoiceStatus.String(),
		Currency:       inv.Currency,
		PeriodStart:    inv.PeriodStart,
		PeriodEnd:      inv.PeriodEnd,
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		DueDate:        inv.DueDate,
		PaidAt:         inv.PaidAt,
		PDFURL:         inv.PDFURL,
		Status:         string(inv.Status),
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
		LineItems: lo.Map(inv.LineItems, func(li *invoice.LineItem, _ int) *InvoiceLineItemResponse {
			return &InvoiceLineItemResponse{
				ID:          li.ID,
				ItemType:    li.ItemType.String(),
				Description: li.Description,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice,
				Amount:      li.Amount,
			}
		}),
	}
}

type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}

func NewListInvoicesResponse(invoices []*invoice.Invoice, total int) *ListInvoicesResponse {
	return &ListInvoicesResponse{
		Items: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *InvoiceResponse {
			return NewInvoiceResponse(inv)
		}),
		Total: total,
	}
}

type GeneratePDFResponse struct {
	InvoiceID string `json:"invoice_id"`
	PDFURL    string `json:"pdf_url"`
}

type MarkOverdueResponse struct {
	Updated int `json:"updated"`
}
