package dto

import (
	"github.com/netbill/netbill/internal/validator"
	"github.com/shopspring/decimal"
)

// PortalOverviewResponse is the customer's landing summary: active
// subscription, outstanding balance and open tickets.
type PortalOverviewResponse struct {
	Customer            *CustomerResponse       `json:"customer"`
	ActiveSubscriptions []*SubscriptionResponse `json:"active_subscriptions"`
	OutstandingBalance  decimal.Decimal         `json:"outstanding_balance"`
	UnpaidInvoices      int                     `json:"unpaid_invoices"`
	OpenTickets         int                     `json:"open_tickets"`
}

type PortalCreateTicketRequest struct {
	Subject     string `json:"subject" binding:"required" validate:"required,min=2,max=255"`
	Description string `json:"description,omitempty" validate:"omitempty,max=8192"`
}

func (r *PortalCreateTicketRequest) Validate() error {
	return validator.ValidateRequest(r)
}
