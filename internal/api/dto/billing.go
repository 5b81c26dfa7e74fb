package dto

import (
	"time"

	"github.com/netbill/netbill/internal/domain/billingrun"
	"github.com/netbill/netbill/internal/types"
	"github.com/netbill/netbill/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// RunBillingRequest triggers one billing execution. BillingDate defaults to
// now; SubscriptionIDs restricts the run to an explicit set; DryRun computes
// charges without persisting anything.
type RunBillingRequest struct {
	BillingDate     *time.Time `json:"billing_date,omitempty"`
	SubscriptionIDs []string   `json:"subscription_ids,omitempty" validate:"omitempty,max=1000,dive,required"`
	DryRun          bool       `json:"dry_run"`
}

func (r *RunBillingRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// BillingItemResult is the outcome for one subscription within a run
type BillingItemResult struct {
	SubscriptionID string          `json:"subscription_id"`
	CustomerID     string          `json:"customer_id,omitempty"`
	Outcome        string          `json:"outcome"`
	InvoiceID      string          `json:"invoice_id,omitempty"`
	InvoiceNumber  string          `json:"invoice_number,omitempty"`
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	Error          string          `json:"error,omitempty"`
}

type RunBillingResponse struct {
	RunID       string               `json:"run_id,omitempty"`
	BillingDate time.Time            `json:"billing_date"`
	DryRun      bool                 `json:"dry_run"`
	Processed   int                  `json:"processed"`
	Successful  int                  `json:"successful"`
	Failed      int                  `json:"failed"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Items       []*BillingItemResult `json:"items"`
}

type BillingPreviewResponse struct {
	BillingDate time.Time            `json:"billing_date"`
	Count       int                  `json:"count"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Items       []*BillingItemResult `json:"items"`
}

type BillingStatusResponse struct {
	PendingSubscriptions int                 `json:"pending_subscriptions"`
	Status               types.BillingStatus `json:"status"`
	LastBillingRun       *BillingRunResponse `json:"last_billing_run,omitempty"`
}

type BillingRunResponse struct {
	ID          string              `json:"id"`
	BillingDate time.Time           `json:"billing_date"`
	DryRun      bool                `json:"dry_run"`
	RunStatus   string              `json:"run_status"`
	Processed   int                 `json:"processed"`
	Successful  int                 `json:"successful"`
	Failed      int                 `json:"failed"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	StartedAt   time.Time           `json:"started_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	Items       billingrun.RunItems `json:"items,omitempty"`
}

func NewBillingRunResponse(run *billingrun.BillingRun) *BillingRunResponse {
	return &BillingRunResponse{
		ID:          run.ID,
		BillingDate: run.BillingDate,
		DryRun:      run.DryRun,
		RunStatus:   run.RunStatus.String(),
		Processed:   run.Processed,
		Successful:  run.Successful,
		Failed:      run.Failed,
		TotalAmount: run.TotalAmount,
		StartedAt:   run.StartedAt,
		CompletedAt: run.CompletedAt,
		Items:       run.Items,
	}
}

type ListBillingRunsResponse struct {
	Items []*BillingRunResponse `json:"items"`
}

func NewListBillingRunsResponse(runs []*billingrun.BillingRun) *ListBillingRunsResponse {
	return &ListBillingRunsResponse{
		Items: lo.Map(runs, func(r *billingrun.BillingRun, _ int) *BillingRunResponse {
			return NewBillingRunResponse(r)
		}),
	}
}
