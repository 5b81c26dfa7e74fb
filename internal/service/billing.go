package service

import (
	"context"
	"fmt"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/billingrun"
	"github.com/netbill/netbill/internal/domain/invoice"
	"github.com/netbill/netbill/internal/domain/plan"
	"github.com/netbill/netbill/internal/domain/subscription"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/idempotency"
	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
)

// BillingService runs the recurring billing cycle: select due subscriptions,
// generate one invoice per covered period, and advance each subscription's
// next-due timestamp. Failures are per subscription; one bad row never aborts
// a run.
type BillingService interface {
	RunBilling(ctx context.Context, req *dto.RunBillingRequest) (*dto.RunBillingResponse, error)
	PreviewBilling(ctx context.Context, billingDate *time.Time) (*dto.BillingPreviewResponse, error)
	GetBillingStatus(ctx context.Context) (*dto.BillingStatusResponse, error)
	ListBillingRuns(ctx context.Context, filter *types.BillingRunFilter) (*dto.ListBillingRunsResponse, error)
}

type billingService struct {
	ServiceParams
	settingsService SettingsService
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams:   params,
		settingsService: NewSettingsService(params),
	}
}

func (s *billingService) RunBilling(ctx context.Context, req *dto.RunBillingRequest) (*dto.RunBillingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, err
	}

	billingDate := time.Now().UTC()
	if req.BillingDate != nil {
		billingDate = req.BillingDate.UTC()
	}

	due, err := s.SubscriptionRepo.ListDue(ctx, billingDate, req.SubscriptionIDs)
	if err != nil {
		return nil, err
	}

	invoiceCfg, err := s.settingsService.GetInvoiceConfig(ctx)
	if err != nil {
		return nil, err
	}
	tenant, err := s.TenantRepo.GetByID(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("starting billing run",
		"tenant_id", tenant.ID,
		"billing_date", billingDate,
		"due_subscriptions", len(due),
		"dry_run", req.DryRun,
	)

	var run *billingrun.BillingRun
	if !req.DryRun {
		run = &billingrun.BillingRun{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BILLING_RUN),
			BillingDate: billingDate,
			DryRun:      false,
			RunStatus:   types.BillingRunStatusRunning,
			TotalAmount: decimal.Zero,
			StartedAt:   time.Now().UTC(),
			Items:       billingrun.RunItems{},
			BaseModel:   types.GetDefaultBaseModel(ctx),
		}
		if err := s.BillingRunRepo.Create(ctx, run); err != nil {
			return nil, err
		}
	}

	resp := &dto.RunBillingResponse{
		BillingDate: billingDate,
		DryRun:      req.DryRun,
		TotalAmount: decimal.Zero,
		Items:       []*dto.BillingItemResult{},
	}

	// plans change rarely within a run; fetch each once
	planCache := map[string]*plan.Plan{}

	for _, sub := range due {
		item := s.billSubscription(ctx, sub, billingDate, invoiceCfg, tenant.Slug, planCache, req.DryRun)
		resp.Processed++
		resp.Items = append(resp.Items, item)

		if item.Error == "" {
			resp.Successful++
			resp.TotalAmount = resp.TotalAmount.Add(item.Total)
		} else {
			resp.Failed++
		}

		if run != nil {
			run.Items = append(run.Items, billingrun.RunItem{
				SubscriptionID: item.SubscriptionID,
				Outcome:        types.BillingItemOutcome(item.Outcome),
				InvoiceID:      item.InvoiceID,
				Amount:         item.Total,
				Error:          item.Error,
			})
		}
	}

	if run != nil {
		now := time.Now().UTC()
		run.RunStatus = types.BillingRunStatusCompleted
		run.Processed = resp.Processed
		run.Successful = resp.Successful
		run.Failed = resp.Failed
		run.TotalAmount = resp.TotalAmount
		run.CompletedAt = &now
		if err := s.BillingRunRepo.Update(ctx, run); err != nil {
			return nil, err
		}
		resp.RunID = run.ID
	}

	s.Logger.Infow("billing run finished",
		"run_id", resp.RunID,
		"processed", resp.Processed,
		"successful", resp.Successful,
		"failed", resp.Failed,
		"total_amount", resp.TotalAmount,
		"dry_run", req.DryRun,
	)

	return resp, nil
}

// billSubscription generates one invoice for the subscription's next billing
// period. Returns a result item; errors are folded into the item, never
// propagated.
func (s *billingService) billSubscription(
	ctx context.Context,
	sub *subscription.Subscription,
	billingDate time.Time,
	cfg types.InvoiceConfig,
	tenantSlug string,
	planCache map[string]*plan.Plan,
	dryRun bool,
) *dto.BillingItemResult {
	item := &dto.BillingItemResult{
		SubscriptionID: sub.ID,
		CustomerID:     sub.CustomerID,
		Outcome:        string(types.BillingItemOutcomeFailed),
	}

	p, ok := planCache[sub.PlanID]
	if !ok {
		var err error
		p, err = s.PlanRepo.Get(ctx, sub.PlanID)
		if err != nil {
			item.Error = fmt.Sprintf("plan lookup failed: %v", err)
			return item
		}
		planCache[sub.PlanID] = p
	}

	periodStart := sub.EndsAt
	periodEnd := periodStart.AddDate(0, 0, p.DurationDays)
	item.PeriodStart = periodStart
	item.PeriodEnd = periodEnd

	exists, err := s.InvoiceRepo.ExistsForPeriod(ctx, sub.ID, periodStart, periodEnd)
	if err != nil {
		item.Error = fmt.Sprintf("duplicate check failed: %v", err)
		return item
	}
	if exists {
		item.Outcome = string(types.BillingItemOutcomeSkipped)
		item.Error = fmt.Sprintf("invoice already exists for period %s to %s",
			periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02"))
		return item
	}

	subtotal := p.Price
	taxAmount := subtotal.Mul(p.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(taxAmount)

	item.Subtotal = subtotal
	item.TaxAmount = taxAmount
	item.Total = total

	if dryRun {
		item.Outcome = string(types.BillingItemOutcomeInvoiced)
		return item
	}

	var inv *invoice.Invoice
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		seq, err := s.InvoiceRepo.NextSequence(ctx, billingDate.Format("200601"))
		if err != nil {
			return err
		}
		number := cfg.FormatInvoiceNumber(tenantSlug, billingDate, seq)

		idempKey := s.IdempGen.GenerateKey(idempotency.ScopeSubscriptionInvoice, map[string]interface{}{
			"subscription_id": sub.ID,
			"period_start":    periodStart.Format(time.RFC3339),
			"period_end":      periodEnd.Format(time.RFC3339),
		})

		inv = &invoice.Invoice{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
			CustomerID:     sub.CustomerID,
			SubscriptionID: sub.ID,
			InvoiceNumber:  number,
			InvoiceStatus:  types.InvoiceStatusPending,
			Currency:       p.Currency,
			PeriodStart:    periodStart,
			PeriodEnd:      periodEnd,
			Subtotal:       subtotal,
			TaxAmount:      taxAmount,
			Total:          total,
			DueDate:        billingDate.AddDate(0, 0, cfg.DueDays),
			Metadata:       types.Metadata{"idempotency_key": idempKey},
			BaseModel:      types.GetDefaultBaseModel(ctx),
		}

		lineItems := []*invoice.LineItem{{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID: inv.ID,
			ItemType:  types.InvoiceItemTypeRecurring,
			Description: fmt.Sprintf("%s (%s to %s)", p.Name,
				periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02")),
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: subtotal,
			Amount:    subtotal,
			BaseModel: types.GetDefaultBaseModel(ctx),
		}}
		if taxAmount.IsPositive() {
			lineItems = append(lineItems, &invoice.LineItem{
				ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
				InvoiceID:   inv.ID,
				ItemType:    types.InvoiceItemTypeTax,
				Description: fmt.Sprintf("Tax (%s%%)", p.TaxRate.String()),
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   taxAmount,
				Amount:      taxAmount,
				BaseModel:   types.GetDefaultBaseModel(ctx),
			})
		}
		inv.LineItems = lineItems

		if err := inv.Validate(); err != nil {
			return ierr.WithError(err).
				WithHint("Generated invoice failed validation").
				Mark(ierr.ErrValidation)
		}
		if err := s.InvoiceRepo.CreateWithLineItems(ctx, inv); err != nil {
			return err
		}

		sub.EndsAt = periodEnd
		return s.SubscriptionRepo.Update(ctx, sub)
	})
	if err != nil {
		item.Error = err.Error()
		return item
	}

	item.Outcome = string(types.BillingItemOutcomeInvoiced)
	item.InvoiceID = inv.ID
	item.InvoiceNumber = inv.InvoiceNumber
	return item
}

// PreviewBilling computes the charges a run would generate without writing
// anything
func (s *billingService) PreviewBilling(ctx context.Context, billingDate *time.Time) (*dto.BillingPreviewResponse, error) {
	result, err := s.RunBilling(ctx, &dto.RunBillingRequest{
		BillingDate: billingDate,
		DryRun:      true,
	})
	if err != nil {
		return nil, err
	}

	return &dto.BillingPreviewResponse{
		BillingDate: result.BillingDate,
		Count:       result.Processed,
		TotalAmount: result.TotalAmount,
		Items:       result.Items,
	}, nil
}

func (s *billingService) GetBillingStatus(ctx context.Context) (*dto.BillingStatusResponse, error) {
	pending, err := s.SubscriptionRepo.CountDue(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	resp := &dto.BillingStatusResponse{
		PendingSubscriptions: pending,
		Status:               types.BillingStatusUpToDate,
	}
	if pending > 0 {
		resp.Status = types.BillingStatusPending
	}

	last, err := s.BillingRunRepo.GetLatestCompleted(ctx)
	if err != nil {
		return nil, err
	}
	if last != nil {
		resp.LastBillingRun = dto.NewBillingRunResponse(last)
	}

	return resp, nil
}

func (s *billingService) ListBillingRuns(ctx context.Context, filter *types.BillingRunFilter) (*dto.ListBillingRunsResponse, error) {
	if filter == nil {
		filter = types.NewBillingRunFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter").
			Mark(ierr.ErrValidation)
	}

	runs, err := s.BillingRunRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewListBillingRunsResponse(runs), nil
}
