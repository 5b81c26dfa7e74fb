package scheduler

import (
	"context"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/config"
	"github.com/netbill/netbill/internal/domain/tenant"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/service"
	"github.com/netbill/netbill/internal/types"
	"github.com/robfig/cron/v3"
)

// Scheduler drives the recurring billing job. On each tick it walks every
// tenant, generates the invoices that have come due and flips pending
// invoices past their due date to overdue.
type Scheduler struct {
	cron           *cron.Cron
	cfg            *config.Configuration
	log            *logger.Logger
	tenantRepo     tenant.Repository
	billingService service.BillingService
	invoiceService service.InvoiceService
}

func NewScheduler(
	cfg *config.Configuration,
	log *logger.Logger,
	tenantRepo tenant.Repository,
	billingService service.BillingService,
	invoiceService service.InvoiceService,
) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		cfg:            cfg,
		log:            log,
		tenantRepo:     tenantRepo,
		billingService: billingService,
		invoiceService: invoiceService,
	}
}

// Start registers the billing job and starts the cron loop. It is a no-op
// when the schedule is disabled in config.
func (s *Scheduler) Start() error {
	if !s.cfg.Billing.ScheduleEnabled {
		s.log.Info("billing schedule disabled, scheduler not started")
		return nil
	}

	schedule := s.cfg.Billing.Schedule
	if _, err := s.cron.AddFunc(schedule, s.runBillingCycle); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Infow("billing scheduler started", "schedule", schedule)
	return nil
}

// Stop halts the cron loop and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("billing scheduler stopped")
}

func (s *Scheduler) runBillingCycle() {
	ctx := context.Background()

	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		s.log.Errorw("failed to list tenants for billing cycle", "error", err)
		return
	}

	for _, t := range tenants {
		s.runTenant(ctx, t)
	}
}

func (s *Scheduler) runTenant(ctx context.Context, t *tenant.Tenant) {
	// The scheduler acts as the system user within each tenant's scope.
	tenantCtx := types.SetUserID(types.SetTenantID(ctx, t.ID), types.DefaultUserID)

	resp, err := s.billingService.RunBilling(tenantCtx, &dto.RunBillingRequest{})
	if err != nil {
		s.log.Errorw("scheduled billing run failed",
			"tenant_id", t.ID,
			"error", err)
	} else {
		s.log.Infow("scheduled billing run completed",
			"tenant_id", t.ID,
			"invoices_created", resp.Successful,
			"failed", resp.Failed)
	}

	overdue, err := s.invoiceService.MarkOverdueInvoices(tenantCtx)
	if err != nil {
		s.log.Errorw("overdue sweep failed",
			"tenant_id", t.ID,
			"error", err)
		return
	}
	if overdue.Updated > 0 {
		s.log.Infow("marked invoices overdue",
			"tenant_id", t.ID,
			"count", overdue.Updated)
	}
}
