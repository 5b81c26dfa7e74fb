package service

import (
	"github.com/netbill/netbill/internal/cache"
	"github.com/netbill/netbill/internal/config"
	"github.com/netbill/netbill/internal/domain/billingrun"
	"github.com/netbill/netbill/internal/domain/customer"
	"github.com/netbill/netbill/internal/domain/invoice"
	"github.com/netbill/netbill/internal/domain/payment"
	"github.com/netbill/netbill/internal/domain/plan"
	"github.com/netbill/netbill/internal/domain/settings"
	"github.com/netbill/netbill/internal/domain/subscription"
	"github.com/netbill/netbill/internal/domain/tenant"
	"github.com/netbill/netbill/internal/domain/ticket"
	"github.com/netbill/netbill/internal/domain/user"
	"github.com/netbill/netbill/internal/email"
	"github.com/netbill/netbill/internal/idempotency"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/pdf"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/sms"
	"go.uber.org/fx"
)

// ServiceParams bundles common dependencies injected into services. Each
// service picks the fields it needs, so constructors stay uniform as the
// dependency set grows.
type ServiceParams struct {
	fx.In

	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// clients
	PDFGenerator pdf.Generator
	EmailClient  *email.Client
	SMSClient    *sms.Client
	Cache        cache.Cache
	IdempGen     *idempotency.Generator

	// repositories
	TenantRepo       tenant.Repository
	UserRepo         user.Repository
	CustomerRepo     customer.Repository
	PlanRepo         plan.Repository
	SubscriptionRepo subscription.Repository
	InvoiceRepo      invoice.Repository
	PaymentRepo      payment.Repository
	BillingRunRepo   billingrun.Repository
	TicketRepo       ticket.Repository
	SettingsRepo     settings.Repository
}
