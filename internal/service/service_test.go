package service

import (
	"github.com/netbill/netbill/internal/testutil"
)

// newServiceParams wires the shared test dependencies into a ServiceParams
// usable by any service constructor
func newServiceParams(b *testutil.BaseServiceTestSuite) ServiceParams {
	stores := b.GetStores()
	return ServiceParams{
		Logger:           b.GetLogger(),
		Config:           b.GetConfig(),
		DB:               b.GetDB(),
		PDFGenerator:     b.GetPDFGenerator(),
		EmailClient:      b.GetEmailClient(),
		SMSClient:        b.GetSMSClient(),
		Cache:            b.GetCache(),
		IdempGen:         b.GetIdempotencyGenerator(),
		TenantRepo:       stores.TenantRepo,
		UserRepo:         stores.UserRepo,
		CustomerRepo:     stores.CustomerRepo,
		PlanRepo:         stores.PlanRepo,
		SubscriptionRepo: stores.SubscriptionRepo,
		InvoiceRepo:      stores.InvoiceRepo,
		PaymentRepo:      stores.PaymentRepo,
		BillingRunRepo:   stores.BillingRunRepo,
		TicketRepo:       stores.TicketRepo,
		SettingsRepo:     stores.SettingsRepo,
	}
}
