package repository

import (
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
	"github.com/netbill/netbill/internal/logger"
	pg "github.com/netbill/netbill/internal/postgres"
	repo "github.com/netbill/netbill/internal/repository/postgres"
)

func NewTenantRepository(db *pg.DB, logger *logger.Logger) tenant.Repository {
	return repo.NewTenantRepository(db, logger)
}

func NewUserRepository(db *pg.DB, logger *logger.Logger) user.Repository {
	return repo.NewUserRepository(db, logger)
}

func NewCustomerRepository(db *pg.DB, logger *logger.Logger) customer.Repository {
	return repo.NewCustomerRepository(db, logger)
}

func NewPlanRepository(db *pg.DB, logger *logger.Logger) plan.Repository {
	return repo.NewPlanRepository(db, logger)
}

func NewSubscriptionRepository(db *pg.DB, logger *logger.Logger) subscription.Repository {
	return repo.NewSubscriptionRepository(db, logger)
}

func NewInvoiceRepository(db *pg.DB, logger *logger.Logger) invoice.Repository {
	return repo.NewInvoiceRepository(db, logger)
}

func NewPaymentRepository(db *pg.DB, logger *logger.Logger) payment.Repository {
	return repo.NewPaymentRepository(db, logger)
}

func NewBillingRunRepository(db *pg.DB, logger *logger.Logger) billingrun.Repository {
	return repo.NewBillingRunRepository(db, logger)
}

func NewTicketRepository(db *pg.DB, logger *logger.Logger) ticket.Repository {
	return repo.NewTicketRepository(db, logger)
}

func NewSettingsRepository(db *pg.DB, logger *logger.Logger) settings.Repository {
	return repo.NewSettingsRepository(db, logger)
}
