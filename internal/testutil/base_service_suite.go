package testutil

import (
	"context"
	"time"

	"github.com/netbill/netbill/internal/cache"
	"github.com/netbill/netbill/internal/config"
	"github.com/netbill/netbill/internal/email"
	"github.com/netbill/netbill/internal/idempotency"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/sms"
	"github.com/netbill/netbill/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories backing a service test suite
type Stores struct {
	TenantRepo       *InMemoryTenantStore
	UserRepo         *InMemoryUserStore
	CustomerRepo     *InMemoryCustomerStore
	PlanRepo         *InMemoryPlanStore
	SubscriptionRepo *InMemorySubscriptionStore
	InvoiceRepo      *InMemoryInvoiceStore
	PaymentRepo      *InMemoryPaymentStore
	BillingRunRepo   *InMemoryBillingRunStore
	TicketRepo       *InMemoryTicketStore
	SettingsRepo     *InMemorySettingsStore
}

// BaseServiceTestSuite provides common setup for service tests: a tenant
// scoped context, in-memory stores and the shared ambient dependencies.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	stores       Stores
	db           postgres.IClient
	logger       *logger.Logger
	config       *config.Configuration
	pdfGenerator *MockPDFGenerator
	now          time.Time
}

// SetupSuite initializes dependencies that survive across tests
func (s *BaseServiceTestSuite) SetupSuite() {
	s.config = config.GetDefaultConfig()

	log, err := logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.logger = log
	s.db = NewMockPostgresClient(s.logger)
	s.pdfGenerator = NewMockPDFGenerator(s.logger)
}

// SetupTest prepares a fresh context and stores for each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest cleans up stores after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxTenantID, types.DefaultTenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	s.ctx = ctx
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		TenantRepo:       NewInMemoryTenantStore(),
		UserRepo:         NewInMemoryUserStore(),
		CustomerRepo:     NewInMemoryCustomerStore(),
		PlanRepo:         NewInMemoryPlanStore(),
		SubscriptionRepo: NewInMemorySubscriptionStore(),
		InvoiceRepo:      NewInMemoryInvoiceStore(),
		PaymentRepo:      NewInMemoryPaymentStore(),
		BillingRunRepo:   NewInMemoryBillingRunStore(),
		TicketRepo:       NewInMemoryTicketStore(),
		SettingsRepo:     NewInMemorySettingsStore(),
	}
	s.pdfGenerator.Rendered = nil
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.TenantRepo.Clear()
	s.stores.UserRepo.Clear()
	s.stores.CustomerRepo.Clear()
	s.stores.PlanRepo.Clear()
	s.stores.SubscriptionRepo.Clear()
	s.stores.InvoiceRepo.Clear()
	s.stores.PaymentRepo.Clear()
	s.stores.BillingRunRepo.Clear()
	s.stores.TicketRepo.Clear()
	s.stores.SettingsRepo.Clear()
}

// GetContext returns the tenant scoped test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns the active store set
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the mock database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetPDFGenerator returns the mock PDF generator
func (s *BaseServiceTestSuite) GetPDFGenerator() *MockPDFGenerator {
	return s.pdfGenerator
}

// GetNow returns the test start time in UTC
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// GetEmailClient returns a disabled email client
func (s *BaseServiceTestSuite) GetEmailClient() *email.Client {
	return email.NewClient(email.Config{})
}

// GetSMSClient returns a disabled SMS client
func (s *BaseServiceTestSuite) GetSMSClient() *sms.Client {
	return sms.NewClient(sms.Config{}, nil)
}

// GetCache returns a fresh in-memory cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return cache.NewInMemoryCache(s.config)
}

// GetIdempotencyGenerator returns a key generator
func (s *BaseServiceTestSuite) GetIdempotencyGenerator() *idempotency.Generator {
	return idempotency.NewGenerator()
}
