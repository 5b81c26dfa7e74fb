package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/netbill/netbill/internal/api"
	v1 "github.com/netbill/netbill/internal/api/v1"
	"github.com/netbill/netbill/internal/auth"
	"github.com/netbill/netbill/internal/cache"
	"github.com/netbill/netbill/internal/config"
	"github.com/netbill/netbill/internal/email"
	"github.com/netbill/netbill/internal/httpclient"
	"github.com/netbill/netbill/internal/idempotency"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/pdf"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/repository"
	"github.com/netbill/netbill/internal/scheduler"
	"github.com/netbill/netbill/internal/service"
	"github.com/netbill/netbill/internal/sms"
	"github.com/netbill/netbill/internal/validator"
	"go.uber.org/fx"
)

// @title NetBill API
// @version 1.0
// @description Multi-tenant ISP billing and CRM service
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key

func init() {
	// Billing periods and invoice sequences are computed in UTC
	time.Local = time.UTC
}

func main() {
	godotenv.Load()

	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,

			cache.NewInMemoryCache,
			postgres.NewDB,
			provideDBClient,
			httpclient.NewDefaultClient,
			idempotency.NewGenerator,
			auth.NewProvider,

			pdf.NewGenerator,
			provideEmailClient,
			provideSMSClient,

			// Repositories
			repository.NewTenantRepository,
			repository.NewUserRepository,
			repository.NewCustomerRepository,
			repository.NewPlanRepository,
			repository.NewSubscriptionRepository,
			repository.NewInvoiceRepository,
			repository.NewPaymentRepository,
			repository.NewBillingRunRepository,
			repository.NewTicketRepository,
			repository.NewSettingsRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewTenantService,
			service.NewCustomerService,
			service.NewPlanService,
			service.NewSubscriptionService,
			service.NewBillingService,
			service.NewInvoiceService,
			service.NewPaymentService,
			service.NewTicketService,
			service.NewSettingsService,
			service.NewPortalService,
			service.NewReportService,
			service.NewSearchService,
		),
	)

	// HTTP surface and background jobs
	opts = append(opts,
		fx.Provide(
			v1.NewHealthHandler,
			v1.NewTenantHandler,
			v1.NewCustomerHandler,
			v1.NewPlanHandler,
			v1.NewSubscriptionHandler,
			v1.NewBillingHandler,
			v1.NewInvoiceHandler,
			v1.NewPaymentHandler,
			v1.NewTicketHandler,
			v1.NewSettingsHandler,
			v1.NewPortalHandler,
			v1.NewReportHandler,
			v1.NewSearchHandler,

			api.NewRouter,
			scheduler.NewScheduler,
		),
		fx.Invoke(startServer, startScheduler),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideDBClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideEmailClient(cfg *config.Configuration) *email.Client {
	return email.NewClient(email.Config{
		Enabled:     cfg.Email.Enabled,
		APIKey:      cfg.Email.APIKey,
		FromAddress: cfg.Email.FromAddress,
		ReplyTo:     cfg.Email.ReplyTo,
	})
}

func provideSMSClient(cfg *config.Configuration, http httpclient.Client) *sms.Client {
	return sms.NewClient(sms.Config{
		Enabled:    cfg.SMS.Enabled,
		GatewayURL: cfg.SMS.GatewayURL,
		APIKey:     cfg.SMS.APIKey,
		SenderID:   cfg.SMS.SenderID,
	}, http)
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return nil
		},
	})
}

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
}
