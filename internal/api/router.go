package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/netbill/netbill/internal/api/v1"
	"github.com/netbill/netbill/internal/auth"
	"github.com/netbill/netbill/internal/config"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/rest/middleware"
	"github.com/netbill/netbill/internal/types"
	"go.uber.org/fx"
)

type Handlers struct {
	fx.In

	Health       *v1.HealthHandler
	Tenant       *v1.TenantHandler
	Customer     *v1.CustomerHandler
	Plan         *v1.PlanHandler
	Subscription *v1.SubscriptionHandler
	Billing      *v1.BillingHandler
	Invoice      *v1.InvoiceHandler
	Payment      *v1.PaymentHandler
	Ticket       *v1.TicketHandler
	Settings     *v1.SettingsHandler
	Portal       *v1.PortalHandler
	Report       *v1.ReportHandler
	Search       *v1.SearchHandler
}

func NewRouter(
	handlers Handlers,
	provider auth.Provider,
	cfg *config.Configuration,
	log *logger.Logger,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler(log))

	router.GET("/health", handlers.Health.Health)

	// Tenant registration is the only unauthenticated v1 route
	public := router.Group("/v1")
	public.POST("/tenants/register", handlers.Tenant.RegisterTenant)

	v1Group := router.Group("/v1")
	v1Group.Use(middleware.AuthMiddleware(provider, cfg, log))
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	staff := middleware.RequireRole(types.UserRoleOwner, types.UserRoleAdmin, types.UserRoleStaff)
	admin := middleware.RequireRole(types.UserRoleOwner, types.UserRoleAdmin)

	tenants := router.Group("/tenants", staff)
	{
		tenants.GET("/me", handlers.Tenant.GetCurrentTenant)
		tenants.PATCH("/me/branding", admin, handlers.Tenant.UpdateBranding)
	}

	customers := router.Group("/customers", staff)
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
	}

	plans := router.Group("/plans", staff)
	{
		plans.POST("", admin, handlers.Plan.CreatePlan)
		plans.GET("", handlers.Plan.ListPlans)
		plans.GET("/:id", handlers.Plan.GetPlan)
		plans.PUT("/:id", admin, handlers.Plan.UpdatePlan)
		plans.DELETE("/:id", admin, handlers.Plan.DeletePlan)
	}

	subscriptions := router.Group("/subscriptions", staff)
	{
		subscriptions.POST("", handlers.Subscription.CreateSubscription)
		subscriptions.GET("", handlers.Subscription.ListSubscriptions)
		subscriptions.GET("/:id", handlers.Subscription.GetSubscription)
		subscriptions.POST("/:id/suspend", handlers.Subscription.SuspendSubscription)
		subscriptions.POST("/:id/resume", handlers.Subscription.ResumeSubscription)
		subscriptions.POST("/:id/terminate", handlers.Subscription.TerminateSubscription)
		subscriptions.PATCH("/:id/auto-renew", handlers.Subscription.ChangeAutoRenew)
	}

	billing := router.Group("/billing", admin)
	{
		billing.POST("/run", handlers.Billing.RunBilling)
		billing.GET("/preview", handlers.Billing.PreviewBilling)
		billing.GET("/status", handlers.Billing.GetBillingStatus)
		billing.GET("/runs", handlers.Billing.ListBillingRuns)
	}

	invoices := router.Group("/invoices", staff)
	{
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PATCH("/:id/status", handlers.Invoice.UpdateInvoiceStatus)
		invoices.POST("/:id/pdf", handlers.Invoice.GeneratePDF)
		invoices.POST("/:id/send", handlers.Invoice.SendInvoice)
		invoices.POST("/mark-overdue", admin, handlers.Invoice.MarkOverdueInvoices)
	}

	payments := router.Group("/payments", staff)
	{
		payments.POST("", handlers.Payment.RecordPayment)
		payments.GET("", handlers.Payment.ListPayments)
		payments.GET("/:id", handlers.Payment.GetPayment)
		payments.POST("/:id/refund", admin, handlers.Payment.RefundPayment)
	}

	tickets := router.Group("/tickets", staff)
	{
		tickets.POST("", handlers.Ticket.CreateTicket)
		tickets.GET("", handlers.Ticket.ListTickets)
		tickets.GET("/:id", handlers.Ticket.GetTicket)
		tickets.POST("/:id/replies", handlers.Ticket.ReplyToTicket)
		tickets.PATCH("/:id/status", handlers.Ticket.UpdateTicketStatus)
		tickets.POST("/:id/assign", handlers.Ticket.AssignTicket)
	}

	settings := router.Group("/settings", admin)
	{
		settings.GET("", handlers.Settings.ListSettings)
		settings.GET("/:key", handlers.Settings.GetSetting)
		settings.PUT("/:key", handlers.Settings.UpdateSetting)
	}

	reports := router.Group("/reports", staff)
	{
		reports.GET("/revenue", handlers.Report.RevenueSummary)
		reports.GET("/outstanding", handlers.Report.Outstanding)
		reports.GET("/subscriptions", handlers.Report.SubscriptionBreakdown)
	}

	router.GET("/search", staff, handlers.Search.Search)

	portal := router.Group("/portal", middleware.RequireCustomerSession())
	{
		portal.GET("/overview", handlers.Portal.GetOverview)
		portal.GET("/subscriptions", handlers.Portal.MySubscriptions)
		portal.GET("/invoices", handlers.Portal.MyInvoices)
		portal.GET("/payments", handlers.Portal.MyPayments)
		portal.GET("/tickets", handlers.Portal.MyTickets)
		portal.POST("/tickets", handlers.Portal.CreateTicket)
	}
}
