package service

import (
	"context"

	"github.com/netbill/netbill/internal/api/dto"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
	"github.com/shopspring/decimal"
)

// PortalService is the customer-facing read surface. Every operation resolves
// the customer from the session claims; a missing customer id means the token
// was not a portal token.
type PortalService interface {
	GetOverview(ctx context.Context) (*dto.PortalOverviewResponse, error)
	MySubscriptions(ctx context.Context) (*dto.ListSubscriptionsResponse, error)
	MyInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	MyPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)
	MyTickets(ctx context.Context, filter *types.TicketFilter) (*dto.ListTicketsResponse, error)
	CreateTicket(ctx context.Context, req *dto.PortalCreateTicketRequest) (*dto.TicketResponse, error)
}

type portalService struct {
	ServiceParams
	ticketService TicketService
}

func NewPortalService(params ServiceParams) PortalService {
	return &portalService{
		ServiceParams: params,
		ticketService: NewTicketService(params),
	}
}

func (s *portalService) customerID(ctx context.Context) (string, error) {
	id := types.GetCustomerID(ctx)
	if id == "" {
		return "", ierr.NewError("missing customer context").
			WithHint("Portal access requires a customer session").
			Mark(ierr.ErrPermissionDenied)
	}
	return id, nil
}

func (s *portalService) GetOverview(ctx context.Context) (*dto.PortalOverviewResponse, error) {
	customerID, err := s.customerID(ctx)
	if err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !cust.PortalEnabled {
		return nil, ierr.NewError("portal access disabled").
			WithHint("Portal access is disabled for this customer").
			Mark(ierr.ErrPermissionDenied)
	}

	subFilter := types.NewNoLimitSubscriptionFilter()
	subFilter.CustomerID = customerID
	subFilter.SubscriptionStatus = []types.SubscriptionStatus{types.SubscriptionStatusActive}
	subs, err := s.SubscriptionRepo.List(ctx, subFilter)
	if err != nil {
		return nil, err
	}

	invFilter := types.NewNoLimitInvoiceFilter()
	invFilter.CustomerID = customerID
	invFilter.InvoiceStatus = []types.InvoiceStatus{
		types.InvoiceStatusPending,
		types.InvoiceStatusOverdue,
	}
	unpaid, err := s.InvoiceRepo.List(ctx, invFilter)
	if err != nil {
		return nil, err
	}

	outstanding := decimal.Zero
	for _, inv := range unpaid {
		outstanding = outstanding.Add(inv.Total)
	}

	ticketFilter := types.NewTicketFilter()
	ticketFilter.CustomerID = customerID
	ticketFilter.TicketStatus = []types.TicketStatus{
		types.TicketStatusOpen,
		types.TicketStatusInProgress,
	}
	openTickets, err := s.TicketRepo.Count(ctx, ticketFilter)
	if err != nil {
		return nil, err
	}

	resp := &dto.PortalOverviewResponse{
		Customer:           dto.NewCustomerResponse(cust),
		OutstandingBalance: outstanding,
		UnpaidInvoices:     len(unpaid),
		OpenTickets:        openTickets,
	}
	subAccess := dto.NewListSubscriptionsResponse(subs, len(subs))
	resp.ActiveSubscriptions = subAccess.Items

	return resp, nil
}

func (s *portalService) MySubscriptions(ctx context.Context) (*dto.ListSubscriptionsResponse, error) {
	customerID, err := s.customerID(ctx)
	if err != nil {
		return nil, err
	}

	filter := types.NewNoLimitSubscriptionFilter()
	filter.CustomerID = customerID
	subs, err := s.SubscriptionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewListSubscriptionsResponse(subs, len(subs)), nil
}

func (s *portalService) MyInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	customerID, err := s.customerID(ctx)
	if err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewInvoiceFilter()
	}
	filter.CustomerID = customerID

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewListInvoicesResponse(invoices, total), nil
}

func (s *portalService) MyPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	customerID, err := s.customerID(ctx)
	if err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewPaymentFilter()
	}
	filter.CustomerID = customerID

	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.PaymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewListPaymentsResponse(payments, total), nil
}

func (s *portalService) MyTickets(ctx context.Context, filter *types.TicketFilter) (*dto.ListTicketsResponse, error) {
	customerID, err := s.customerID(ctx)
	if err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewTicketFilter()
	}
	filter.CustomerID = customerID

	tickets, err := s.TicketRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.TicketRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewListTicketsResponse(tickets, total), nil
}

func (s *portalService) CreateTicket(ctx context.Context, req *dto.PortalCreateTicketRequest) (*dto.TicketResponse, error) {
	customerID, err := s.customerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.ticketService.CreateTicket(ctx, &dto.CreateTicketRequest{
		CustomerID:  customerID,
		Subject:     req.Subject,
		Description: req.Description,
	})
}
