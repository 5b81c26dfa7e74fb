package service

import (
	"context"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/ticket"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
)

type TicketService interface {
	CreateTicket(ctx context.Context, req *dto.CreateTicketRequest) (*dto.TicketResponse, error)
	GetTicket(ctx context.Context, id string) (*dto.TicketResponse, error)
	ListTickets(ctx context.Context, filter *types.TicketFilter) (*dto.ListTicketsResponse, error)
	ReplyToTicket(ctx context.Context, id string, req *dto.ReplyTicketRequest) (*dto.TicketResponse, error)
	UpdateTicketStatus(ctx context.Context, id string, req *dto.UpdateTicketStatusRequest) (*dto.TicketResponse, error)
	AssignTicket(ctx context.Context, id string, req *dto.AssignTicketRequest) (*dto.TicketResponse, error)
}

type ticketService struct {
	ServiceParams
}

func NewTicketService(params ServiceParams) TicketService {
	return &ticketService{ServiceParams: params}
}

func (s *ticketService) CreateTicket(ctx context.Context, req *dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = types.TicketPriorityMedium
	}

	t := &ticket.Ticket{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TICKET),
		CustomerID:   req.CustomerID,
		TicketNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_TICKET),
		Subject:      req.Subject,
		Description:  req.Description,
		TicketStatus: types.TicketStatusOpen,
		Priority:     priority,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}

	if err := s.TicketRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.Logger.Infow("ticket created",
		"ticket_id", t.ID,
		"ticket_number", t.TicketNumber,
		"customer_id", t.CustomerID,
	)

	return dto.NewTicketResponse(t), nil
}

func (s *ticketService) GetTicket(ctx context.Context, id string) (*dto.TicketResponse, error) {
	t, err := s.TicketRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewTicketResponse(t), nil
}

func (s *ticketService) ListTickets(ctx context.Context, filter *types.TicketFilter) (*dto.ListTicketsResponse, error) {
	if filter == nil {
		filter = types.NewTicketFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter").
			Mark(ierr.ErrValidation)
	}

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

// ReplyToTicket appends a message to the thread. Portal sessions author as
// the customer, everyone else as staff. Replying to a closed ticket is
// rejected.
func (s *ticketService) ReplyToTicket(ctx context.Context, id string, req *dto.ReplyTicketRequest) (*dto.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.TicketRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.TicketStatus == types.TicketStatusClosed {
		return nil, ierr.NewError("ticket is closed").
			WithHint("Cannot reply to a closed ticket").
			Mark(ierr.ErrInvalidOperation)
	}

	authorType := types.TicketAuthorTypeStaff
	authorID := types.GetUserID(ctx)
	if customerID := types.GetCustomerID(ctx); customerID != "" {
		authorType = types.TicketAuthorTypeCustomer
		authorID = customerID
	}

	reply := &ticket.Reply{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TICKET_REPLY),
		TicketID:   t.ID,
		AuthorID:   authorID,
		AuthorType: authorType,
		Body:       req.Body,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}

	if err := s.TicketRepo.AddReply(ctx, reply); err != nil {
		return nil, err
	}

	t.Replies = append(t.Replies, reply)
	return dto.NewTicketResponse(t), nil
}

func (s *ticketService) UpdateTicketStatus(ctx context.Context, id string, req *dto.UpdateTicketStatusRequest) (*dto.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.TicketRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !t.TicketStatus.CanTransitionTo(req.TicketStatus) {
		return nil, ierr.NewError("invalid ticket status transition").
			WithHintf("Cannot transition ticket from %s to %s", t.TicketStatus, req.TicketStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	t.TicketStatus = req.TicketStatus
	if err := s.TicketRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	return dto.NewTicketResponse(t), nil
}

func (s *ticketService) AssignTicket(ctx context.Context, id string, req *dto.AssignTicketRequest) (*dto.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.TicketRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.GetByID(ctx, req.AssignedTo); err != nil {
		return nil, err
	}

	t.AssignedTo = &req.AssignedTo
	if t.TicketStatus == types.TicketStatusOpen {
		t.TicketStatus = types.TicketStatusInProgress
	}
	if err := s.TicketRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	return dto.NewTicketResponse(t), nil
}
