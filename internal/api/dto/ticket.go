package dto

import (
	"time"

	"github.com/netbill/netbill/internal/domain/ticket"
	"github.com/netbill/netbill/internal/types"
	"github.com/netbill/netbill/internal/validator"
	"github.com/samber/lo"
)

type CreateTicketRequest struct {
	CustomerID  string               `json:"customer_id" binding:"required" validate:"required"`
	Subject     string               `json:"subject" binding:"required" validate:"required,min=2,max=255"`
	Description string               `json:"description,omitempty" validate:"omitempty,max=8192"`
	Priority    types.TicketPriority `json:"priority,omitempty"`
}

func (r *CreateTicketRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Priority != "" {
		return r.Priority.Validate()
	}
	return nil
}

type ReplyTicketRequest struct {
	Body string `json:"body" binding:"required" validate:"required,min=1,max=8192"`
}

func (r *ReplyTicketRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type UpdateTicketStatusRequest struct {
	TicketStatus types.TicketStatus `json:"ticket_status" binding:"required" validate:"required"`
}

func (r *UpdateTicketStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.TicketStatus.Validate()
}

type AssignTicketRequest struct {
	AssignedTo string `json:"assigned_to" binding:"required" validate:"required"`
}

func (r *AssignTicketRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type TicketReplyResponse struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorType string    `json:"author_type"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type TicketResponse struct {
	ID           string                 `json:"id"`
	CustomerID   string                 `json:"customer_id"`
	TicketNumber string                 `json:"ticket_number"`
	Subject      string                 `json:"subject"`
	Description  string                 `json:"description,omitempty"`
	TicketStatus string                 `json:"ticket_status"`
	Priority     string                 `json:"priority"`
	AssignedTo   *string                `json:"assigned_to,omitempty"`
	Replies      []*TicketReplyResponse `json:"replies,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func NewTicketResponse(t *ticket.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:           t.ID,
		CustomerID:   t.CustomerID,
		TicketNumber: t.TicketNumber,
		Subject:      t.Subject,
		Description:  t.Description,
		TicketStatus: t.TicketStatus.String(),
		Priority:     t.Priority.String(),
		AssignedTo:   t.AssignedTo,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		Replies: lo.Map(t.Replies, func(r *ticket.Reply, _ int) *TicketReplyResponse {
			return &TicketReplyResponse{
				ID:         r.ID,
				AuthorID:   r.AuthorID,
				AuthorType: r.AuthorType.String(),
				Body:       r.Body,
				CreatedAt:  r.CreatedAt,
			}
		}),
	}
}

type ListTicketsResponse struct {
	Items []*TicketResponse `json:"items"`
	Total int               `json:"total"`
}

func NewListTicketsResponse(tickets []*ticket.Ticket, total int) *ListTicketsResponse {
	return &ListTicketsResponse{
		Items: lo.Map(tickets, func(t *ticket.Ticket, _ int) *TicketResponse {
			return NewTicketResponse(t)
		}),
		Total: total,
	}
}
