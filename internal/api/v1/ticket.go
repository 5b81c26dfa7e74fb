package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/netbill/netbill/internal/api/dto"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/service"
	"github.com/netbill/netbill/internal/types"
)

type TicketHandler struct {
	service service.TicketService
	log     *logger.Logger
}

func NewTicketHandler(service service.TicketService, log *logger.Logger) *TicketHandler {
	return &TicketHandler{service: service, log: log}
}

// @Summary Create a ticket
// @Description Open a support ticket for a customer
// @Tags Tickets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param ticket body dto.CreateTicketRequest true "Ticket"
// @Success 201 {object} dto.TicketResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateTicket(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a ticket
// @Description Get a ticket with its replies
// @Tags Tickets
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	resp, err := h.service.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List tickets
// @Description List tickets
// @Tags Tickets
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.TicketFilter false "Filter"
// @Success 200 {object} dto.ListTicketsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	filter := types.NewTicketFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListTickets(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Reply to a ticket
// @Description Add a reply to a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Ticket ID"
// @Param reply body dto.ReplyTicketRequest true "Reply"
// @Success 200 {object} dto.TicketResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tickets/{id}/replies [post]
func (h *TicketHandler) ReplyToTicket(c *gin.Context) {
	var req dto.ReplyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ReplyToTicket(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update ticket status
// @Description Transition a ticket to a new status
// @Tags Tickets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Ticket ID"
// @Param request body dto.UpdateTicketStatusRequest true "Status update"
// @Success 200 {object} dto.TicketResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tickets/{id}/status [patch]
func (h *TicketHandler) UpdateTicketStatus(c *gin.Context) {
	var req dto.UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateTicketStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Assign a ticket
// @Description Assign a ticket to a staff user
// @Tags Tickets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Ticket ID"
// @Param request body dto.AssignTicketRequest true "Assignee"
// @Success 200 {object} dto.TicketResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tickets/{id}/assign [post]
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	var req dto.AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AssignTicket(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
