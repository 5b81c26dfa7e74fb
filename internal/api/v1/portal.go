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

type PortalHandler struct {
	service service.PortalService
	log     *logger.Logger
}

func NewPortalHandler(service service.PortalService, log *logger.Logger) *PortalHandler {
	return &PortalHandler{service: service, log: log}
}

// @Summary Portal overview
// @Description Account summary for the authenticated portal customer
// @Tags Portal
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.PortalOverviewResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /portal/overview [get]
func (h *PortalHandler) GetOverview(c *gin.Context) {
	resp, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Portal subscriptions
// @Description Subscriptions belonging to the portal customer
// @Tags Portal
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.ListSubscriptionsResponse
// @Router /portal/subscriptions [get]
func (h *PortalHandler) MySubscriptions(c *gin.Context) {
	resp, err := h.service.MySubscriptions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Portal invoices
// @Description Invoices belonging to the portal customer
// @Tags Portal
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.InvoiceFilter false "Filter"
// @Success 200 {object} dto.ListInvoicesResponse
// @Router /portal/invoices [get]
func (h *PortalHandler) MyInvoices(c *gin.Context) {
	filter := types.NewInvoiceFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.MyInvoices(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Portal payments
// @Description Payments belonging to the portal customer
// @Tags Portal
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.PaymentFilter false "Filter"
// @Success 200 {object} dto.ListPaymentsResponse
// @Router /portal/payments [get]
func (h *PortalHandler) MyPayments(c *gin.Context) {
	filter := types.NewPaymentFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.MyPayments(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Portal tickets
// @Description Tickets raised by the portal customer
// @Tags Portal
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.TicketFilter false "Filter"
// @Success 200 {object} dto.ListTicketsResponse
// @Router /portal/tickets [get]
func (h *PortalHandler) MyTickets(c *gin.Context) {
	filter := types.NewTicketFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.MyTickets(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Portal create ticket
// @Description Open a ticket as the portal customer
// @Tags Portal
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param ticket body dto.PortalCreateTicketRequest true "Ticket"
// @Success 201 {object} dto.TicketResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /portal/tickets [post]
func (h *PortalHandler) CreateTicket(c *gin.Context) {
	var req dto.PortalCreateTicketRequest
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
