package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/netbill/netbill/internal/api/dto"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/service"
	"github.com/netbill/netbill/internal/types"
)

type BillingHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{service: service, log: log}
}

// @Summary Run billing
// @Description Generate invoices for all subscriptions due on or before the billing date
// @Tags Billing
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.RunBillingRequest true "Billing run request"
// @Success 200 {object} dto.RunBillingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /billing/run [post]
func (h *BillingHandler) RunBilling(c *gin.Context) {
	var req dto.RunBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RunBilling(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Preview billing
// @Description Compute the invoices a billing run would generate without persisting anything
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Param billing_date query string false "Billing date (RFC 3339)"
// @Success 200 {object} dto.BillingPreviewResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /billing/preview [get]
func (h *BillingHandler) PreviewBilling(c *gin.Context) {
	var billingDate *time.Time
	if raw := c.Query("billing_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.Error(ierr.WithError(err).
				WithHint("billing_date must be an RFC 3339 timestamp").
				Mark(ierr.ErrValidation))
			return
		}
		billingDate = &parsed
	}

	resp, err := h.service.PreviewBilling(c.Request.Context(), billingDate)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Billing status
// @Description Report pending subscription count and the last completed run
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.BillingStatusResponse
// @Router /billing/status [get]
func (h *BillingHandler) GetBillingStatus(c *gin.Context) {
	resp, err := h.service.GetBillingStatus(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List billing runs
// @Description List persisted billing run logs
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.BillingRunFilter false "Filter"
// @Success 200 {object} dto.ListBillingRunsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /billing/runs [get]
func (h *BillingHandler) ListBillingRuns(c *gin.Context) {
	filter := types.NewBillingRunFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListBillingRuns(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
