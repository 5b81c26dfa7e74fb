package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/service"
	"github.com/netbill/netbill/internal/types"
)

type ReportHandler struct {
	service service.ReportService
	log     *logger.Logger
}

func NewReportHandler(service service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, log: log}
}

// @Summary Revenue summary
// @Description Monthly invoiced and collected revenue for the tenant
// @Tags Reports
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.TimeRangeFilter false "Time range"
// @Success 200 {object} dto.RevenueSummaryResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/revenue [get]
func (h *ReportHandler) RevenueSummary(c *gin.Context) {
	var timeRange types.TimeRangeFilter
	if err := c.ShouldBindQuery(&timeRange); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid time range parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RevenueSummary(c.Request.Context(), &timeRange)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Outstanding report
// @Description Unpaid invoice totals bucketed by days past due
// @Tags Reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.OutstandingReportResponse
// @Router /reports/outstanding [get]
func (h *ReportHandler) Outstanding(c *gin.Context) {
	resp, err := h.service.Outstanding(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Subscription breakdown
// @Description Subscription counts grouped by status
// @Tags Reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.SubscriptionBreakdownResponse
// @Router /reports/subscriptions [get]
func (h *ReportHandler) SubscriptionBreakdown(c *gin.Context) {
	resp, err := h.service.SubscriptionBreakdown(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
