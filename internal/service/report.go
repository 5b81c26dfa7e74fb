package service

import (
	"context"
	"sort"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type ReportService interface {
	RevenueSummary(ctx context.Context, timeRange *types.TimeRangeFilter) (*dto.RevenueSummaryResponse, error)
	Outstanding(ctx context.Context) (*dto.OutstandingReportResponse, error)
	SubscriptionBreakdown(ctx context.Context) (*dto.SubscriptionBreakdownResponse, error)
}

type reportService struct {
	ServiceParams
}

func NewReportService(params ServiceParams) ReportService {
	return &reportService{ServiceParams: params}
}

// RevenueSummary aggregates invoiced vs collected amounts per calendar month
// of the invoice period start
func (s *reportService) RevenueSummary(ctx context.Context, timeRange *types.TimeRangeFilter) (*dto.RevenueSummaryResponse, error) {
	filter := types.NewNoLimitInvoiceFilter()
	filter.TimeRangeFilter = timeRange
	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	months := map[string]*dto.RevenueMonth{}
	totalInvoiced := decimal.Zero
	totalCollected := decimal.Zero

	for _, inv := range invoices {
		if inv.InvoiceStatus == types.InvoiceStatusCancelled {
			continue
		}

		key := inv.PeriodStart.Format("2006-01")
		month, ok := months[key]
		if !ok {
			month = &dto.RevenueMonth{
				Month:     key,
				Invoiced:  decimal.Zero,
				Collected: decimal.Zero,
			}
			months[key] = month
		}

		month.Invoiced = month.Invoiced.Add(inv.Total)
		month.Invoices++
		totalInvoiced = totalInvoiced.Add(inv.Total)

		if inv.InvoiceStatus == types.InvoiceStatusPaid {
			month.Collected = month.Collected.Add(inv.Total)
			totalCollected = totalCollected.Add(inv.Total)
		}
	}

	sorted := lo.Values(months)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })

	return &dto.RevenueSummaryResponse{
		Months:         sorted,
		TotalInvoiced:  totalInvoiced,
		TotalCollected: totalCollected,
	}, nil
}

// Outstanding lists unpaid invoices grouped into aging buckets by days past
// due
func (s *reportService) Outstanding(ctx context.Context) (*dto.OutstandingReportResponse, error) {
	filter := types.NewNoLimitInvoiceFilter()
	filter.InvoiceStatus = []types.InvoiceStatus{
		types.InvoiceStatusPending,
		types.InvoiceStatusOverdue,
	}
	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	buckets := []*dto.AgingBucket{
		{Label: "current", Amount: decimal.Zero},
		{Label: "1-30", Amount: decimal.Zero},
		{Label: "31-60", Amount: decimal.Zero},
		{Label: "61-90", Amount: decimal.Zero},
		{Label: "90+", Amount: decimal.Zero},
	}

	now := time.Now().UTC()
	total := decimal.Zero

	for _, inv := range invoices {
		total = total.Add(inv.Total)

		overdueDays := int(now.Sub(inv.DueDate).Hours() / 24)
		var bucket *dto.AgingBucket
		switch {
		case overdueDays <= 0:
			bucket = buckets[0]
		case overdueDays <= 30:
			bucket = buckets[1]
		case overdueDays <= 60:
			bucket = buckets[2]
		case overdueDays <= 90:
			bucket = buckets[3]
		default:
			bucket = buckets[4]
		}
		bucket.Count++
		bucket.Amount = bucket.Amount.Add(inv.Total)
	}

	resp := &dto.OutstandingReportResponse{
		TotalOutstanding: total,
		InvoiceCount:     len(invoices),
		Buckets:          buckets,
	}
	listResp := dto.NewListInvoicesResponse(invoices, len(invoices))
	resp.Invoices = listResp.Items

	return resp, nil
}

func (s *reportService) SubscriptionBreakdown(ctx context.Context) (*dto.SubscriptionBreakdownResponse, error) {
	filter := types.NewNoLimitSubscriptionFilter()
	subs, err := s.SubscriptionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int{}
	for _, sub := range subs {
		byStatus[sub.SubscriptionStatus.String()]++
	}

	return &dto.SubscriptionBreakdownResponse{
		ByStatus: byStatus,
		Total:    len(subs),
	}, nil
}
