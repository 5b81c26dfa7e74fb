package dto

import (
	"github.com/shopspring/decimal"
)

// RevenueMonth is one month's invoiced vs collected totals
type RevenueMonth struct {
	Month     string          `json:"month"` // YYYY-MM
	Invoiced  decimal.Decimal `json:"invoiced"`
	Collected decimal.Decimal `json:"collected"`
	Invoices  int             `json:"invoices"`
}

type RevenueSummaryResponse struct {
	Months         []*RevenueMonth `json:"months"`
	TotalInvoiced  decimal.Decimal `json:"total_invoiced"`
	TotalCollected decimal.Decimal `json:"total_collected"`
}

// AgingBucket groups outstanding invoices by how long they have been unpaid
type AgingBucket struct {
	Label  string          `json:"label"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type OutstandingReportResponse struct {
	TotalOutstanding decimal.Decimal    `json:"total_outstanding"`
	InvoiceCount     int                `json:"invoice_count"`
	Buckets          []*AgingBucket     `json:"buckets"`
	Invoices         []*InvoiceResponse `json:"invoices"`
}

type SubscriptionBreakdownResponse struct {
	ByStatus map[string]int `json:"by_status"`
	Total    int            `json:"total"`
}
