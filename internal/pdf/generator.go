package pdf

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/netbill/netbill/internal/config"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/httpclient"
	"github.com/shopspring/decimal"
)

// InvoiceData is the payload handed to the external renderer
type InvoiceData struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	TenantName    string          `json:"tenant_name"`
	Branding      map[string]any  `json:"branding,omitempty"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	PlanName      string          `json:"plan_name,omitempty"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	DueDate       time.Time       `json:"due_date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	LineItems     []LineItemData  `json:"line_items"`
}

// LineItemData is one invoice line on the rendered document
type LineItemData struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// RenderResult carries the rendered document and its hosted URL when the
// renderer stores a copy
type RenderResult struct {
	PDF []byte
	URL string
}

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderInvoicePDF(ctx context.Context, data *InvoiceData) (*RenderResult, error)
}

type rendererClient struct {
	cfg  config.PDFConfig
	http httpclient.Client
}

// NewGenerator creates a PDF generator backed by the external HTML renderer
func NewGenerator(cfg *config.Configuration, http httpclient.Client) Generator {
	return &rendererClient{
		cfg:  cfg.PDF,
		http: http,
	}
}

func (g *rendererClient) RenderInvoicePDF(ctx context.Context, data *InvoiceData) (*RenderResult, error) {
	if g.cfg.RendererURL == "" {
		return nil, ierr.NewError("pdf renderer is not configured").
			WithHint("PDF generation is not available").
			Mark(ierr.ErrInvalidOperation)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to marshal invoice data").
			Mark(ierr.ErrSystem)
	}

	resp, err := g.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    g.cfg.RendererURL,
		Body:   payload,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("pdf renderer request failed").
			WithReportableDetails(map[string]any{
				"invoice_id": data.ID,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	result := &RenderResult{PDF: resp.Body}
	if url, ok := resp.Headers["Location"]; ok {
		result.URL = url
	}

	return result, nil
}
