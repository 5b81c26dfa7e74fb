package testutil

import (
	"context"
	"fmt"

	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/pdf"
)

var _ pdf.Generator = (*MockPDFGenerator)(nil)

// MockPDFGenerator renders nothing; it returns a deterministic URL so tests
// can assert the invoice was handed to the renderer.
type MockPDFGenerator struct {
	logger *logger.Logger

	// Rendered collects the invoice numbers passed to RenderInvoicePDF
	Rendered []string
}

func NewMockPDFGenerator(logger *logger.Logger) *MockPDFGenerator {
	return &MockPDFGenerator{logger: logger}
}

func (m *MockPDFGenerator) RenderInvoicePDF(ctx context.Context, data *pdf.InvoiceData) (*pdf.RenderResult, error) {
	m.Rendered = append(m.Rendered, data.InvoiceNumber)
	return &pdf.RenderResult{
		PDF: []byte("%PDF-1.4 test"),
		URL: fmt.Sprintf("https://files.test/invoices/%s.pdf", data.ID),
	}, nil
}
