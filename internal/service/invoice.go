package service

import (
	"context"
	"fmt"
	"time"

	"github.com/netbill/netbill/internal/api/dto"
	"github.com/netbill/netbill/internal/domain/invoice"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/pdf"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
)

type InvoiceService interface {
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	UpdateInvoiceStatus(ctx context.Context, id string, req *dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error)
	GeneratePDF(ctx context.Context, id string) (*dto.GeneratePDFResponse, error)
	SendInvoice(ctx context.Context, id string, req *dto.SendInvoiceRequest) (*dto.SendInvoiceResponse, error)
	MarkOverdueInvoices(ctx context.Context) (*dto.MarkOverdueResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter").
			Mark(ierr.ErrValidation)
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewListInvoicesResponse(invoices, total), nil
}

// UpdateInvoiceStatus applies a manual status change. PAID is only reachable
// through payment recording, and terminal states reject any change.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id string, req *dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.InvoiceStatus == types.InvoiceStatusPaid {
		return nil, ierr.NewError("cannot set invoice to paid directly").
			WithHint("Record a payment to mark an invoice paid").
			Mark(ierr.ErrInvalidOperation)
	}
	if !inv.InvoiceStatus.CanTransitionTo(req.InvoiceStatus) {
		return nil, ierr.NewError("invalid invoice status transition").
			WithHintf("Cannot transition invoice from %s to %s", inv.InvoiceStatus, req.InvoiceStatus).
			WithReportableDetails(map[string]any{
				"invoice_id": id,
				"from":       inv.InvoiceStatus,
				"to":         req.InvoiceStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	inv.InvoiceStatus = req.InvoiceStatus
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(inv), nil
}

// GeneratePDF renders the invoice through the external renderer and caches
// the resulting URL on the invoice. Subsequent calls return the stored URL
// without re-rendering.
func (s *invoiceService) GeneratePDF(ctx context.Context, id string) (*dto.GeneratePDFResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.PDFURL != nil && *inv.PDFURL != "" {
		return &dto.GeneratePDFResponse{InvoiceID: inv.ID, PDFURL: *inv.PDFURL}, nil
	}

	data, err := s.buildInvoiceData(ctx, inv)
	if err != nil {
		return nil, err
	}

	result, err := s.PDFGenerator.RenderInvoicePDF(ctx, data)
	if err != nil {
		return nil, err
	}

	inv.PDFURL = lo.ToPtr(result.URL)
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("invoice pdf generated",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
	)

	return &dto.GeneratePDFResponse{InvoiceID: inv.ID, PDFURL: result.URL}, nil
}

// SendInvoice dispatches the invoice to the customer over email or sms. The
// request recipient overrides the stored contact; a missing contact on both
// is a validation error.
func (s *invoiceService) SendInvoice(ctx context.Context, id string, req *dto.SendInvoiceRequest) (*dto.SendInvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cust, err := s.CustomerRepo.Get(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	recipient := req.Recipient
	if recipient == "" {
		if !cust.HasContact(req.Channel) {
			return nil, ierr.NewError("customer has no contact for channel").
				WithHintf("Customer has no stored %s contact and no recipient was provided", req.Channel).
				WithReportableDetails(map[string]any{"customer_id": cust.ID, "channel": req.Channel}).
				Mark(ierr.ErrValidation)
		}
		if req.Channel == "email" {
			recipient = cust.Email
		} else {
			recipient = cust.Phone
		}
	}

	switch req.Channel {
	case "email":
		err = s.sendEmail(ctx, inv, cust.Name, recipient)
	case "sms":
		err = s.sendSMS(ctx, inv, recipient)
	default:
		err = ierr.NewError("unsupported channel").
			WithHintf("Unsupported send channel: %s", req.Channel).
			Mark(ierr.ErrValidation)
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("invoice sent",
		"invoice_id", inv.ID,
		"channel", req.Channel,
		"recipient", recipient,
	)

	return &dto.SendInvoiceResponse{
		InvoiceID: inv.ID,
		Channel:   req.Channel,
		Recipient: recipient,
		Sent:      true,
	}, nil
}

func (s *invoiceService) sendEmail(ctx context.Context, inv *invoice.Invoice, customerName, recipient string) error {
	subject := fmt.Sprintf("Invoice %s", inv.InvoiceNumber)
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your invoice <b>%s</b> for %s %s is due on %s.</p>",
		customerName, inv.InvoiceNumber, inv.Total.StringFixed(2), inv.Currency,
		inv.DueDate.Format("2 January 2006"),
	)

	_, err := s.EmailClient.SendEmail(ctx, s.EmailClient.GetFromAddress(), recipient, subject, body, nil)
	return err
}

func (s *invoiceService) sendSMS(ctx context.Context, inv *invoice.Invoice, recipient string) error {
	message := fmt.Sprintf("Invoice %s: %s %s due %s.",
		inv.InvoiceNumber, inv.Total.StringFixed(2), inv.Currency,
		inv.DueDate.Format("02 Jan 2006"),
	)
	return s.SMSClient.SendSMS(ctx, recipient, message)
}

// MarkOverdueInvoices flips PENDING invoices past their due date to OVERDUE.
// Invoked by the scheduler alongside billing runs.
func (s *invoiceService) MarkOverdueInvoices(ctx context.Context) (*dto.MarkOverdueResponse, error) {
	overdue, err := s.InvoiceRepo.ListOverdue(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	updated := 0
	for _, inv := range overdue {
		inv.InvoiceStatus = types.InvoiceStatusOverdue
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			s.Logger.Errorw("failed to mark invoice overdue",
				"invoice_id", inv.ID,
				"error", err,
			)
			continue
		}
		updated++
	}

	if updated > 0 {
		s.Logger.Infow("marked invoices overdue", "count", updated)
	}

	return &dto.MarkOverdueResponse{Updated: updated}, nil
}

func (s *invoiceService) buildInvoiceData(ctx context.Context, inv *invoice.Invoice) (*pdf.InvoiceData, error) {
	tenant, err := s.TenantRepo.GetByID(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}
	cust, err := s.CustomerRepo.Get(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	data := &pdf.InvoiceData{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		TenantName:    tenant.Name,
		Branding:      tenant.Branding,
		CustomerName:  cust.Name,
		CustomerEmail: cust.Email,
		PeriodStart:   inv.PeriodStart,
		PeriodEnd:     inv.PeriodEnd,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		Currency:      inv.Currency,
		LineItems: lo.Map(inv.LineItems, func(li *invoice.LineItem, _ int) pdf.LineItemData {
			return pdf.LineItemData{
				Description: li.Description,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice,
				Amount:      li.Amount,
			}
		}),
	}
	return data, nil
}
