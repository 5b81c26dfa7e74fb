package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/netbill/netbill/internal/domain/invoice"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

// CreateWithLineItems inserts the invoice and its line items in a single
// transaction. A unique index on (tenant_id, subscription_id, period_start,
// period_end) backs the duplicate-period guard under concurrency.
func (r *invoiceRepository) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	r.logger.Debugw("creating invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"subscription_id", inv.SubscriptionID,
	)

	return r.db.WithTx(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO invoices (
				id, tenant_id, customer_id, subscription_id, invoice_number,
				invoice_status, currency, period_start, period_end,
				subtotal, tax_amount, total, due_date, paid_at, pdf_url, metadata,
				status, created_at, updated_at, created_by, updated_by
			) VALUES (
				:id, :tenant_id, :customer_id, :subscription_id, :invoice_number,
				:invoice_status, :currency, :period_start, :period_end,
				:subtotal, :tax_amount, :total, :due_date, :paid_at, :pdf_url, :metadata,
				:status, :created_at, :updated_at, :created_by, :updated_by
			)
		`

		if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
			if isUniqueViolation(err) {
				return ierr.WithError(err).
					WithHint("An invoice already exists for this subscription and period").
					WithReportableDetails(map[string]any{
						"subscription_id": inv.SubscriptionID,
						"period_start":    inv.PeriodStart,
						"period_end":      inv.PeriodEnd,
					}).
					Mark(ierr.ErrAlreadyExists)
			}
			return ierr.WithError(err).
				WithHint("failed to create invoice").
				Mark(ierr.ErrDatabase)
		}

		itemQuery := `
			INSERT INTO invoice_line_items (
				id, tenant_id, invoice_id, item_type, description,
				quantity, unit_price, amount,
				status, created_at, updated_at, created_by, updated_by
			) VALUES (
				:id, :tenant_id, :invoice_id, :item_type, :description,
				:quantity, :unit_price, :amount,
				:status, :created_at, :updated_at, :created_by, :updated_by
			)
		`

		for _, item := range inv.LineItems {
			if _, err := r.db.NamedExecContext(ctx, itemQuery, item); err != nil {
				return ierr.WithError(err).
					WithHint("failed to create invoice line item").
					Mark(ierr.ErrDatabase)
			}
		}

		return nil
	})
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	query := `
		SELECT * FROM invoices
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	var inv invoice.Invoice
	err := r.db.GetQuerier(ctx).GetContext(ctx, &inv, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("invoice not found").
				WithHint("Invoice not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get invoice").
			Mark(ierr.ErrDatabase)
	}

	items, err := r.getLineItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.LineItems = items

	return &inv, nil
}

func (r *invoiceRepository) getLineItems(ctx context.Context, invoiceID string) ([]*invoice.LineItem, error) {
	query := `
		SELECT * FROM invoice_line_items
		WHERE invoice_id = $1 AND tenant_id = $2
		ORDER BY created_at ASC, id ASC
	`

	items := []*invoice.LineItem{}
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &items, query, invoiceID, types.GetTenantID(ctx))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get invoice line items").
			Mark(ierr.ErrDatabase)
	}

	return items, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	inv.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE invoices
		SET
			invoice_status = :invoice_status,
			paid_at = :paid_at,
			pdf_url = :pdf_url,
			metadata = :metadata,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := r.db.NamedExecContext(ctx, query, inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update invoice").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	query, args := r.buildListQuery(ctx, filter, false)

	invoices := []*invoice.Invoice{}
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list invoices").
			Mark(ierr.ErrDatabase)
	}

	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to count invoices").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

// ExistsForPeriod reports whether a non-cancelled invoice already covers the
// subscription's billing period. CANCELLED invoices do not block
// regeneration.
func (r *invoiceRepository) ExistsForPeriod(ctx context.Context, subscriptionID string, periodStart, periodEnd time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM invoices
			WHERE tenant_id = $1
				AND subscription_id = $2
				AND period_start = $3
				AND period_end = $4
				AND invoice_status != $5
				AND status != 'deleted'
		)
	`

	var exists bool
	err := r.db.GetQuerier(ctx).GetContext(ctx, &exists, query,
		types.GetTenantID(ctx), subscriptionID, periodStart, periodEnd, types.InvoiceStatusCancelled)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("failed to check for existing invoice").
			Mark(ierr.ErrDatabase)
	}

	return exists, nil
}

// NextSequence atomically increments and returns the tenant's invoice counter
// for the given year-month. The upsert-increment is a single statement, so
// concurrent callers serialize on the row and each receive a distinct value.
func (r *invoiceRepository) NextSequence(ctx context.Context, yearMonth string) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (id, tenant_id, year_month, last_value, created_at, updated_at)
		VALUES ($1, $2, $3, 1, NOW(), NOW())
		ON CONFLICT (tenant_id, year_month)
		DO UPDATE SET last_value = invoice_sequences.last_value + 1, updated_at = NOW()
		RETURNING last_value
	`

	var seq int64
	err := r.db.GetQuerier(ctx).GetContext(ctx, &seq, query,
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_SEQUENCE), types.GetTenantID(ctx), yearMonth)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to get next invoice sequence").
			Mark(ierr.ErrDatabase)
	}

	return seq, nil
}

func (r *invoiceRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*invoice.Invoice, error) {
	query := `
		SELECT * FROM invoices
		WHERE tenant_id = $1
			AND invoice_status = $2
			AND due_date < $3
			AND status != 'deleted'
		ORDER BY due_date ASC
	`

	invoices := []*invoice.Invoice{}
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &invoices, query,
		types.GetTenantID(ctx), types.InvoiceStatusPending, asOf)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list overdue invoices").
			Mark(ierr.ErrDatabase)
	}

	return invoices, nil
}

func (r *invoiceRepository) buildListQuery(ctx context.Context, filter *types.InvoiceFilter, count bool) (string, []interface{}) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}

	conditions := []string{"tenant_id = ?", "status != 'deleted'"}
	args := []interface{}{types.GetTenantID(ctx)}

	if len(filter.InvoiceIDs) > 0 {
		conditions = append(conditions, "id = ANY(?)")
		args = append(args, pq.Array(filter.InvoiceIDs))
	}
	if filter.CustomerID != "" {
		conditions = append(conditions, "customer_id = ?")
		args = append(args, filter.CustomerID)
	}
	if filter.SubscriptionID != "" {
		conditions = append(conditions, "subscription_id = ?")
		args = append(args, filter.SubscriptionID)
	}
	if len(filter.InvoiceStatus) > 0 {
		conditions = append(conditions, "invoice_status = ANY(?)")
		statuses := lo.Map(filter.InvoiceStatus, func(s types.InvoiceStatus, _ int) string {
			return s.String()
		})
		args = append(args, pq.Array(statuses))
	}
	if filter.InvoiceNumber != "" {
		conditions = append(conditions, "invoice_number = ?")
		args = append(args, filter.InvoiceNumber)
	}
	appendTimeRange(&conditions, &args, filter.TimeRangeFilter)

	var query string
	if count {
		query = "SELECT COUNT(*) FROM invoices WHERE " + strings.Join(conditions, " AND ")
	} else {
		query = "SELECT * FROM invoices WHERE " + strings.Join(conditions, " AND ")
		query += orderAndLimit(filter.QueryFilter)
	}

	return sqlx.Rebind(sqlx.DOLLAR, query), args
}
