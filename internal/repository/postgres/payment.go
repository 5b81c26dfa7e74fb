package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/netbill/netbill/internal/domain/payment"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
)

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	r.logger.Debugw("creating payment",
		"payment_id", p.ID,
		"payment_number", p.PaymentNumber,
		"amount", p.Amount,
	)

	query := `
		INSERT INTO payments (
			id, tenant_id, invoice_id, customer_id, payment_number,
			amount, currency, payment_method, payment_status, reference,
			received_at, idempotency_key,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :invoice_id, :customer_id, :payment_number,
			:amount, :currency, :payment_method, :payment_status, :reference,
			:received_at, :idempotency_key,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A payment with this idempotency key already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("failed to create payment").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	query := `
		SELECT * FROM payments
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	var p payment.Payment
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("payment not found").
				WithHint("Payment not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get payment").
			Mark(ierr.ErrDatabase)
	}

	return &p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	p.UpdatedAt = time.Now().UTC()
	p.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE payments
		SET
			payment_status = :payment_status,
			reference = :reference,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update payment").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("payment not found").
			WithHint("Payment not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *paymentRepository) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	query, args := r.buildListQuery(ctx, filter, false)

	payments := []*payment.Payment{}
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list payments").
			Mark(ierr.ErrDatabase)
	}

	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to count payments").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

func (r *paymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*payment.Payment, error) {
	query := `
		SELECT * FROM payments
		WHERE idempotency_key = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	var p payment.Payment
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p, query, key, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get payment by idempotency key").
			Mark(ierr.ErrDatabase)
	}

	return &p, nil
}

func (r *paymentRepository) buildListQuery(ctx context.Context, filter *types.PaymentFilter, count bool) (string, []interface{}) {
	if filter == nil {
		filter = types.NewPaymentFilter()
	}

	conditions := []string{"tenant_id = ?", "status != 'deleted'"}
	args := []interface{}{types.GetTenantID(ctx)}

	if len(filter.PaymentIDs) > 0 {
		conditions = append(conditions, "id = ANY(?)")
		args = append(args, pq.Array(filter.PaymentIDs))
	}
	if filter.InvoiceID != "" {
		conditions = append(conditions, "invoice_id = ?")
		args = append(args, filter.InvoiceID)
	}
	if filter.CustomerID != "" {
		conditions = append(conditions, "customer_id = ?")
		args = append(args, filter.CustomerID)
	}
	if len(filter.PaymentStatus) > 0 {
		conditions = append(conditions, "payment_status = ANY(?)")
		statuses := lo.Map(filter.PaymentStatus, func(s types.PaymentStatus, _ int) string {
			return s.String()
		})
		args = append(args, pq.Array(statuses))
	}
	if len(filter.PaymentMethod) > 0 {
		conditions = append(conditions, "payment_method = ANY(?)")
		methods := lo.Map(filter.PaymentMethod, func(m types.PaymentMethod, _ int) string {
			return m.String()
		})
		args = append(args, pq.Array(methods))
	}
	appendTimeRange(&conditions, &args, filter.TimeRangeFilter)

	var query string
	if count {
		query = "SELECT COUNT(*) FROM payments WHERE " + strings.Join(conditions, " AND ")
	} else {
		query = "SELECT * FROM payments WHERE " + strings.Join(conditions, " AND ")
		query += orderAndLimit(filter.QueryFilter)
	}

	return sqlx.Rebind(sqlx.DOLLAR, query), args
}
