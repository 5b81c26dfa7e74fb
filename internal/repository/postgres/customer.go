package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/netbill/netbill/internal/domain/customer"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/types"
)

type customerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	r.logger.Debugw("creating customer", "customer_id", c.ID, "tenant_id", c.TenantID)

	query := `
		INSERT INTO customers (
			id, tenant_id, name, email, phone, address, tags, portal_enabled,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :name, :email, :phone, :address, :tags, :portal_enabled,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A customer with this email already exists").
				WithReportableDetails(map[string]any{"email": c.Email}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("failed to create customer").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	query := `
		SELECT * FROM customers
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	var c customer.Customer
	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("customer not found").
				WithHint("Customer not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get customer").
			Mark(ierr.ErrDatabase)
	}

	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE customers
		SET
			name = :name,
			email = :email,
			phone = :phone,
			address = :address,
			tags = :tags,
			portal_enabled = :portal_enabled,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update customer").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("customer not found").
			WithHint("Customer not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE customers
		SET status = 'deleted', updated_at = $3, updated_by = $4
		WHERE id = $1 AND tenant_id = $2
	`

	result, err := r.db.GetQuerier(ctx).ExecContext(
		ctx, query, id, types.GetTenantID(ctx), time.Now().UTC(), types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to delete customer").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("customer not found").
			WithHint("Customer not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *customerRepository) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	query, args := r.buildListQuery(ctx, filter, false)

	customers := []*customer.Customer{}
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list customers").
			Mark(ierr.ErrDatabase)
	}

	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to count customers").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

func (r *customerRepository) buildListQuery(ctx context.Context, filter *types.CustomerFilter, count bool) (string, []interface{}) {
	if filter == nil {
		filter = types.NewCustomerFilter()
	}

	conditions := []string{"tenant_id = ?", "status != 'deleted'"}
	args := []interface{}{types.GetTenantID(ctx)}

	if len(filter.CustomerIDs) > 0 {
		conditions = append(conditions, "id = ANY(?)")
		args = append(args, pq.Array(filter.CustomerIDs))
	}
	if filter.Search != "" {
		conditions = append(conditions, "(name ILIKE ? OR email ILIKE ? OR phone ILIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.PortalEnabled != nil {
		conditions = append(conditions, "portal_enabled = ?")
		args = append(args, *filter.PortalEnabled)
	}
	appendTimeRange(&conditions, &args, filter.TimeRangeFilter)

	var query string
	if count {
		query = "SELECT COUNT(*) FROM customers WHERE " + strings.Join(conditions, " AND ")
	} else {
		query = "SELECT * FROM customers WHERE " + strings.Join(conditions, " AND ")
		query += orderAndLimit(filter.QueryFilter)
	}

	return sqlx.Rebind(sqlx.DOLLAR, query), args
}
