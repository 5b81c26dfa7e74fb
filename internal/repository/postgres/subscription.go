package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/netbill/netbill/internal/domain/subscription"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
)

type subscriptionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSubscriptionRepository(db *postgres.DB, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, logger: logger}
}

func (r *subscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	r.logger.Debugw("creating subscription",
		"subscription_id", s.ID,
		"customer_id", s.CustomerID,
		"plan_id", s.PlanID,
	)

	query := `
		INSERT INTO subscriptions (
			id, tenant_id, customer_id, plan_id, subscription_status,
			auto_renew, started_at, ends_at,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :customer_id, :plan_id, :subscription_status,
			:auto_renew, :started_at, :ends_at,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		if isForeignKeyViolation(err) {
			return ierr.WithError(err).
				WithHint("Customer or plan does not exist").
				Mark(ierr.ErrInvalidOperation)
		}
		return ierr.WithError(err).
			WithHint("failed to create subscription").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	query := `
		SELECT * FROM subscriptions
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	var s subscription.Subscription
	err := r.db.GetQuerier(ctx).GetContext(ctx, &s, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("subscription not found").
				WithHint("Subscription not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get subscription").
			Mark(ierr.ErrDatabase)
	}

	return &s, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	s.UpdatedAt = time.Now().UTC()
	s.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE subscriptions
		SET
			subscription_status = :subscription_status,
			auto_renew = :auto_renew,
			ends_at = :ends_at,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update subscription").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *subscriptionRepository) List(ctx context.Context, filter *types.SubscriptionFilter) ([]*subscription.Subscription, error) {
	query, args := r.buildListQuery(ctx, filter, false)

	subs := []*subscription.Subscription{}
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &subs, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}

	return subs, nil
}

func (r *subscriptionRepository) Count(ctx context.Context, filter *types.SubscriptionFilter) (int, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to count subscriptions").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

// ListDue selects the billing work set: ACTIVE subscriptions with auto renew
// on whose ends_at falls at or before the billing date. Ordered by ends_at so
// the oldest-due subscriptions are billed first.
func (r *subscriptionRepository) ListDue(ctx context.Context, billingDate time.Time, subscriptionIDs []string) ([]*subscription.Subscription, error) {
	conditions := []string{
		"tenant_id = ?",
		"status != 'deleted'",
		"subscription_status = ?",
		"auto_renew = true",
		"ends_at <= ?",
	}
	args := []interface{}{
		types.GetTenantID(ctx),
		types.SubscriptionStatusActive,
		billingDate,
	}

	if len(subscriptionIDs) > 0 {
		conditions = append(conditions, "id = ANY(?)")
		args = append(args, pq.Array(subscriptionIDs))
	}

	query := "SELECT * FROM subscriptions WHERE " +
		strings.Join(conditions, " AND ") +
		" ORDER BY ends_at ASC, id ASC"

	subs := []*subscription.Subscription{}
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &subs, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list due subscriptions").
			Mark(ierr.ErrDatabase)
	}

	return subs, nil
}

func (r *subscriptionRepository) CountDue(ctx context.Context, billingDate time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM subscriptions
		WHERE tenant_id = $1
			AND status != 'deleted'
			AND subscription_status = $2
			AND auto_renew = true
			AND ends_at <= $3
	`

	var count int
	err := r.db.GetQuerier(ctx).GetContext(
		ctx, &count, query, types.GetTenantID(ctx), types.SubscriptionStatusActive, billingDate)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to count due subscriptions").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

func (r *subscriptionRepository) CountByPlanID(ctx context.Context, planID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM subscriptions
		WHERE tenant_id = $1 AND plan_id = $2 AND status != 'deleted'
	`

	var count int
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, types.GetTenantID(ctx), planID)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to count subscriptions by plan").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

func (r *subscriptionRepository) CountActiveByCustomerID(ctx context.Context, customerID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM subscriptions
		WHERE tenant_id = $1
			AND customer_id = $2
			AND subscription_status = $3
			AND status != 'deleted'
	`

	var count int
	err := r.db.GetQuerier(ctx).GetContext(
		ctx, &count, query, types.GetTenantID(ctx), customerID, types.SubscriptionStatusActive)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to count active subscriptions").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

func (r *subscriptionRepository) buildListQuery(ctx context.Context, filter *types.SubscriptionFilter, count bool) (string, []interface{}) {
	if filter == nil {
		filter = types.NewSubscriptionFilter()
	}

	conditions := []string{"tenant_id = ?", "status != 'deleted'"}
	args := []interface{}{types.GetTenantID(ctx)}

	if len(filter.SubscriptionIDs) > 0 {
		conditions = append(conditions, "id = ANY(?)")
		args = append(args, pq.Array(filter.SubscriptionIDs))
	}
	if filter.CustomerID != "" {
		conditions = append(conditions, "customer_id = ?")
		args = append(args, filter.CustomerID)
	}
	if filter.PlanID != "" {
		conditions = append(conditions, "plan_id = ?")
		args = append(args, filter.PlanID)
	}
	if len(filter.SubscriptionStatus) > 0 {
		conditions = append(conditions, "subscription_status = ANY(?)")
		statuses := lo.Map(filter.SubscriptionStatus, func(s types.SubscriptionStatus, _ int) string {
			return s.String()
		})
		args = append(args, pq.Array(statuses))
	}
	if filter.AutoRenew != nil {
		conditions = append(conditions, "auto_renew = ?")
		args = append(args, *filter.AutoRenew)
	}
	appendTimeRange(&conditions, &args, filter.TimeRangeFilter)

	var query string
	if count {
		query = "SELECT COUNT(*) FROM subscriptions WHERE " + strings.Join(conditions, " AND ")
	} else {
		query = "SELECT * FROM subscriptions WHERE " + strings.Join(conditions, " AND ")
		query += orderAndLimit(filter.QueryFilter)
	}

	return sqlx.Rebind(sqlx.DOLLAR, query), args
}
