package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/netbill/netbill/internal/domain/plan"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/types"
)

type planRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPlanRepository(db *postgres.DB, logger *logger.Logger) plan.Repository {
	return &planRepository{db: db, logger: logger}
}

func (r *planRepository) Create(ctx context.Context, p *plan.Plan) error {
	r.logger.Debugw("creating plan", "plan_id", p.ID, "tenant_id", p.TenantID)

	query := `
		INSERT INTO plans (
			id, tenant_id, name, description, price, currency, tax_rate,
			duration_days, fair_use_policy, is_active,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :name, :description, :price, :currency, :tax_rate,
			:duration_days, :fair_use_policy, :is_active,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("failed to create plan").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*plan.Plan, error) {
	query := `
		SELECT * FROM plans
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	var p plan.Plan
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("plan not found").
				WithHint("Plan not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get plan").
			Mark(ierr.ErrDatabase)
	}

	return &p, nil
}

func (r *planRepository) Update(ctx context.Context, p *plan.Plan) error {
	p.UpdatedAt = time.Now().UTC()
	p.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE plans
		SET
			name = :name,
			description = :description,
			price = :price,
			currency = :currency,
			tax_rate = :tax_rate,
			duration_days = :duration_days,
			fair_use_policy = :fair_use_policy,
			is_active = :is_active,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update plan").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("plan not found").
			WithHint("Plan not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *planRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE plans
		SET status = 'deleted', updated_at = $3, updated_by = $4
		WHERE id = $1 AND tenant_id = $2
	`

	result, err := r.db.GetQuerier(ctx).ExecContext(
		ctx, query, id, types.GetTenantID(ctx), time.Now().UTC(), types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to delete plan").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("plan not found").
			WithHint("Plan not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *planRepository) List(ctx context.Context, filter *types.PlanFilter) ([]*plan.Plan, error) {
	query, args := r.buildListQuery(ctx, filter, false)

	plans := []*plan.Plan{}
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &plans, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list plans").
			Mark(ierr.ErrDatabase)
	}

	return plans, nil
}

func (r *planRepository) Count(ctx context.Context, filter *types.PlanFilter) (int, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to count plans").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

func (r *planRepository) buildListQuery(ctx context.Context, filter *types.PlanFilter, count bool) (string, []interface{}) {
	if filter == nil {
		filter = types.NewPlanFilter()
	}

	conditions := []string{"tenant_id = ?", "status != 'deleted'"}
	args := []interface{}{types.GetTenantID(ctx)}

	if len(filter.PlanIDs) > 0 {
		conditions = append(conditions, "id = ANY(?)")
		args = append(args, pq.Array(filter.PlanIDs))
	}
	if filter.IsActive != nil {
		conditions = append(conditions, "is_active = ?")
		args = append(args, *filter.IsActive)
	}
	appendTimeRange(&conditions, &args, filter.TimeRangeFilter)

	var query string
	if count {
		query = "SELECT COUNT(*) FROM plans WHERE " + strings.Join(conditions, " AND ")
	} else {
		query = "SELECT * FROM plans WHERE " + strings.Join(conditions, " AND ")
		query += orderAndLimit(filter.QueryFilter)
	}

	return sqlx.Rebind(sqlx.DOLLAR, query), args
}
