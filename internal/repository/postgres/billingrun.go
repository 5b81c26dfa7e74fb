package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/netbill/netbill/internal/domain/billingrun"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
)

type billingRunRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewBillingRunRepository(db *postgres.DB, logger *logger.Logger) billingrun.Repository {
	return &billingRunRepository{db: db, logger: logger}
}

func (r *billingRunRepository) Create(ctx context.Context, run *billingrun.BillingRun) error {
	r.logger.Debugw("creating billing run",
		"run_id", run.ID,
		"billing_date", run.BillingDate,
		"dry_run", run.DryRun,
	)

	query := `
		INSERT INTO billing_runs (
			id, tenant_id, billing_date, dry_run, run_status,
			processed, successful, failed, total_amount,
			started_at, completed_at, items,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :billing_date, :dry_run, :run_status,
			:processed, :successful, :failed, :total_amount,
			:started_at, :completed_at, :items,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return ierr.WithError(err).
			WithHint("failed to create billing run").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *billingRunRepository) Get(ctx context.Context, id string) (*billingrun.BillingRun, error) {
	query := `
		SELECT * FROM billing_runs
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	var run billingrun.BillingRun
	err := r.db.GetQuerier(ctx).GetContext(ctx, &run, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("billing run not found").
				WithHint("Billing run not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get billing run").
			Mark(ierr.ErrDatabase)
	}

	return &run, nil
}

func (r *billingRunRepository) Update(ctx context.Context, run *billingrun.BillingRun) error {
	run.UpdatedAt = time.Now().UTC()
	run.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE billing_runs
		SET
			run_status = :run_status,
			processed = :processed,
			successful = :successful,
			failed = :failed,
			total_amount = :total_amount,
			completed_at = :completed_at,
			items = :items,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := r.db.NamedExecContext(ctx, query, run)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update billing run").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("billing run not found").
			WithHint("Billing run not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *billingRunRepository) List(ctx context.Context, filter *types.BillingRunFilter) ([]*billingrun.BillingRun, error) {
	if filter == nil {
		filter = types.NewBillingRunFilter()
	}

	conditions := []string{"tenant_id = ?", "status != 'deleted'"}
	args := []interface{}{types.GetTenantID(ctx)}

	if len(filter.RunStatus) > 0 {
		conditions = append(conditions, "run_status = ANY(?)")
		statuses := lo.Map(filter.RunStatus, func(s types.BillingRunStatus, _ int) string {
			return s.String()
		})
		args = append(args, pq.Array(statuses))
	}
	if filter.DryRun != nil {
		conditions = append(conditions, "dry_run = ?")
		args = append(args, *filter.DryRun)
	}
	appendTimeRange(&conditions, &args, filter.TimeRangeFilter)

	query := "SELECT * FROM billing_runs WHERE " + strings.Join(conditions, " AND ")
	query += orderAndLimit(filter.QueryFilter)

	runs := []*billingrun.BillingRun{}
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &runs, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list billing runs").
			Mark(ierr.ErrDatabase)
	}

	return runs, nil
}

func (r *billingRunRepository) GetLatestCompleted(ctx context.Context) (*billingrun.BillingRun, error) {
	query := `
		SELECT * FROM billing_runs
		WHERE tenant_id = $1
			AND run_status = $2
			AND dry_run = false
			AND status != 'deleted'
		ORDER BY completed_at DESC
		LIMIT 1
	`

	var run billingrun.BillingRun
	err := r.db.GetQuerier(ctx).GetContext(ctx, &run, query,
		types.GetTenantID(ctx), types.BillingRunStatusCompleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get latest billing run").
			Mark(ierr.ErrDatabase)
	}

	return &run, nil
}
