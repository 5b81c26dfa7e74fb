package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/netbill/netbill/internal/domain/tenant"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
)

type tenantRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTenantRepository(db *postgres.DB, logger *logger.Logger) tenant.Repository {
	return &tenantRepository{db: db, logger: logger}
}

func (r *tenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	query := `
		INSERT INTO tenants (
			id,
			name,
			slug,
			branding,
			status,
			created_at,
			updated_at
		) VALUES (
			:id,
			:name,
			:slug,
			:branding,
			:status,
			:created_at,
			:updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A tenant with this slug already exists").
				WithReportableDetails(map[string]any{"slug": t.Slug}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("failed to create tenant").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	query := `SELECT * FROM tenants WHERE id = $1 AND status != 'deleted'`

	var t tenant.Tenant
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("tenant not found").
				WithHint("Tenant not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get tenant").
			Mark(ierr.ErrDatabase)
	}

	return &t, nil
}

func (r *tenantRepository) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	query := `SELECT * FROM tenants WHERE slug = $1 AND status != 'deleted'`

	var t tenant.Tenant
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &t, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("tenant not found").
				WithHint("Tenant not found").
				WithReportableDetails(map[string]any{"slug": slug}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get tenant").
			Mark(ierr.ErrDatabase)
	}

	return &t, nil
}

func (r *tenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	t.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tenants
		SET
			name = :name,
			branding = :branding,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, t)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update tenant").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("tenant not found").
			WithHint("Tenant not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *tenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	query := `SELECT * FROM tenants WHERE status != 'deleted' ORDER BY created_at DESC`

	tenants := []*tenant.Tenant{}
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &tenants, query); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list tenants").
			Mark(ierr.ErrDatabase)
	}

	return tenants, nil
}
