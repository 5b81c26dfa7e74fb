package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/netbill/netbill/internal/domain/settings"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/types"
)

type settingsRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSettingsRepository(db *postgres.DB, logger *logger.Logger) settings.Repository {
	return &settingsRepository{db: db, logger: logger}
}

func (r *settingsRepository) Create(ctx context.Context, s *settings.Setting) error {
	query := `
		INSERT INTO settings (
			id, tenant_id, key, value,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :key, :value,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A setting with this key already exists").
				WithReportableDetails(map[string]any{"key": s.Key}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("failed to create setting").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *settingsRepository) GetByKey(ctx context.Context, key string) (*settings.Setting, error) {
	query := `
		SELECT * FROM settings
		WHERE key = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	var s settings.Setting
	err := r.db.GetQuerier(ctx).GetContext(ctx, &s, query, key, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("setting not found").
				WithHint("Setting not found").
				WithReportableDetails(map[string]any{"key": key}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get setting").
			Mark(ierr.ErrDatabase)
	}

	return &s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *settings.Setting) error {
	s.UpdatedAt = time.Now().UTC()
	s.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE settings
		SET
			value = :value,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update setting").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("setting not found").
			WithHint("Setting not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *settingsRepository) List(ctx context.Context) ([]*settings.Setting, error) {
	query := `
		SELECT * FROM settings
		WHERE tenant_id = $1 AND status != 'deleted'
		ORDER BY key ASC
	`

	result := []*settings.Setting{}
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &result, query, types.GetTenantID(ctx))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list settings").
			Mark(ierr.ErrDatabase)
	}

	return result, nil
}
