package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/netbill/netbill/internal/domain/user"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/types"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, tenant_id, email, name, role,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :email, :name, :role,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, u); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A user with this email already exists").
				WithReportableDetails(map[string]any{"email": u.Email}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("failed to create user").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `
		SELECT * FROM users
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	var u user.User
	err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("user not found").
				WithHint("User not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get user").
			Mark(ierr.ErrDatabase)
	}

	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT * FROM users
		WHERE email = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	var u user.User
	err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, email, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("user not found").
				WithHint("User not found").
				WithReportableDetails(map[string]any{"email": email}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get user").
			Mark(ierr.ErrDatabase)
	}

	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now().UTC()
	u.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE users
		SET
			name = :name,
			role = :role,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := r.db.NamedExecContext(ctx, query, u)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update user").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("user not found").
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	query := `
		SELECT * FROM users
		WHERE tenant_id = $1 AND status != 'deleted'
		ORDER BY created_at DESC
	`

	users := []*user.User{}
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &users, query, types.GetTenantID(ctx))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list users").
			Mark(ierr.ErrDatabase)
	}

	return users, nil
}
