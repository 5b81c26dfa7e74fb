package testutil

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient satisfies postgres.IClient for service tests that run
// against in-memory repositories. WithTx executes the callback directly;
// there is no real database underneath.
type MockPostgresClient struct {
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{logger: logger}
}

// WithTx executes the given function without a real transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// GetQuerier is unsupported; repositories under test are in-memory
func (c *MockPostgresClient) GetQuerier(ctx context.Context) postgres.Querier {
	return nil
}

func (c *MockPostgresClient) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	return nil, ierr.NewError("raw queries are not supported by the mock client").
		Mark(ierr.ErrDatabase)
}

func (c *MockPostgresClient) NamedQueryContext(ctx context.Context, query string, arg interface{}) (*sqlx.Rows, error) {
	return nil, ierr.NewError("raw queries are not supported by the mock client").
		Mark(ierr.ErrDatabase)
}
