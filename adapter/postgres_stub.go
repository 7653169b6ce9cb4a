//go:build !postgres

package adapter

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sqlspec-go/sqlspec/param"
)

// PostgresAdapter implements Adapter for PostgreSQL databases.
// This is a stub implementation when the postgres build tag is not set.
type PostgresAdapter struct {
	BaseAdapter
}

// ErrPostgresNotAvailable is returned when PostgreSQL driver is not compiled in.
var ErrPostgresNotAvailable = errors.New("PostgreSQL adapter not available: build with postgres tag")

// NewPostgresAdapter creates a new PostgreSQL adapter.
func NewPostgresAdapter(config Config) *PostgresAdapter {
	if config.Port == 0 {
		config.Port = 5432
	}
	return &PostgresAdapter{
		BaseAdapter: BaseAdapter{config: config},
	}
}

// Open returns an error as PostgreSQL is not available.
func (a *PostgresAdapter) Open(ctx context.Context) error {
	return ErrPostgresNotAvailable
}

// DialectName returns the dialect name.
func (a *PostgresAdapter) DialectName() string {
	return "postgres"
}

// DriverName returns the driver name.
func (a *PostgresAdapter) DriverName() string {
	return "pgx"
}

// LastInsertID returns an error as PostgreSQL is not available.
func (a *PostgresAdapter) LastInsertID(ctx context.Context, table, idColumn string) (int64, error) {
	return 0, ErrPostgresNotAvailable
}

// Ensure PostgresAdapter implements Adapter interface
var _ Adapter = (*PostgresAdapter)(nil)

// Query stub
func (a *PostgresAdapter) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, ErrPostgresNotAvailable
}

// QueryRow stub
func (a *PostgresAdapter) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

// Exec stub
func (a *PostgresAdapter) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, ErrPostgresNotAvailable
}

// ExecuteCompiled stub
func (a *PostgresAdapter) ExecuteCompiled(ctx context.Context, sqlText string, params param.ExecParams) (sql.Result, error) {
	return nil, ErrPostgresNotAvailable
}

// QueryCompiled stub
func (a *PostgresAdapter) QueryCompiled(ctx context.Context, sqlText string, params param.ExecParams) (*sql.Rows, error) {
	return nil, ErrPostgresNotAvailable
}
