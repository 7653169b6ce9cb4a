//go:build !mysql

package adapter

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sqlspec-go/sqlspec/param"
)

// MySQLAdapter implements Adapter for MySQL databases.
// This is a stub implementation when the mysql build tag is not set.
type MySQLAdapter struct {
	BaseAdapter
}

// ErrMySQLNotAvailable is returned when MySQL driver is not compiled in.
var ErrMySQLNotAvailable = errors.New("MySQL adapter not available: build with mysql tag")

// NewMySQLAdapter creates a new MySQL adapter.
func NewMySQLAdapter(config Config) *MySQLAdapter {
	if config.Port == 0 {
		config.Port = 3306
	}
	return &MySQLAdapter{
		BaseAdapter: BaseAdapter{config: config},
	}
}

// Open returns an error as MySQL is not available.
func (a *MySQLAdapter) Open(ctx context.Context) error {
	return ErrMySQLNotAvailable
}

// DialectName returns the dialect name.
func (a *MySQLAdapter) DialectName() string {
	return "mysql"
}

// DriverName returns the driver name.
func (a *MySQLAdapter) DriverName() string {
	return "mysql"
}

// LastInsertID returns an error as MySQL is not available.
func (a *MySQLAdapter) LastInsertID(ctx context.Context, table, idColumn string) (int64, error) {
	return 0, ErrMySQLNotAvailable
}

// Ensure MySQLAdapter implements Adapter interface
var _ Adapter = (*MySQLAdapter)(nil)

// Query stub
func (a *MySQLAdapter) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, ErrMySQLNotAvailable
}

// QueryRow stub
func (a *MySQLAdapter) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

// Exec stub
func (a *MySQLAdapter) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, ErrMySQLNotAvailable
}

// ExecuteCompiled stub
func (a *MySQLAdapter) ExecuteCompiled(ctx context.Context, sqlText string, params param.ExecParams) (sql.Result, error) {
	return nil, ErrMySQLNotAvailable
}

// QueryCompiled stub
func (a *MySQLAdapter) QueryCompiled(ctx context.Context, sqlText string, params param.ExecParams) (*sql.Rows, error) {
	return nil, ErrMySQLNotAvailable
}
