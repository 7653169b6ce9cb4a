//go:build !cgo || !sqlite

package adapter

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sqlspec-go/sqlspec/param"
)

// SQLiteAdapter implements Adapter for SQLite databases.
// This is a stub implementation when CGO is not available.
type SQLiteAdapter struct {
	BaseAdapter
}

// ErrSQLiteNotAvailable is returned when SQLite is not compiled in.
var ErrSQLiteNotAvailable = errors.New("SQLite adapter not available: build with CGO and sqlite tag")

// NewSQLiteAdapter creates a new SQLite adapter.
func NewSQLiteAdapter(config Config) *SQLiteAdapter {
	return &SQLiteAdapter{
		BaseAdapter: BaseAdapter{config: config},
	}
}

// NewSQLiteMemory creates an in-memory SQLite adapter for testing.
func NewSQLiteMemory() *SQLiteAdapter {
	return &SQLiteAdapter{
		BaseAdapter: BaseAdapter{
			config: Config{InMemory: true},
		},
	}
}

// NewSQLiteFile creates a SQLite adapter for a file database.
func NewSQLiteFile(path string) *SQLiteAdapter {
	return &SQLiteAdapter{
		BaseAdapter: BaseAdapter{
			config: Config{FilePath: path},
		},
	}
}

// Open returns an error as SQLite is not available.
func (a *SQLiteAdapter) Open(ctx context.Context) error {
	return ErrSQLiteNotAvailable
}

// DialectName returns the dialect name.
func (a *SQLiteAdapter) DialectName() string {
	return "sqlite"
}

// DriverName returns the driver name.
func (a *SQLiteAdapter) DriverName() string {
	return "sqlite3"
}

// LastInsertID returns an error as SQLite is not available.
func (a *SQLiteAdapter) LastInsertID(ctx context.Context, table, idColumn string) (int64, error) {
	return 0, ErrSQLiteNotAvailable
}

// Ensure SQLiteAdapter implements Adapter interface
var _ Adapter = (*SQLiteAdapter)(nil)

// Query stub
func (a *SQLiteAdapter) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, ErrSQLiteNotAvailable
}

// QueryRow stub
func (a *SQLiteAdapter) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

// Exec stub
func (a *SQLiteAdapter) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, ErrSQLiteNotAvailable
}

// ExecuteCompiled stub
func (a *SQLiteAdapter) ExecuteCompiled(ctx context.Context, sqlText string, params param.ExecParams) (sql.Result, error) {
	return nil, ErrSQLiteNotAvailable
}

// QueryCompiled stub
func (a *SQLiteAdapter) QueryCompiled(ctx context.Context, sqlText string, params param.ExecParams) (*sql.Rows, error) {
	return nil, ErrSQLiteNotAvailable
}
