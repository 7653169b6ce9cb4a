// Package adapter provides the connection-level firewall contract spec
// §6.5 describes: application code never hands an Adapter raw SQL text
// plus a bag of Go values. It hands it the two load-bearing fields of a
// *compiler.CompiledStatement — RenderedSQL and Parameters — already
// shaped for this adapter's own parameter style by the core (package
// compiler never imports this package's ExecuteCompiled/QueryCompiled;
// it only reads Profile, so taking the whole CompiledStatement struct
// here instead of its two fields would create an import cycle). Profile
// and Registry (registry.go, builtin.go) are the compile-time half of
// the same contract: they tell the compiler how to shape output for a
// given adapter before one is ever opened.
package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sqlspec-go/sqlspec/param"
)

// Adapter defines the interface for database operations.
type Adapter interface {
	// Connection management
	Open(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query execution
	Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row
	Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

	// ExecuteCompiled and QueryCompiled are the firewall-contract entry
	// points: sqlText and params come straight from a
	// compiler.CompiledStatement's RenderedSQL/Parameters fields, already
	// shaped for this adapter's parameter style, never built by hand.
	ExecuteCompiled(ctx context.Context, sqlText string, params param.ExecParams) (sql.Result, error)
	QueryCompiled(ctx context.Context, sqlText string, params param.ExecParams) (*sql.Rows, error)

	// Transaction support
	Begin(ctx context.Context) (Tx, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error)

	// Metadata
	DialectName() string
	DriverName() string

	// Database-specific operations
	LastInsertID(ctx context.Context, table, idColumn string) (int64, error)

	// Health check
	HealthCheck(ctx context.Context) error
}

// Tx represents a database transaction.
type Tx interface {
	Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row
	Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Commit() error
	Rollback() error
}

// Config holds common adapter configuration.
type Config struct {
	Host            string
	Port            int
	Database        string
	Username        string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// SQLite specific
	FilePath string
	InMemory bool

	// Additional options as key-value pairs
	Options map[string]string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            5432,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
		SSLMode:         "disable",
		Options:         make(map[string]string),
	}
}

// BaseAdapter provides common functionality for all adapters.
type BaseAdapter struct {
	db     *sql.DB
	config Config
}

// DB returns the underlying database connection.
func (a *BaseAdapter) DB() *sql.DB {
	return a.db
}

// Close closes the database connection.
func (a *BaseAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ping verifies the database connection.
func (a *BaseAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Query executes a query that returns rows.
func (a *BaseAdapter) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return a.db.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns a single row.
func (a *BaseAdapter) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return a.db.QueryRowContext(ctx, query, args...)
}

// Exec executes a query that doesn't return rows.
func (a *BaseAdapter) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return a.db.ExecContext(ctx, query, args...)
}

// ExecuteCompiled runs a compiled statement's already-reshaped
// parameters against its already-rendered SQL. params.Batch is rejected
// here; batched executemany statements go through ExecuteCompiledBatch.
func (a *BaseAdapter) ExecuteCompiled(ctx context.Context, sqlText string, params param.ExecParams) (sql.Result, error) {
	args, err := execArgs(params)
	if err != nil {
		return nil, err
	}
	return a.db.ExecContext(ctx, sqlText, args...)
}

// QueryCompiled is ExecuteCompiled's row-returning counterpart.
func (a *BaseAdapter) QueryCompiled(ctx context.Context, sqlText string, params param.ExecParams) (*sql.Rows, error) {
	args, err := execArgs(params)
	if err != nil {
		return nil, err
	}
	return a.db.QueryContext(ctx, sqlText, args...)
}

// ExecuteCompiledBatch runs one execution per record in params.Batch
// inside a single transaction, the executemany path (spec §3.6).
func (a *BaseAdapter) ExecuteCompiledBatch(ctx context.Context, sqlText string, params param.ExecParams) ([]sql.Result, error) {
	if !params.IsBatch() {
		return nil, fmt.Errorf("adapter: ExecuteCompiledBatch requires a batch ExecParams")
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	results := make([]sql.Result, 0, len(params.Batch))
	for _, rec := range params.Batch {
		args, err := execArgs(rec)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		res, err := tx.ExecContext(ctx, sqlText, args...)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		results = append(results, res)
	}
	return results, tx.Commit()
}

// execArgs converts a reshaped ExecParams into database/sql call
// arguments: named parameters become sql.Named values, positional ones
// pass through directly.
func execArgs(p param.ExecParams) ([]interface{}, error) {
	if p.IsBatch() {
		return nil, fmt.Errorf("adapter: batch parameters require ExecuteCompiledBatch, not ExecuteCompiled")
	}
	if len(p.Named) > 0 {
		args := make([]interface{}, 0, len(p.Named))
		for name, v := range p.Named {
			args = append(args, sql.Named(name, v))
		}
		return args, nil
	}
	return p.Positional, nil
}

// Begin starts a transaction with default options.
func (a *BaseAdapter) Begin(ctx context.Context) (Tx, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txWrapper{tx: tx}, nil
}

// BeginTx starts a transaction with the given options.
func (a *BaseAdapter) BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error) {
	tx, err := a.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &txWrapper{tx: tx}, nil
}

// HealthCheck performs a basic health check.
func (a *BaseAdapter) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	// Try a simple query
	var result int
	err := a.db.QueryRowContext(ctx, "SELECT 1").Scan(&result)
	if err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}

	return nil
}

// configurePool sets connection pool parameters.
func (a *BaseAdapter) configurePool() {
	if a.config.MaxOpenConns > 0 {
		a.db.SetMaxOpenConns(a.config.MaxOpenConns)
	}
	if a.config.MaxIdleConns > 0 {
		a.db.SetMaxIdleConns(a.config.MaxIdleConns)
	}
	if a.config.ConnMaxLifetime > 0 {
		a.db.SetConnMaxLifetime(a.config.ConnMaxLifetime)
	}
	if a.config.ConnMaxIdleTime > 0 {
		a.db.SetConnMaxIdleTime(a.config.ConnMaxIdleTime)
	}
}

// txWrapper wraps sql.Tx to implement the Tx interface.
type txWrapper struct {
	tx *sql.Tx
}

func (t *txWrapper) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *txWrapper) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t *txWrapper) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *txWrapper) Commit() error {
	return t.tx.Commit()
}

func (t *txWrapper) Rollback() error {
	return t.tx.Rollback()
}

// ScanRow is a helper to scan a single row into a map.
func ScanRow(rows *sql.Rows) (map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	if err := rows.Scan(valuePtrs...); err != nil {
		return nil, err
	}

	result := make(map[string]interface{})
	for i, col := range columns {
		result[col] = values[i]
	}

	return result, nil
}

// ScanRows is a helper to scan all rows into a slice of maps.
func ScanRows(rows *sql.Rows) ([]map[string]interface{}, error) {
	var results []map[string]interface{}

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{})
		for i, col := range columns {
			row[col] = values[i]
		}
		results = append(results, row)
	}

	return results, rows.Err()
}
